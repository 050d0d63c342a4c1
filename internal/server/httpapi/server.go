// Package httpapi exposes accounts and files over HTTP with JSON bodies.
// Sessions travel in a cookie; guarded routes pass through requireSession,
// which puts the caller's auth.Principal into the request context.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/auth"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Register(ctx context.Context, email, password, name, avatar string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type FileService interface {
	CreateForOwner(ctx context.Context, actorID string) (*models.File, error)
	ListForOwner(ctx context.Context, actorID string) ([]*models.File, error)
	Get(ctx context.Context, actorID, fileID string) (*models.File, error)
	Delete(ctx context.Context, actorID, fileID string) error
	Rename(ctx context.Context, actorID, fileID, title string) (*models.File, error)
	UploadURL(ctx context.Context, actorID, fileID string) (string, error)
	CompleteUpload(ctx context.Context, actorID, fileID string) (*models.File, error)
	DownloadURL(ctx context.Context, actorID, fileID string) (string, error)
}

// Authenticator resolves the caller of a request.
type Authenticator interface {
	Authenticate(r *http.Request) (auth.Principal, error)
}

// SessionTransport writes the session token to, and removes it from, the client.
type SessionTransport interface {
	Attach(w http.ResponseWriter, token string)
	Clear(w http.ResponseWriter)
}

type Server struct {
	address string
	logger  logging.Logger
	users   UserService
	files   FileService
	guard   Authenticator
	session SessionTransport
}

func NewServer(address string, l logging.Logger, us UserService, fs FileService, guard Authenticator, session SessionTransport) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		files:   fs,
		guard:   guard,
		session: session,
	}
}

// Handler returns the routed API wrapped in request-id and access-log
// middleware.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.withAccessLog(s.routes()))
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on l until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", l.Addr().String())

	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
