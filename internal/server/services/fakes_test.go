package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/dbx"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/files"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/users"
	"github.com/google/uuid"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// memDB is an in-memory stand-in for the two tables.
type memDB struct {
	mu    sync.Mutex
	users map[string]*models.User
	files map[string]*models.File
	clock time.Time

	// failures injected per operation name
	errs map[string]error
}

func newMemDB() *memDB {
	return &memDB{
		users: map[string]*models.User{},
		files: map[string]*models.File{},
		clock: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		errs:  map[string]error{},
	}
}

func (m *memDB) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type memUsers struct {
	users.Repository
	db *memDB
}

func (r *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.errs["users.Create"]; err != nil {
		return nil, err
	}
	for _, existing := range r.db.users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	c := *u
	c.ID = uuid.NewString()
	c.CreatedAt = r.db.tick()
	r.db.users[c.ID] = &c
	out := c
	return &out, nil
}

func (r *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.errs["users.GetByEmail"]; err != nil {
		return nil, err
	}
	for _, u := range r.db.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (r *memUsers) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.errs["users.Delete"]; err != nil {
		return err
	}
	if _, ok := r.db.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.db.users, id)
	return nil
}

type memFiles struct {
	files.Repository
	db *memDB
}

func (r *memFiles) Create(ctx context.Context, f *models.File) (*models.File, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.errs["files.Create"]; err != nil {
		return nil, err
	}
	if len(r.db.users) > 0 {
		if _, ok := r.db.users[f.UserID]; !ok {
			return nil, common.ErrorUnauthorized
		}
	}
	c := *f
	c.ID = uuid.NewString()
	c.UploadStatus = models.UploadStatusEmpty
	c.CreatedAt = r.db.tick()
	c.UpdatedAt = c.CreatedAt
	r.db.files[c.ID] = &c
	out := c
	return &out, nil
}

func (r *memFiles) ListByOwner(ctx context.Context, userID string) ([]*models.File, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.errs["files.ListByOwner"]; err != nil {
		return nil, err
	}
	var out []*models.File
	for _, f := range r.db.files {
		if f.UserID == userID {
			c := *f
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memFiles) GetByID(ctx context.Context, id string) (*models.File, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	f, ok := r.db.files[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *f
	return &out, nil
}

func (r *memFiles) update(id string, fn func(f *models.File)) (*models.File, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	f, ok := r.db.files[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	fn(f)
	f.UpdatedAt = r.db.tick()
	out := *f
	return &out, nil
}

func (r *memFiles) UpdateTitle(ctx context.Context, id string, title string) (*models.File, error) {
	return r.update(id, func(f *models.File) { f.Title = title })
}

func (r *memFiles) SetUploadStatus(ctx context.Context, id string, status string) (*models.File, error) {
	return r.update(id, func(f *models.File) { f.UploadStatus = status })
}

func (r *memFiles) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.files[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.db.files, id)
	return nil
}

func (r *memFiles) DeleteByOwner(ctx context.Context, userID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for id, f := range r.db.files {
		if f.UserID == userID {
			delete(r.db.files, id)
			n++
		}
	}
	return n, nil
}

type memRepoManager struct {
	db *memDB
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(dbx.DBTX) users.Repository              { return &memUsers{db: m.db} }
func (m *memRepoManager) Files(dbx.DBTX) files.Repository              { return &memFiles{db: m.db} }

type fakeStore struct {
	mu        sync.Mutex
	deleted   []string
	deleteErr error
	presign   error
}

func (s *fakeStore) PresignPut(ctx context.Context, key string) (string, error) {
	if s.presign != nil {
		return "", s.presign
	}
	return "https://store.test/put/" + key, nil
}

func (s *fakeStore) PresignGet(ctx context.Context, key string) (string, error) {
	if s.presign != nil {
		return "", s.presign
	}
	return "https://store.test/get/" + key, nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, key)
	return nil
}

type fakeTokens struct {
	err error
}

func (f *fakeTokens) Encode(userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + userID, nil
}

var errBoom = errors.New("boom")
