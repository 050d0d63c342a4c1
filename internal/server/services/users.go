package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/dbx"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/auth"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
)

// bcrypt ignores everything past 72 bytes, so longer passwords are refused.
const maxPasswordBytes = 72

// UserService registers accounts, signs users in and removes accounts.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer
	store       ObjectStore
	bcryptCost  int
	log         logging.Logger

	// dummyHash is compared against when the email is unknown, so a failed
	// sign-in costs the same whether or not the account exists.
	dummyHash string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer, store ObjectStore,
	bcryptCost int, log logging.Logger) *UserService {
	dummy, _ := auth.HashPassword("filekeeper-dummy-password", bcryptCost)
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		store:       store,
		bcryptCost:  bcryptCost,
		log:         log.With("module", "user_service"),
		dummyHash:   dummy,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. The email is stored trimmed and lowercased;
// a taken email yields common.ErrDuplicateIdentity.
func (s *UserService) Register(ctx context.Context, email, password, name, avatar string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", common.ErrorValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password is longer than %d bytes", common.ErrorValidation, maxPasswordBytes)
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrDuplicateIdentity
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := repo.Create(ctx, &models.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		AvatarImage:  strings.TrimSpace(avatar),
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return u, nil
}

// Login checks the credentials and returns the user with a fresh session
// token. Unknown email and wrong password both yield
// common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)

	u, err := repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.VerifyPassword(password, s.dummyHash)
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.VerifyPassword(password, u.PasswordHash) {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Encode(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("error issuing token: %w", err)
	}

	return u, token, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// Delete removes the account and every file it owns in one transaction.
// Stored content is removed after commit; failures there are logged and
// leave orphaned objects behind rather than failing the request.
func (s *UserService) Delete(ctx context.Context, id string) error {
	var keys []string

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repomanager.Users(tx)
		files := s.repomanager.Files(tx)

		if _, err := users.GetByID(ctx, id); err != nil {
			return err
		}

		owned, err := files.ListByOwner(ctx, id)
		if err != nil {
			return err
		}
		for _, f := range owned {
			if f.UploadStatus != models.UploadStatusEmpty {
				keys = append(keys, f.StorageKey)
			}
		}

		if _, err := files.DeleteByOwner(ctx, id); err != nil {
			return err
		}
		return users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.log.Warn(ctx, "failed to delete stored content", "user_id", id, "key", key, "error", err)
		}
	}

	return nil
}
