package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/files"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const maxTitleLength = 255

// FileService runs file operations on behalf of an authenticated actor.
// Every operation on an existing file first checks that the actor owns it.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       ObjectStore
	log         logging.Logger
	now         func() time.Time
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, store ObjectStore, log logging.Logger) *FileService {
	return &FileService{
		db:          db,
		repomanager: m,
		store:       store,
		log:         log.With("module", "file_service"),
		now:         time.Now,
	}
}

// StorageKey returns a fresh object key for content owned by userID.
func StorageKey(userID string, t time.Time) string {
	return fmt.Sprintf("users/%s/%04d/%02d/%02d/%v", userID, t.Year(), int(t.Month()), t.Day(), uuid.New())
}

func (s *FileService) files() files.Repository {
	return s.repomanager.Files(s.db)
}

// loadOwned fetches fileID and checks that actorID owns it. Ids that are not
// UUIDs cannot exist and are reported as common.ErrorNotFound.
func (s *FileService) loadOwned(ctx context.Context, actorID, fileID string) (*models.File, error) {
	if actorID == "" {
		return nil, common.ErrorUnauthorized
	}
	if _, err := uuid.Parse(fileID); err != nil {
		return nil, common.ErrorNotFound
	}

	f, err := s.files().GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if !f.OwnedBy(actorID) {
		return nil, common.ErrorForbidden
	}
	return f, nil
}

// CreateForOwner creates an empty, untitled file owned by actorID.
func (s *FileService) CreateForOwner(ctx context.Context, actorID string) (*models.File, error) {
	if actorID == "" {
		return nil, common.ErrorUnauthorized
	}

	f, err := s.files().Create(ctx, &models.File{
		UserID:     actorID,
		Title:      models.DefaultFileTitle,
		StorageKey: StorageKey(actorID, s.now().UTC()),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating file: %w", err)
	}
	return f, nil
}

// ListForOwner returns the actor's files oldest first, never nil.
func (s *FileService) ListForOwner(ctx context.Context, actorID string) ([]*models.File, error) {
	if actorID == "" {
		return nil, common.ErrorUnauthorized
	}

	list, err := s.files().ListByOwner(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	if list == nil {
		list = []*models.File{}
	}
	return list, nil
}

func (s *FileService) Get(ctx context.Context, actorID, fileID string) (*models.File, error) {
	return s.loadOwned(ctx, actorID, fileID)
}

// Delete removes the file and its stored content. Content goes first so a
// failed object delete leaves the row in place and the call can be retried.
func (s *FileService) Delete(ctx context.Context, actorID, fileID string) error {
	f, err := s.loadOwned(ctx, actorID, fileID)
	if err != nil {
		return err
	}

	if f.UploadStatus != models.UploadStatusEmpty {
		if err := s.store.Delete(ctx, f.StorageKey); err != nil {
			return fmt.Errorf("error deleting content: %w", err)
		}
	}

	return s.files().Delete(ctx, f.ID)
}

// Rename sets a new title. The title is trimmed and must not be empty.
func (s *FileService) Rename(ctx context.Context, actorID, fileID, title string) (*models.File, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, fmt.Errorf("%w: title is longer than %d characters", common.ErrorValidation, maxTitleLength)
	}

	f, err := s.loadOwned(ctx, actorID, fileID)
	if err != nil {
		return nil, err
	}

	return s.files().UpdateTitle(ctx, f.ID, title)
}

// UploadURL returns a presigned PUT URL for the file content and marks the
// upload as pending. Uploading again replaces the content.
func (s *FileService) UploadURL(ctx context.Context, actorID, fileID string) (string, error) {
	f, err := s.loadOwned(ctx, actorID, fileID)
	if err != nil {
		return "", err
	}

	url, err := s.store.PresignPut(ctx, f.StorageKey)
	if err != nil {
		return "", fmt.Errorf("error presigning upload: %w", err)
	}

	if _, err := s.files().SetUploadStatus(ctx, f.ID, models.UploadStatusPending); err != nil {
		return "", fmt.Errorf("error updating upload status: %w", err)
	}

	return url, nil
}

// CompleteUpload is called by the client once the PUT to the presigned URL
// has succeeded.
func (s *FileService) CompleteUpload(ctx context.Context, actorID, fileID string) (*models.File, error) {
	f, err := s.loadOwned(ctx, actorID, fileID)
	if err != nil {
		return nil, err
	}

	if f.UploadStatus == models.UploadStatusEmpty {
		return nil, fmt.Errorf("%w: no upload in progress", common.ErrorValidation)
	}

	return s.files().SetUploadStatus(ctx, f.ID, models.UploadStatusCompleted)
}

// DownloadURL returns a presigned GET URL for completed content.
func (s *FileService) DownloadURL(ctx context.Context, actorID, fileID string) (string, error) {
	f, err := s.loadOwned(ctx, actorID, fileID)
	if err != nil {
		return "", err
	}

	if f.UploadStatus != models.UploadStatusCompleted {
		return "", fmt.Errorf("%w: file has no content", common.ErrorValidation)
	}

	url, err := s.store.PresignGet(ctx, f.StorageKey)
	if err != nil {
		return "", fmt.Errorf("error presigning download: %w", err)
	}
	return url, nil
}
