// Package files declares the repository contract for file metadata and its
// PostgreSQL implementation.
package files

import (
	"context"

	"github.com/dmitrijs2005/filekeeper/internal/server/models"
)

// Repository persists file rows. Ownership is not checked here: callers
// load a row, compare owners and only then mutate it.
type Repository interface {
	// Create inserts file and fills in ID, UploadStatus and timestamps.
	Create(ctx context.Context, file *models.File) (*models.File, error)
	// ListByOwner returns the user's files oldest first.
	ListByOwner(ctx context.Context, userID string) ([]*models.File, error)
	GetByID(ctx context.Context, id string) (*models.File, error)
	UpdateTitle(ctx context.Context, id string, title string) (*models.File, error)
	SetUploadStatus(ctx context.Context, id string, status string) (*models.File, error)
	// Delete removes one row; a missing row yields common.ErrorNotFound.
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, userID string) (int64, error)
}
