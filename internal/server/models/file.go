// Package models defines server-side data models persisted in the database.
package models

import "time"

// Upload states of a file's content blob.
const (
	UploadStatusEmpty     = "empty"
	UploadStatusPending   = "pending"
	UploadStatusCompleted = "completed"
)

// DefaultFileTitle is given to files created without a title.
const DefaultFileTitle = "Untitled"

// File is a user-owned resource. Its content lives in object storage under
// StorageKey; the row only carries metadata.
type File struct {
	ID string
	// UserID is the single owner of the file.
	UserID string
	Title  string

	StorageKey string
	// UploadStatus tracks the content blob: "empty", "pending" or "completed".
	UploadStatus string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether userID owns the file.
func (f *File) OwnedBy(userID string) bool {
	return f != nil && userID != "" && f.UserID == userID
}
