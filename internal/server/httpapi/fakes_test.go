package httpapi

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/google/uuid"
)

type tokenEncoder interface {
	Encode(userID string) (string, error)
}

type fakeUsers struct {
	mu       sync.Mutex
	tokens   tokenEncoder
	byEmail  map[string]*models.User
	password map[string]string
	err      error
}

func newFakeUsers(tokens tokenEncoder) *fakeUsers {
	return &fakeUsers{tokens: tokens, byEmail: map[string]*models.User{}, password: map[string]string{}}
}

func (f *fakeUsers) Register(ctx context.Context, email, password, name, avatar string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}
	if _, ok := f.byEmail[email]; ok {
		return nil, common.ErrDuplicateIdentity
	}
	u := &models.User{ID: uuid.NewString(), Email: email, Name: name, AvatarImage: avatar,
		PasswordHash: "$2a$10$hash", CreatedAt: time.Now().UTC()}
	f.byEmail[email] = u
	f.password[u.ID] = password
	return u, nil
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok || f.password[u.ID] != password {
		return nil, "", common.ErrInvalidCredentials
	}
	tok, err := f.tokens.Encode(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for email, u := range f.byEmail {
		if u.ID == id {
			delete(f.byEmail, email)
			return nil
		}
	}
	return common.ErrorNotFound
}

// fakeFiles mirrors the ownership rules of the file service.
type fakeFiles struct {
	mu    sync.Mutex
	files map[string]*models.File
	order []string
	err   error

	// ownerExists mirrors the files.user_id foreign key.
	ownerExists func(id string) bool
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{files: map[string]*models.File{}}
}

func (f *fakeFiles) owned(actorID, fileID string) (*models.File, error) {
	if f.err != nil {
		return nil, f.err
	}
	file, ok := f.files[fileID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if file.UserID != actorID {
		return nil, common.ErrorForbidden
	}
	return file, nil
}

func (f *fakeFiles) CreateForOwner(ctx context.Context, actorID string) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.ownerExists != nil && !f.ownerExists(actorID) {
		return nil, common.ErrorUnauthorized
	}
	now := time.Now().UTC()
	file := &models.File{ID: uuid.NewString(), UserID: actorID, Title: models.DefaultFileTitle,
		StorageKey: "users/" + actorID + "/k", UploadStatus: models.UploadStatusEmpty, CreatedAt: now, UpdatedAt: now}
	f.files[file.ID] = file
	f.order = append(f.order, file.ID)
	return file, nil
}

func (f *fakeFiles) ListForOwner(ctx context.Context, actorID string) ([]*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.File{}
	for _, id := range f.order {
		if file, ok := f.files[id]; ok && file.UserID == actorID {
			out = append(out, file)
		}
	}
	return out, nil
}

func (f *fakeFiles) Get(ctx context.Context, actorID, fileID string) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.owned(actorID, fileID)
}

func (f *fakeFiles) Delete(ctx context.Context, actorID, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.owned(actorID, fileID); err != nil {
		return err
	}
	delete(f.files, fileID)
	return nil
}

func (f *fakeFiles) Rename(ctx context.Context, actorID, fileID, title string) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	}
	file, err := f.owned(actorID, fileID)
	if err != nil {
		return nil, err
	}
	file.Title = title
	return file, nil
}

func (f *fakeFiles) UploadURL(ctx context.Context, actorID, fileID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, err := f.owned(actorID, fileID)
	if err != nil {
		return "", err
	}
	file.UploadStatus = models.UploadStatusPending
	return "https://store.test/put/" + file.StorageKey, nil
}

func (f *fakeFiles) CompleteUpload(ctx context.Context, actorID, fileID string) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, err := f.owned(actorID, fileID)
	if err != nil {
		return nil, err
	}
	file.UploadStatus = models.UploadStatusCompleted
	return file, nil
}

func (f *fakeFiles) DownloadURL(ctx context.Context, actorID, fileID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, err := f.owned(actorID, fileID)
	if err != nil {
		return "", err
	}
	if file.UploadStatus != models.UploadStatusCompleted {
		return "", fmt.Errorf("%w: file has no content", common.ErrorValidation)
	}
	return "https://store.test/get/" + file.StorageKey, nil
}
