// Package services contains server-side business logic: accounts
// (UserService) and the files each account owns (FileService).
package services

import "context"

// TokenIssuer mints session tokens for a signed-in user.
type TokenIssuer interface {
	Encode(userID string) (string, error)
}

// ObjectStore holds file content. Content is transferred by the client
// through presigned URLs; the server only signs and deletes.
type ObjectStore interface {
	PresignPut(ctx context.Context, key string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
