package models

import "time"

// User is a registered account. PasswordHash holds a bcrypt hash and must
// never leave the server.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	AvatarImage  string
	CreatedAt    time.Time
}
