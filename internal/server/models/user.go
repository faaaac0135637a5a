package models

import "time"

// User is a registered account. PasswordHash holds a bcrypt digest, never
// the plaintext password.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
