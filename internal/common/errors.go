// Package common defines shared constants and sentinel errors used across
// PicShare layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Input errors.
	ErrValidation        = errors.New("validation error")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrNoFileSelected    = errors.New("no file selected")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")

	// Backend errors. Neither is retried.
	ErrStoreUnavailable   = errors.New("credential store unavailable")
	ErrStorageUnavailable = errors.New("object storage unavailable")
)
