// Package users declares and implements the credential store.
package users

import (
	"context"

	"github.com/dmitrijs2005/picshare/internal/server/models"
)

// Repository persists user accounts. There are no update or delete
// operations.
type Repository interface {
	// Create inserts user and fills in its ID. Username uniqueness is
	// enforced by the database; a duplicate yields common.ErrDuplicateUsername.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByLogin does an exact, case-sensitive username lookup.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)

	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}
