// Package sessions declares the server-side repository contract for login
// sessions referenced by session cookies.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/picshare/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking sessions.
type Repository interface {
	// Create stores session id for userID with an expiry of now+validity and
	// returns the stored expiry.
	Create(ctx context.Context, id string, userID int64, validity time.Duration) (time.Time, error)

	// Find looks up a session by id. Absent sessions yield common.ErrorNotFound.
	Find(ctx context.Context, id string) (*models.Session, error)

	// Delete removes a session. Deleting a non-existent session is not an error.
	Delete(ctx context.Context, id string) error
}
