package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/picshare/internal/common"
	"github.com/dmitrijs2005/picshare/internal/dbx"
	"github.com/dmitrijs2005/picshare/internal/server/models"
)

type PostgresRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

func (r *PostgresRepository) Create(ctx context.Context, id string, userID int64, validity time.Duration) (time.Time, error) {

	query :=
		`INSERT INTO sessions (id, user_id, expires_at)
         VALUES ($1, $2, $3)
		 `

	expires := r.now().Add(validity).UTC().Truncate(time.Microsecond)

	_, err := r.db.ExecContext(ctx, query, id, userID, expires)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: error performing sql request: %w", common.ErrStoreUnavailable, err)
	}

	return expires, nil
}

func (r *PostgresRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	query :=
		`SELECT id, user_id, expires_at, created_at FROM sessions
		 WHERE id = $1
		 `

	s := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: error performing sql request: %w", common.ErrStoreUnavailable, err)
	}

	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%w: error performing sql request: %w", common.ErrStoreUnavailable, err)
	}

	return nil
}
