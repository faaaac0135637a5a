package users

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/picshare/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint breach.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func storeError(err error) error {
	return fmt.Errorf("%w: db error: %w", common.ErrStoreUnavailable, err)
}
