package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgExclusionViolation = "23P01"

// IsExclusionConflict reports whether err comes from an exclusion constraint,
// e.g. a tstzrange overlap constraint on appointments.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}
