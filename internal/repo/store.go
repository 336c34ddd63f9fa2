// Package repo is the persistence gateway over Postgres. Each entity gets
// a repository struct; multi-row student writes go through the Tx unit of
// work returned by MahasiswaRepo.BeginTx.
package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation. The constraint is the authoritative guard against concurrent
// writers; advisory pre-checks in the service layer only improve messages.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// IsForeignKeyViolation reports whether err is a Postgres foreign key
// violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
