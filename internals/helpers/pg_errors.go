package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation: pelanggaran unique constraint Postgres (SQLSTATE 23505).
// Dipakai untuk remap race-condition duplicate insert menjadi 409 Conflict.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
