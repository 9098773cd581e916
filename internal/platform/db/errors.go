package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUniqueViolation     = errors.New("db: unique violation")
	ErrForeignKeyViolation = errors.New("db: foreign key violation")
	ErrCheckViolation      = errors.New("db: check violation")
)

// Classify maps postgres constraint errors to the sentinel errors of this package.
// The original error stays in the chain.
func Classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	var sentinel error
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		sentinel = ErrUniqueViolation
	case pgerrcode.ForeignKeyViolation:
		sentinel = ErrForeignKeyViolation
	case pgerrcode.CheckViolation:
		sentinel = ErrCheckViolation
	default:
		return err
	}

	return fmt.Errorf("%w (%s): %w", sentinel, pgErr.ConstraintName, err)
}

// Constraint returns the name of the violated constraint, if any.
func Constraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
