// Package pgutil translates Postgres driver errors into storefront errors.
package pgutil

import (
	"errors"

	"storefront/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// ConstraintName returns the violated constraint, if any.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// MapWriteError converts a unique violation into errs.ConflictError naming
// paramName/value; other errors pass through.
func MapWriteError(err error, paramName string, value any) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return errs.NewConflictErrorWithCause(paramName, value, err)
	}
	return err
}

// MapReadError converts gorm.ErrRecordNotFound into errs.ObjectNotFoundError.
func MapReadError(err error, paramName string, id any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(paramName, id)
	}
	return err
}
