package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Constraint errors returned by Classify. Each wraps ErrConstraintViolation.
var (
	ErrConstraintViolation = errors.New("constraint violation")

	ErrUniqueViolation     = fmt.Errorf("%w: unique", ErrConstraintViolation)
	ErrForeignKeyViolation = fmt.Errorf("%w: foreign key", ErrConstraintViolation)
	ErrNotNullViolation    = fmt.Errorf("%w: not null", ErrConstraintViolation)
	ErrCheckViolation      = fmt.Errorf("%w: check", ErrConstraintViolation)
)

// Classify maps a sqlite constraint failure onto one of the sentinels above.
// Any other error is returned unchanged.
func Classify(err error) error {
	var se sqlite3.Error
	if err == nil || !errors.As(err, &se) || se.Code != sqlite3.ErrConstraint {
		return err
	}

	switch se.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return fmt.Errorf("%w: %v", ErrUniqueViolation, se)
	case sqlite3.ErrConstraintForeignKey:
		return fmt.Errorf("%w: %v", ErrForeignKeyViolation, se)
	case sqlite3.ErrConstraintNotNull:
		return fmt.Errorf("%w: %v", ErrNotNullViolation, se)
	case sqlite3.ErrConstraintCheck:
		return fmt.Errorf("%w: %v", ErrCheckViolation, se)
	default:
		return fmt.Errorf("%w: %v", ErrConstraintViolation, se)
	}
}
