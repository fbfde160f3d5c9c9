package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrParentNotFound    = errors.New("referenced parent record not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateGoogleID = errors.New("google_id already linked")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps driver constraint failures onto the package sentinels.
// Errors it does not recognise are returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return duplicateFor(pgErr.ConstraintName + " " + pgErr.Detail)
		case pgForeignKeyViolation:
			return ErrParentNotFound
		}
	}

	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrParentNotFound
	}

	msg := err.Error()
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(msg, "UNIQUE constraint failed"):
		return duplicateFor(msg)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrParentNotFound
	}
	return err
}

func duplicateFor(hint string) error {
	if strings.Contains(hint, "google_id") {
		return ErrDuplicateGoogleID
	}
	return ErrDuplicateEmail
}
