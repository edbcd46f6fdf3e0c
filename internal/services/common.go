package services

import (
	"database/sql"
	"errors"

	intconfig "tours/internal/config"
	intdb "tours/internal/db"
	"tours/internal/domain"
)

func sharedDB(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}

// lookupErr turns a missing row into NotFoundError and anything else into
// InternalError.
func lookupErr(resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return internal(err)
}

// internal wraps infrastructure failures, leaving domain errors untouched.
func internal(err error) error {
	if err == nil {
		return nil
	}
	if domain.IsValidation(err) || domain.IsNotFound(err) || domain.IsConflict(err) ||
		domain.IsForbidden(err) || domain.IsUnauthorized(err) || domain.IsInternal(err) {
		return err
	}
	return domain.InternalError{Err: err}
}

// writeErr maps a duplicate key from MySQL into a conflict.
func writeErr(resource, msg string, err error) error {
	if err == nil {
		return nil
	}
	if intdb.IsDuplicateKey(err) {
		return domain.ConflictError{Resource: resource, Msg: msg, Err: err}
	}
	return internal(err)
}

func actorName(actor domain.RequestContext) string {
	if actor.Username != "" {
		return actor.Username
	}
	return "System"
}

func validID(field string, id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: field, Msg: "invalid id"}
	}
	return nil
}
