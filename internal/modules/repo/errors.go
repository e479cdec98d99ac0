package repo

import "errors"

var (
	// ErrUnavailable is returned when no datastore handle exists. Every repo
	// surfaces it except UserRepo.Upsert, which degrades silently so that
	// login paths stay functional.
	ErrUnavailable = errors.New("datastore unavailable")

	// ErrValidation is returned when a caller omits a required field.
	ErrValidation = errors.New("validation failed")
)
