package usecase

import "errors"

// Sentinels shared across usecases; handlers map them onto HTTP
// statuses with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")
)
