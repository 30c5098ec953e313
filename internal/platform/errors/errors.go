package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrStopDeclined        = errors.New("stop declined")
	ErrAlreadySigned       = errors.New("session already signed")
	ErrForbiddenSource     = errors.New("transition source not allowed for crew member")
)
