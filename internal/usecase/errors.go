package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnknownSport          = errors.New("unknown sport")
	ErrMissingNaturalKey     = errors.New("missing natural key")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
