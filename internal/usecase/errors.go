package usecase

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("resource not found")
	ErrUpstreamService = errors.New("upstream service error")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
)
