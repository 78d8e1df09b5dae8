package client

import "errors"

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("already exists")
	ErrInvalid        = errors.New("invalid request")
	ErrPhotosDisabled = errors.New("photo storage disabled on server")
)
