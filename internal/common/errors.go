// Package common defines shared constants and sentinel errors used across
// client and server layers of postboard. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors. Transports map each of these to one
	// caller-visible status.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorConflict     = errors.New("already exists")
	ErrorValidation   = errors.New("validation error")

	// Token resolution causes. They are always wrapped together with
	// ErrorUnauthorized and only surface in logs.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrStaleToken   = errors.New("token superseded by a newer login")

	// Photo storage is not configured on this server.
	ErrorPhotosDisabled = errors.New("photo storage disabled")
)
