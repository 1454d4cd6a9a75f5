package models

import "errors"

// Application-wide standard errors. Wrap them with fmt.Errorf("%w: ...") and match with errors.Is.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("resource not found")
	ErrValidation      = errors.New("validation failed")
	ErrExternalService = errors.New("external service failure")
	ErrUnsupportedMode = errors.New("unsupported mode")
)
