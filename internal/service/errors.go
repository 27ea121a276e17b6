package service

import "errors"

var (
	// ErrValidation marks a request rejected before reaching any vendor.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidPassword is returned by Login when the shared password
	// does not match.
	ErrInvalidPassword = errors.New("invalid password")
)
