package domain

import "errors"

var (
	// ErrEmailTaken is returned when signing up with an already registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// that login failures never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound covers both a missing record and one owned by another user.
	ErrNotFound = errors.New("not found")
)
