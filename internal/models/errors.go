package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrForbidden          = errors.New("models: forbidden")
	ErrConflict           = errors.New("models: conflicting state")
	ErrInvalidTransition  = errors.New("models: invalid status transition")
	ErrInvalidInput       = errors.New("models: invalid input")
)
