package domain

import "errors"

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
)

// Resource errors
var (
	ErrDeckNotFound  = errors.New("deck not found")
	ErrSlideNotFound = errors.New("slide not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrNoViewAccess  = errors.New("no view access")
	ErrNoEditAccess  = errors.New("no edit access")
)

// Validation errors
var (
	ErrInvalidVisibility = errors.New("visibility must be private or public")
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
	ErrEmailRequired     = errors.New("email is required")
)
