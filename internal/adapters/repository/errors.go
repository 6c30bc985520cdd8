package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrActivityNotFound  = errors.New("activity not found")
	ErrAlreadyRegistered = errors.New("student already signed up")
	ErrNotRegistered     = errors.New("student not registered")
)
