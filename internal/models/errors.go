package models

import "errors"

// Shared failure categories. Callers branch with errors.Is; anything that
// does not match one of these is an underlying storage failure.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
)
