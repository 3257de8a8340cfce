package domain

import "errors"

// Task errors
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrEmptyTitle   = errors.New("task title must not be empty")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)
