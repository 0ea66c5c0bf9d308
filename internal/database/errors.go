package database

import "errors"

// Sentinel errors surfaced by the store. Handlers translate these into
// flash messages and redirects; nothing here is fatal to the process.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateUser    = errors.New("username or email already taken")
)
