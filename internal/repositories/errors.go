package repositories

import "errors"

// Sentinel errors shared by all repository implementations. Services and
// handlers match on these with errors.Is; everything else is treated as a
// storage failure and passed through untouched.
var (
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrStrategyNotFound = errors.New("strategy not found")
)
