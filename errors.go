package svdb

import (
	"errors"
)

var (
	// ErrInvalidArgument is returned when a required argument is missing:
	// an empty id or a nil vector.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")
)
