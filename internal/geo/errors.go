package geo

import "errors"

var (
	// ErrUnknownUnit is returned when a requested unit symbol is missing from
	// the unit table.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrEmptyInput is returned by operations that need at least one point.
	ErrEmptyInput = errors.New("empty point sequence")

	// ErrMissingMainPoint is returned by operations that measure from a main
	// point when none was set.
	ErrMissingMainPoint = errors.New("main point not set")

	ErrIndexOutOfRange = errors.New("point index out of range")
)
