package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds      = errors.New("index out of range")
	ErrInteractiveStdin = errors.New("standard input is reserved for the terminal")
)
