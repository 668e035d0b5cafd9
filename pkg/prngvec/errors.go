package prngvec

import "errors"

// Sentinel errors for common error conditions
var (
	// Configuration errors
	ErrInvalidSplit  = errors.New("invalid split")
	ErrInvalidJump   = errors.New("invalid jump")
	ErrUnknownFamily = errors.New("unknown generator family")
	ErrInvalidName   = errors.New("invalid artifact name")

	// Version/compatibility errors
	ErrIncompatibleVersion = errors.New("incompatible vector format version")
)
