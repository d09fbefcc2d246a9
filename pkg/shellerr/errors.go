// Package shellerr holds the error kinds shared by the namespace engine.
// Call sites wrap them with context; callers test with errors.Is.
package shellerr

import "errors"

var (
	// ErrInvalidArgument reports empty or malformed input to a factory or codec call.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound reports a path, identifier or named child the host could not resolve.
	ErrNotFound = errors.New("not found")

	// ErrRootNotFound reports that re-rooting exhausted every strategy.
	ErrRootNotFound = errors.New("root not found")
)
