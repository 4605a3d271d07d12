package utils

import "fmt"

// Error attaches the failing operation and the entry path to a cause.
type Error struct {
	Context string
	Path    string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Context, e.Path, e.Cause)
}

// Unwrap provides compatibility with errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WrapError creates a contextual error. A nil cause yields nil.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{
		Context: context,
		Cause:   cause,
	}
}

// WrapPathError is WrapError for a failure tied to an entry path.
func WrapPathError(context, path string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{
		Context: context,
		Path:    path,
		Cause:   cause,
	}
}
