package pyenv

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by operations on an Env after Close.
	ErrClosed = errors.New("environment is closed")
	// ErrNoPackages is returned by Install when no package names are given.
	ErrNoPackages = errors.New("no packages specified")
)

// PathError means the environment root cannot be used as a command argument:
// it is empty, contains a NUL byte, or is not valid UTF-8.
type PathError struct {
	Path   string
	Reason string
	Err    error
}

func (e *PathError) Error() string {
	msg := fmt.Sprintf("invalid environment path %q: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PathError) Unwrap() error { return e.Err }

// IoError is a filesystem or input failure around an operation: creating the
// package directory, reading the env file, or reading a prompt response.
type IoError struct {
	Op  string
	Err error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// IsPathError checks if an error is a PathError.
func IsPathError(err error) bool {
	var pe *PathError
	return errors.As(err, &pe)
}

// IsIoError checks if an error is an IoError.
func IsIoError(err error) bool {
	var ie *IoError
	return errors.As(err, &ie)
}
