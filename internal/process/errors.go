package process

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrNoCommand is returned when a Command has no executable path.
var ErrNoCommand = errors.New("no command specified")

// SpawnError means the external command could not be launched: the binary is
// missing, not executable, or the OS refused to create the process.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// WaitError means the process was started but could not be waited on, or its
// output could not be drained.
type WaitError struct {
	Path string
	Err  error
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("failed to wait for %s: %v", e.Path, e.Err)
}

func (e *WaitError) Unwrap() error { return e.Err }

// TimeoutError means the context was cancelled or its deadline passed before
// the process exited. The process is killed.
type TimeoutError struct {
	Path string
	Err  error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s did not finish: %v", e.Path, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// IsSpawnError checks if an error is a SpawnError.
func IsSpawnError(err error) bool {
	var se *SpawnError
	return errors.As(err, &se)
}

// IsWaitError checks if an error is a WaitError.
func IsWaitError(err error) bool {
	var we *WaitError
	return errors.As(err, &we)
}

// IsTimeoutError checks if an error is a TimeoutError.
func IsTimeoutError(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// IsNotFound reports whether err means the executable could not be found.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
