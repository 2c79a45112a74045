package manager

import (
	"errors"
	"fmt"
)

var (
	ErrNotInitialized = errors.New("manager not initialized: Run has not started the dispatch loop")
	ErrStopped        = errors.New("manager stopped")
	ErrAlreadyRunning = errors.New("manager is already running")
	ErrTaskMissing    = errors.New("task not found")
	ErrInvalidState   = errors.New("task is in a terminal state")
	ErrTimeout        = errors.New("task timed out")
	ErrCancelled      = errors.New("task cancelled")
)

// Expected marks err as a benign failure of the work.
//
// The task still ends in StatusTaskException, but the runner logs it at warn
// level without a stack trace.
//
//	return nil, manager.Expected(fmt.Errorf("remote not ready: %w", err))
func Expected(err error) error {
	if err == nil {
		return nil
	}
	return expectedError{err: err}
}

// IsExpected reports whether err was wrapped with Expected.
func IsExpected(err error) bool {
	var e expectedError
	return errors.As(err, &e)
}

type expectedError struct{ err error }

func (e expectedError) Error() string { return e.err.Error() }
func (e expectedError) Unwrap() error { return e.err }

// PanicError is produced when the work or the callback panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func missing(id string) error {
	return fmt.Errorf("%w: %s", ErrTaskMissing, id)
}
