package manager

import "fmt"

// Status is the lifecycle state of a scheduled task.
type Status string

const (
	// StatusQueued - submitted and not yet finished (covers waiting and running)
	StatusQueued Status = "queued"
	// StatusCompleted - the work returned without error and within its timeout
	StatusCompleted Status = "completed"
	// StatusFailed - the work finished but the completion callback failed
	StatusFailed Status = "failed"
	// StatusCancelled - the work was cancelled before or during execution
	StatusCancelled Status = "cancelled"
	// StatusTimeout - the work did not finish within its time budget
	StatusTimeout Status = "timeout"
	// StatusTaskException - the work itself returned an error or panicked
	StatusTaskException Status = "task_exception"
)

// IsTerminal reports whether the status can no longer change.
func (s Status) IsTerminal() bool {
	return s != StatusQueued
}

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusQueued, StatusCompleted, StatusFailed, StatusCancelled, StatusTimeout, StatusTaskException:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid task status: %s", s)
	}
}
