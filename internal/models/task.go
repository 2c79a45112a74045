package models

import (
	"time"

	"github.com/tupyy/async-services/pkg/manager"
)

// TaskRecord is the persisted outcome of a finished task.
type TaskRecord struct {
	ID         string
	Name       string
	Kind       string
	Status     manager.Status
	Result     []byte // JSON encoded value, nil when there is none
	Error      string
	QueuedAt   time.Time
	StartedAt  *time.Time
	FinishedAt time.Time
}

// Duration is the execution time, zero when the work never started.
func (r TaskRecord) Duration() time.Duration {
	if r.StartedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(*r.StartedAt)
}

// Task is a live view of a task tracked by the manager.
type Task struct {
	ID       string
	Name     string
	Kind     string
	Status   manager.Status
	Running  bool
	QueuedAt time.Time
}

// TaskResult is what a caller gets back when it checks a task.
type TaskResult struct {
	ID     string
	Status manager.Status
	Value  any
	Error  string
}

type ManagerStatus struct {
	Running        bool
	Tracked        int
	Queued         int
	InFlight       int
	Pending        int
	MaxConcurrency int
	Accepted       uint64
	Finished       uint64
}

func NewManagerStatus(s manager.Snapshot) ManagerStatus {
	return ManagerStatus(s)
}
