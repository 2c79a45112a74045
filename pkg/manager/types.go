package manager

import (
	"context"
	"time"
)

// Work is the unit of computation submitted to the manager.
// It must return when ctx is done for cancellation and timeouts to be cooperative.
type Work func(ctx context.Context) (any, error)

// Callback is invoked once on the runner goroutine after the work reached a
// terminal state. A returned error (or a panic) turns the status into StatusFailed.
type Callback func(status Status, result any) error

// Result is the (status, result) pair observed by callers.
// Value is only meaningful when Status is StatusCompleted or StatusFailed.
type Result struct {
	Status Status
	Value  any
	Err    error
}

// Event is published to observers after the final status of a task was written.
type Event struct {
	ID         string
	Name       string
	Labels     map[string]string
	Status     Status
	Value      any
	Err        error
	QueuedAt   time.Time
	StartedAt  time.Time
	FinishedAt time.Time
}

// TaskInfo is a non-consuming view of a tracked task.
type TaskInfo struct {
	ID       string
	Name     string
	Labels   map[string]string
	Status   Status
	Running  bool
	QueuedAt time.Time
}

// Snapshot is a lightweight view for diagnostics.
type Snapshot struct {
	Running        bool
	Tracked        int
	Queued         int
	InFlight       int
	Pending        int
	MaxConcurrency int
	Accepted       uint64
	Finished       uint64
}

type queue[T any] []T

func (wq *queue[T]) Len() int { return len(*wq) }

func (wq *queue[T]) Pop() T {
	old := *wq
	x := old[0]
	var zero T
	old[0] = zero
	*wq = old[1:]
	return x
}

func (wq *queue[T]) Push(t T) {
	*wq = append(*wq, t)
}

// Extract removes and returns every element matching fn, preserving order of the rest.
func (wq *queue[T]) Extract(fn func(T) bool) []T {
	var out []T
	kept := (*wq)[:0]
	for _, t := range *wq {
		if fn(t) {
			out = append(out, t)
			continue
		}
		kept = append(kept, t)
	}
	*wq = kept
	return out
}

type request struct {
	id       string
	name     string
	labels   map[string]string
	work     Work
	callback Callback
	timeout  time.Duration
	ctx      context.Context
	cancel   context.CancelCauseFunc
}

type scheduleOptions struct {
	name     string
	labels   map[string]string
	timeout  time.Duration
	callback Callback
}

// ScheduleOption configures a single submission.
type ScheduleOption func(*scheduleOptions)

// WithTimeout bounds the execution of the work. Zero means wait forever.
func WithTimeout(d time.Duration) ScheduleOption {
	return func(o *scheduleOptions) {
		o.timeout = d
	}
}

// WithCallback sets the completion callback.
func WithCallback(cb Callback) ScheduleOption {
	return func(o *scheduleOptions) {
		o.callback = cb
	}
}

// WithName labels the task in logs, snapshots and events.
func WithName(name string) ScheduleOption {
	return func(o *scheduleOptions) {
		o.name = name
	}
}

// WithLabel attaches a key/value pair carried by TaskInfo and Event.
func WithLabel(key, value string) ScheduleOption {
	return func(o *scheduleOptions) {
		if o.labels == nil {
			o.labels = make(map[string]string)
		}
		o.labels[key] = value
	}
}

// Option configures the manager.
type Option func(*Manager)

// WithMaxConcurrency bounds the number of tasks running at once. Zero means unbounded.
func WithMaxConcurrency(n int) Option {
	return func(m *Manager) {
		if n < 0 {
			n = 0
		}
		m.maxConcurrency = n
	}
}

// WithDefaultTimeout applies to submissions that do not set WithTimeout.
func WithDefaultTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d < 0 {
			d = 0
		}
		m.defaultTimeout = d
	}
}

// WithObserver registers fn to be called with every terminal event.
// Observers run on the runner goroutine and must not block.
func WithObserver(fn func(Event)) Option {
	return func(m *Manager) {
		if fn != nil {
			m.observers = append(m.observers, fn)
		}
	}
}
