package manager

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
)

func (m *Manager) runTask(r request) {
	defer func() {
		m.inFlight.Add(-1)
		m.poke()
		m.wg.Done()
	}()

	var startedAt time.Time
	if r.ctx.Err() == nil {
		startedAt = m.markRunning(r.id)
	}

	res := m.execute(r)
	m.markIdle(r.id)

	if r.callback != nil {
		if err := m.invokeCallback(r, res); err != nil {
			logCallbackError(r, err)
			res.Status = StatusFailed
			res.Err = fmt.Errorf("callback: %w", err)
		}
	}

	e, ok := m.record(r.id, res)
	r.cancel(nil)
	if !ok {
		return
	}
	m.finished.Add(1)

	log().Debugw("task finished", "id", r.id, "name", r.name, "status", res.Status)

	m.publish(Event{
		ID:         r.id,
		Name:       r.name,
		Labels:     r.labels,
		Status:     res.Status,
		Value:      res.Value,
		Err:        res.Err,
		QueuedAt:   e.queuedAt,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	})
}

// execute runs the work under its timeout and classifies the outcome.
func (m *Manager) execute(r request) Result {
	if r.ctx.Err() != nil {
		return interrupted(r.ctx)
	}

	ctx := r.ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(r.ctx, r.timeout, ErrTimeout)
		defer cancel()
	}

	out := make(chan Result, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				out <- Result{Err: &PanicError{Value: rec, Stack: debug.Stack()}}
			}
		}()
		v, err := r.work(ctx)
		out <- Result{Value: v, Err: err}
	}()

	select {
	case o := <-out:
		if o.Err == nil {
			return Result{Status: StatusCompleted, Value: o.Value}
		}
		if ctx.Err() != nil {
			return interrupted(ctx)
		}
		logTaskError(r, o.Err)
		return Result{Status: StatusTaskException, Err: o.Err}
	case <-ctx.Done():
		return interrupted(ctx)
	}
}

func interrupted(ctx context.Context) Result {
	cause := context.Cause(ctx)
	if errors.Is(cause, ErrTimeout) {
		return Result{Status: StatusTimeout, Err: ErrTimeout}
	}
	if cause == nil || errors.Is(cause, context.Canceled) {
		cause = ErrCancelled
	}
	return Result{Status: StatusCancelled, Err: cause}
}

func (m *Manager) invokeCallback(r request, res Result) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Value: rec, Stack: debug.Stack()}
		}
	}()
	return r.callback(res.Status, res.Value)
}

func (m *Manager) publish(ev Event) {
	for _, fn := range m.observers {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					log().Errorw("observer panicked", "id", ev.ID, "panic", rec)
				}
			}()
			fn(ev)
		}()
	}
}

func logTaskError(r request, err error) {
	if IsExpected(err) {
		log().Warnw("task raised an expected error", "id", r.id, "name", r.name, "error", err)
		return
	}
	var pe *PanicError
	if errors.As(err, &pe) {
		log().Errorw("task panicked", "id", r.id, "name", r.name, "error", err, "stack", string(pe.Stack))
		return
	}
	log().Errorw("task raised an exception", "id", r.id, "name", r.name, "error", err, zap.Stack("stack"))
}

func logCallbackError(r request, err error) {
	var pe *PanicError
	if errors.As(err, &pe) {
		log().Errorw("task callback panicked", "id", r.id, "name", r.name, "error", err, "stack", string(pe.Stack))
		return
	}
	log().Errorw("task callback failed", "id", r.id, "name", r.name, "error", err, zap.Stack("stack"))
}
