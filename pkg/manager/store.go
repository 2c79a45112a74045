package manager

import (
	"context"
	"time"
)

// entry is a Result Store record.
type entry struct {
	name      string
	labels    map[string]string
	status    Status
	value     any
	err       error
	queuedAt  time.Time
	startedAt time.Time
	done      chan struct{}
}

func (e *entry) result() Result {
	return Result{Status: e.status, Value: e.value, Err: e.err}
}

// handle is an Active Task Table record.
// running is false until the runner starts the work and again once it finished.
type handle struct {
	cancel  context.CancelCauseFunc
	running bool
}

// markRunning flags the task as started. It returns the start time.
func (m *Manager) markRunning(id string) time.Time {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.active[id]; ok {
		h.running = true
	}
	if e, ok := m.results[id]; ok {
		e.startedAt = now
	}
	return now
}

func (m *Manager) markIdle(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.active[id]; ok {
		h.running = false
	}
}

// record is the single authoritative write of a task's final state.
func (m *Manager) record(id string, res Result) (entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.results[id]
	if !ok || e.status.IsTerminal() {
		return entry{}, false
	}
	e.status = res.Status
	e.value = res.Value
	e.err = res.Err
	close(e.done)
	return *e, true
}

// forget drops a task from both stores.
func (m *Manager) forget(id string) {
	delete(m.results, id)
	delete(m.active, id)
}
