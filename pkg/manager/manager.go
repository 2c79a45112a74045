package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type state int

const (
	stateNew state = iota
	stateRunning
	stateStopped
)

type Manager struct {
	mu      sync.Mutex
	state   state
	results map[string]*entry
	active  map[string]*handle

	// owned by the dispatch loop
	pending queue[request]

	work       chan request
	wake       chan struct{}
	loopDone   chan struct{}
	done       chan struct{}
	mainCtx    context.Context
	mainCancel context.CancelCauseFunc
	wg         sync.WaitGroup
	loopOnce   sync.Once
	doneOnce   sync.Once

	inFlight     atomic.Int32
	pendingGauge atomic.Int32
	accepted     atomic.Uint64
	finished     atomic.Uint64

	maxConcurrency int
	defaultTimeout time.Duration
	observers      []func(Event)
}

func New(opts ...Option) *Manager {
	m := &Manager{
		work:     make(chan request),
		wake:     make(chan struct{}, 1),
		loopDone: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run initializes the stores and runs the dispatch loop on the calling goroutine
// until Stop is called or ctx is done. It returns once every started task has
// recorded its final status.
func (m *Manager) Run(ctx context.Context) error {
	m.mu.Lock()
	switch m.state {
	case stateRunning:
		m.mu.Unlock()
		return ErrAlreadyRunning
	case stateStopped:
		m.mu.Unlock()
		return ErrStopped
	}
	m.results = make(map[string]*entry)
	m.active = make(map[string]*handle)
	m.mainCtx, m.mainCancel = context.WithCancelCause(context.Background())
	m.state = stateRunning
	mainCtx := m.mainCtx
	m.mu.Unlock()

	stop := context.AfterFunc(ctx, m.Stop)
	defer stop()

	log().Infow("manager started", "max_concurrency", m.maxConcurrency, "default_timeout", m.defaultTimeout)

	m.loop(mainCtx)
	m.wg.Wait()
	m.closeDone()

	log().Infow("manager stopped", "accepted", m.accepted.Load(), "finished", m.finished.Load())
	return nil
}

// Stop cancels every tracked task and the dispatch loop. It does not wait:
// use Done to know when Run has returned.
func (m *Manager) Stop() {
	m.mu.Lock()
	prev := m.state
	m.state = stateStopped
	cancel := m.mainCancel
	m.mu.Unlock()

	switch prev {
	case stateNew:
		m.closeLoop()
		m.closeDone()
	case stateRunning:
		cancel(ErrStopped)
	}
}

// Done is closed when Run has returned.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// Schedule submits w and returns the task id immediately.
func (m *Manager) Schedule(w Work, opts ...ScheduleOption) (string, error) {
	if w == nil {
		return "", errors.New("work is nil")
	}
	o := scheduleOptions{timeout: m.defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeout < 0 {
		o.timeout = 0
	}

	m.mu.Lock()
	if err := m.checkStateLocked(true); err != nil {
		m.mu.Unlock()
		return "", err
	}
	id := uuid.NewString()
	ctx, cancel := context.WithCancelCause(m.mainCtx)
	m.results[id] = &entry{
		name:     o.name,
		labels:   o.labels,
		status:   StatusQueued,
		queuedAt: time.Now(),
		done:     make(chan struct{}),
	}
	m.active[id] = &handle{cancel: cancel}
	m.mu.Unlock()

	r := request{
		id:       id,
		name:     o.name,
		labels:   o.labels,
		work:     w,
		callback: o.callback,
		timeout:  o.timeout,
		ctx:      ctx,
		cancel:   cancel,
	}

	select {
	case m.work <- r:
		m.accepted.Add(1)
		return id, nil
	case <-m.loopDone:
		// the loop exited between the state check and the hand-off
		cancel(ErrStopped)
		m.mu.Lock()
		m.forget(id)
		m.mu.Unlock()
		return "", ErrStopped
	}
}

// ScheduleAndWait submits w and blocks until it reaches a terminal status.
// The result is consumed. If ctx expires first, the task is cancelled.
func (m *Manager) ScheduleAndWait(ctx context.Context, w Work, opts ...ScheduleOption) (Result, error) {
	id, err := m.Schedule(w, opts...)
	if err != nil {
		return Result{}, err
	}
	res, err := m.Wait(ctx, id)
	if err != nil && ctx.Err() != nil {
		_ = m.Cancel(id, false)
	}
	return res, err
}

// Wait blocks until the task reaches a terminal status and consumes its result.
func (m *Manager) Wait(ctx context.Context, id string) (Result, error) {
	m.mu.Lock()
	if err := m.checkStateLocked(false); err != nil {
		m.mu.Unlock()
		return Result{}, err
	}
	e, ok := m.results[id]
	if !ok {
		m.mu.Unlock()
		return Result{}, missing(id)
	}
	done := e.done
	m.mu.Unlock()

	select {
	case <-done:
		return m.CheckResult(id)
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// CheckResult returns the current status of a task. A terminal result is
// returned once: the task is forgotten right after.
func (m *Manager) CheckResult(id string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkStateLocked(false); err != nil {
		return Result{}, err
	}
	e, ok := m.results[id]
	if !ok {
		return Result{}, missing(id)
	}
	res := e.result()
	if res.Status.IsTerminal() {
		m.forget(id)
	}
	return res, nil
}

// Peek is CheckResult without consumption.
func (m *Manager) Peek(id string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkStateLocked(false); err != nil {
		return Result{}, err
	}
	e, ok := m.results[id]
	if !ok {
		return Result{}, missing(id)
	}
	return e.result(), nil
}

// Cancel requests cancellation of a queued task and returns without waiting
// for it to land. On a terminal task it returns ErrInvalidState when raise is
// true and nil otherwise.
func (m *Manager) Cancel(id string, raise bool) error {
	m.mu.Lock()
	if err := m.checkStateLocked(false); err != nil {
		m.mu.Unlock()
		return err
	}
	e, ok := m.results[id]
	if !ok {
		m.mu.Unlock()
		return missing(id)
	}
	if e.status.IsTerminal() {
		status := e.status
		m.mu.Unlock()
		if raise {
			return fmt.Errorf("%w: %s is %s", ErrInvalidState, id, status)
		}
		return nil
	}
	h := m.active[id]
	m.mu.Unlock()

	if h != nil {
		h.cancel(ErrCancelled)
	}
	m.poke()
	log().Debugw("task cancellation requested", "id", id, "name", e.name)
	return nil
}

// List returns a view of every tracked task, oldest first is not guaranteed.
func (m *Manager) List() []TaskInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TaskInfo, 0, len(m.results))
	for id, e := range m.results {
		info := TaskInfo{ID: id, Name: e.name, Labels: e.labels, Status: e.status, QueuedAt: e.queuedAt}
		if h, ok := m.active[id]; ok {
			info.Running = h.running
		}
		out = append(out, info)
	}
	return out
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	s := Snapshot{
		Running:        m.state == stateRunning,
		Tracked:        len(m.results),
		MaxConcurrency: m.maxConcurrency,
	}
	for _, e := range m.results {
		if !e.status.IsTerminal() {
			s.Queued++
		}
	}
	m.mu.Unlock()

	s.InFlight = int(m.inFlight.Load())
	s.Pending = int(m.pendingGauge.Load())
	s.Accepted = m.accepted.Load()
	s.Finished = m.finished.Load()
	return s
}

func (m *Manager) checkStateLocked(submit bool) error {
	switch m.state {
	case stateNew:
		return ErrNotInitialized
	case stateStopped:
		if submit {
			return ErrStopped
		}
	}
	return nil
}

func (m *Manager) poke() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *Manager) closeLoop() {
	m.loopOnce.Do(func() { close(m.loopDone) })
}

func (m *Manager) closeDone() {
	m.doneOnce.Do(func() { close(m.done) })
}

func log() *zap.SugaredLogger {
	return zap.S().Named("manager")
}
