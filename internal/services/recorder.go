package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/tupyy/async-services/internal/models"
	"github.com/tupyy/async-services/pkg/manager"
)

const (
	defaultRecorderBuffer = 256
	defaultRecorderTries  = 5
	kindLabel             = "kind"
)

// TaskSaver persists task records.
type TaskSaver interface {
	Save(ctx context.Context, r models.TaskRecord) error
}

// Recorder persists the outcome of every finished task in the background.
// Register Observe as a manager observer.
type Recorder struct {
	saver    TaskSaver
	events   chan manager.Event
	done     chan struct{}
	mu       sync.RWMutex
	closed   bool
	maxTries uint
	interval time.Duration
}

type RecorderOption func(*Recorder)

func WithRecorderBuffer(n int) RecorderOption {
	return func(r *Recorder) {
		if n > 0 {
			r.events = make(chan manager.Event, n)
		}
	}
}

// WithRecorderRetry sets the maximum write attempts and the initial backoff interval.
func WithRecorderRetry(maxTries uint, initial time.Duration) RecorderOption {
	return func(r *Recorder) {
		r.maxTries = maxTries
		r.interval = initial
	}
}

func NewRecorder(saver TaskSaver, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		saver:    saver,
		events:   make(chan manager.Event, defaultRecorderBuffer),
		done:     make(chan struct{}),
		maxTries: defaultRecorderTries,
		interval: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(r)
	}
	go r.run()
	return r
}

// Observe queues ev for persistence. It never blocks: events are dropped when
// the buffer is full or the recorder is closed.
func (r *Recorder) Observe(ev manager.Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.events <- ev:
	default:
		zap.S().Named("recorder").Warnw("history buffer full, dropping record", "id", ev.ID, "status", ev.Status)
	}
}

// Close flushes the queued events and waits for them to be written.
func (r *Recorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.events)
	}
	r.mu.Unlock()
	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)
	for ev := range r.events {
		if err := r.save(ev); err != nil {
			zap.S().Named("recorder").Errorw("failed to persist task record", "id", ev.ID, "status", ev.Status, "error", err)
		}
	}
}

func (r *Recorder) save(ev manager.Event) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.interval

	op := func() (struct{}, error) {
		rec, err := NewTaskRecord(ev)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return struct{}{}, r.saver.Save(ctx, rec)
	}

	notify := func(err error, next time.Duration) {
		zap.S().Named("recorder").Debugw("retrying task record write", "id", ev.ID, "error", err, "next", next)
	}

	_, err := backoff.Retry(context.Background(), op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(r.maxTries),
		backoff.WithNotify(notify),
	)
	return err
}

// NewTaskRecord converts a manager event into a history record.
func NewTaskRecord(ev manager.Event) (models.TaskRecord, error) {
	rec := models.TaskRecord{
		ID:         ev.ID,
		Name:       ev.Name,
		Kind:       ev.Labels[kindLabel],
		Status:     ev.Status,
		QueuedAt:   ev.QueuedAt,
		FinishedAt: ev.FinishedAt,
	}
	if !ev.StartedAt.IsZero() {
		t := ev.StartedAt
		rec.StartedAt = &t
	}
	if ev.Err != nil {
		rec.Error = ev.Err.Error()
	}
	if ev.Value != nil {
		data, err := json.Marshal(ev.Value)
		if err != nil {
			return models.TaskRecord{}, fmt.Errorf("failed to encode result of task %s: %w", ev.ID, err)
		}
		rec.Result = data
	}
	return rec, nil
}
