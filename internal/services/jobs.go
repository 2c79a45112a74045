package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tupyy/async-services/internal/jobs"
	"github.com/tupyy/async-services/internal/models"
)

// Submitter schedules a task from a request.
type Submitter interface {
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
}

type jobEntry struct {
	id  cron.EntryID
	def jobs.Definition
}

// JobService triggers task submissions on cron schedules.
// Every trigger waits for its task and consumes the result.
type JobService struct {
	mu        sync.Mutex
	c         *cron.Cron
	submitter Submitter
	entries   map[string]jobEntry
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewJobService(submitter Submitter, loc *time.Location) *JobService {
	if loc == nil {
		loc = time.Local
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &JobService{
		c:         cron.New(cron.WithParser(jobs.Parser), cron.WithLocation(loc)),
		submitter: submitter,
		entries:   make(map[string]jobEntry),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *JobService) Start() {
	s.c.Start()
}

// Stop stops the scheduler and cancels the tasks of running triggers.
// The returned context is done once running triggers returned.
func (s *JobService) Stop() context.Context {
	s.cancel()
	return s.c.Stop()
}

// Reload replaces every registered job with defs. Nothing changes when one of them is invalid.
func (s *JobService) Reload(defs []jobs.Definition) error {
	if err := (&jobs.File{Jobs: defs}).Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for name, e := range s.entries {
		s.c.Remove(e.id)
		delete(s.entries, name)
	}

	for _, def := range defs {
		id, err := s.c.AddFunc(def.Schedule, s.trigger(def))
		if err != nil {
			return fmt.Errorf("job %q: %w", def.Name, err)
		}
		s.entries[def.Name] = jobEntry{id: id, def: def}
	}

	zap.S().Named("job_service").Infow("jobs loaded", "count", len(defs))
	return nil
}

// Entries returns the registered jobs sorted by name.
func (s *JobService) Entries() []models.JobEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.JobEntry, 0, len(s.entries))
	for name, e := range s.entries {
		ce := s.c.Entry(e.id)
		out = append(out, models.JobEntry{
			Name:     name,
			Schedule: e.def.Schedule,
			Kind:     e.def.Kind,
			Next:     ce.Next,
			Prev:     ce.Prev,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *JobService) trigger(def jobs.Definition) func() {
	return func() {
		log := zap.S().Named("job_service")
		res, err := s.submitter.Submit(s.ctx, SubmitRequest{
			Kind:    def.Kind,
			Name:    def.Name,
			Params:  def.Params,
			Timeout: def.Timeout,
			Wait:    true,
		})
		if err != nil {
			if s.ctx.Err() != nil {
				log.Debugw("job cancelled", "job", def.Name)
				return
			}
			log.Errorw("job failed", "job", def.Name, "error", err)
			return
		}
		if res.Result == nil {
			log.Debugw("job triggered", "job", def.Name, "id", res.ID)
			return
		}
		log.Debugw("job finished", "job", def.Name, "id", res.ID, "status", res.Result.Status)
	}
}
