package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/tupyy/async-services/internal/models"
	"github.com/tupyy/async-services/internal/store"
	"github.com/tupyy/async-services/internal/work"
	srvErrors "github.com/tupyy/async-services/pkg/errors"
	"github.com/tupyy/async-services/pkg/manager"
)

const defaultCallbackTimeout = 10 * time.Second

type SubmitRequest struct {
	Kind        string
	Name        string
	Params      map[string]string
	Timeout     time.Duration // zero uses the manager default
	Wait        bool
	CallbackURL string
}

type SubmitResult struct {
	ID string
	// Result is set when the request asked to wait.
	Result *models.TaskResult
}

type HistoryParams struct {
	Statuses []manager.Status
	Names    []string
	Since    time.Time
	Limit    uint64
	Offset   uint64
}

type HistoryResult struct {
	Records []models.TaskRecord
	Total   int
}

type TaskService struct {
	manager *manager.Manager
	catalog *work.Catalog
	store   *store.Store
	client  *http.Client
}

type TaskServiceOption func(*TaskService)

// WithHTTPClient sets the client used to deliver webhook callbacks.
func WithHTTPClient(c *http.Client) TaskServiceOption {
	return func(s *TaskService) {
		s.client = c
	}
}

func NewTaskService(m *manager.Manager, catalog *work.Catalog, st *store.Store, opts ...TaskServiceOption) *TaskService {
	s := &TaskService{
		manager: m,
		catalog: catalog,
		store:   st,
		client:  &http.Client{Timeout: defaultCallbackTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit builds the work from the catalog and schedules it.
// With Wait, it blocks until the task is terminal or ctx is done, in which case
// the task is cancelled.
func (s *TaskService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if req.Kind == "" {
		return nil, srvErrors.NewValidationError("kind", "is required")
	}
	if req.Timeout < 0 {
		return nil, srvErrors.NewValidationError("timeout", "must not be negative")
	}
	if req.CallbackURL != "" {
		u, err := url.Parse(req.CallbackURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, srvErrors.NewValidationError("callbackUrl", "must be an absolute http(s) url")
		}
	}

	w, err := s.catalog.Build(req.Kind, req.Params)
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = req.Kind
	}
	opts := []manager.ScheduleOption{
		manager.WithName(name),
		manager.WithLabel(kindLabel, req.Kind),
	}
	if req.Timeout > 0 {
		opts = append(opts, manager.WithTimeout(req.Timeout))
	}

	// the callback may run before Schedule returns the id
	ready := make(chan string, 1)
	if req.CallbackURL != "" {
		opts = append(opts, manager.WithCallback(s.webhook(req.CallbackURL, ready)))
	}

	id, err := s.manager.Schedule(w, opts...)
	if err != nil {
		return nil, mapManagerError(err, "")
	}
	ready <- id

	zap.S().Named("task_service").Debugw("task submitted", "id", id, "kind", req.Kind, "name", name)

	result := &SubmitResult{ID: id}
	if !req.Wait {
		return result, nil
	}

	res, err := s.manager.Wait(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			_ = s.manager.Cancel(id, false)
			// nobody else knows the id
			go func() { _, _ = s.manager.Wait(context.Background(), id) }()
			return nil, err
		}
		return nil, mapManagerError(err, id)
	}
	tr := newTaskResult(id, res)
	result.Result = &tr
	return result, nil
}

// Result returns the status of a task. A terminal result can be read only once.
func (s *TaskService) Result(id string) (models.TaskResult, error) {
	res, err := s.manager.CheckResult(id)
	if err != nil {
		return models.TaskResult{}, mapManagerError(err, id)
	}
	return newTaskResult(id, res), nil
}

// Peek is Result without consumption.
func (s *TaskService) Peek(id string) (models.TaskResult, error) {
	res, err := s.manager.Peek(id)
	if err != nil {
		return models.TaskResult{}, mapManagerError(err, id)
	}
	return newTaskResult(id, res), nil
}

// Cancel requests the cancellation of a task. With strict, cancelling a
// finished task is an InvalidStateError.
func (s *TaskService) Cancel(id string, strict bool) error {
	err := s.manager.Cancel(id, strict)
	if errors.Is(err, manager.ErrInvalidState) {
		state := "finished"
		if res, perr := s.manager.Peek(id); perr == nil {
			state = string(res.Status)
		}
		return srvErrors.NewInvalidStateError(id, state)
	}
	if err != nil {
		return mapManagerError(err, id)
	}
	return nil
}

// List returns the tracked tasks, oldest first.
func (s *TaskService) List() []models.Task {
	infos := s.manager.List()
	tasks := make([]models.Task, 0, len(infos))
	for _, t := range infos {
		tasks = append(tasks, models.Task{
			ID:       t.ID,
			Name:     t.Name,
			Kind:     t.Labels[kindLabel],
			Status:   t.Status,
			Running:  t.Running,
			QueuedAt: t.QueuedAt,
		})
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].QueuedAt.Equal(tasks[j].QueuedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].QueuedAt.Before(tasks[j].QueuedAt)
	})
	return tasks
}

func (s *TaskService) Snapshot() models.ManagerStatus {
	return models.NewManagerStatus(s.manager.Snapshot())
}

func (s *TaskService) Kinds() []models.WorkKind {
	return s.catalog.Kinds()
}

func (s *TaskService) History(ctx context.Context, params HistoryParams) (*HistoryResult, error) {
	filters := []store.ListOption{
		store.ByStatus(params.Statuses...),
		store.ByName(params.Names...),
		store.FinishedAfter(params.Since),
	}

	opts := append([]store.ListOption{}, filters...)
	opts = append(opts, store.WithDefaultSort())
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}

	records, err := s.store.Tasks().List(ctx, opts...)
	if err != nil {
		return nil, err
	}

	total, err := s.store.Tasks().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	return &HistoryResult{Records: records, Total: total}, nil
}

type webhookPayload struct {
	ID     string         `json:"id"`
	Status manager.Status `json:"status"`
	Result any            `json:"result"`
}

func (s *TaskService) webhook(target string, ready <-chan string) manager.Callback {
	return func(status manager.Status, result any) error {
		id := <-ready

		body, err := json.Marshal(webhookPayload{ID: id, Status: status, Result: result})
		if err != nil {
			return fmt.Errorf("failed to encode callback payload: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), defaultCallbackTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("callback request failed: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			zap.S().Named("task_service").Debugw("callback delivered", "id", id, "url", target, "status", status)
			return nil
		default:
			return fmt.Errorf("callback %s returned %d", target, resp.StatusCode)
		}
	}
}

func newTaskResult(id string, res manager.Result) models.TaskResult {
	tr := models.TaskResult{ID: id, Status: res.Status, Value: res.Value}
	if res.Err != nil {
		tr.Error = res.Err.Error()
	}
	return tr
}

func mapManagerError(err error, id string) error {
	switch {
	case errors.Is(err, manager.ErrTaskMissing):
		return srvErrors.NewTaskNotFoundError(id)
	case errors.Is(err, manager.ErrNotInitialized), errors.Is(err, manager.ErrStopped):
		return srvErrors.NewManagerUnavailableError(err)
	default:
		return err
	}
}
