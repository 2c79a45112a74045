package v1

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.5.0 --config=types.cfg.yaml openapi.yaml
//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.5.0 --config=server.cfg.yaml openapi.yaml

import (
	"encoding/json"
	"time"

	"github.com/tupyy/async-services/internal/models"
	"github.com/tupyy/async-services/internal/services"
	srvErrors "github.com/tupyy/async-services/pkg/errors"
	"github.com/tupyy/async-services/pkg/manager"
)

// ToService converts the request body to a service request.
func (r SubmitRequest) ToService() (services.SubmitRequest, error) {
	req := services.SubmitRequest{Kind: r.Kind}
	if r.Name != nil {
		req.Name = *r.Name
	}
	if r.Params != nil {
		req.Params = *r.Params
	}
	if r.Wait != nil {
		req.Wait = *r.Wait
	}
	if r.CallbackUrl != nil {
		req.CallbackURL = *r.CallbackUrl
	}
	if r.Timeout != nil && *r.Timeout != "" {
		d, err := time.ParseDuration(*r.Timeout)
		if err != nil {
			return services.SubmitRequest{}, srvErrors.NewValidationError("timeout", err.Error())
		}
		if d <= 0 {
			return services.SubmitRequest{}, srvErrors.NewValidationError("timeout", "must be positive")
		}
		req.Timeout = d
	}
	return req, nil
}

// ParseStatuses converts the status filter. Unknown values are a ValidationError.
func ParseStatuses(values []string) ([]manager.Status, error) {
	statuses := make([]manager.Status, 0, len(values))
	for _, v := range values {
		s, err := manager.ParseStatus(v)
		if err != nil {
			return nil, srvErrors.NewValidationError("status", err.Error())
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

func NewTaskResultFromModel(r models.TaskResult) TaskResult {
	res := TaskResult{
		Id:     r.ID,
		Status: TaskStatus(r.Status),
		Value:  r.Value,
	}
	if r.Error != "" {
		res.Error = &r.Error
	}
	return res
}

func NewTaskFromModel(t models.Task) Task {
	task := Task{
		Id:       t.ID,
		Name:     t.Name,
		Status:   TaskStatus(t.Status),
		Running:  t.Running,
		QueuedAt: t.QueuedAt,
	}
	if t.Kind != "" {
		task.Kind = &t.Kind
	}
	return task
}

func NewManagerStatusFromModel(s models.ManagerStatus) ManagerStatus {
	return ManagerStatus{
		Running:        s.Running,
		Tracked:        s.Tracked,
		Queued:         s.Queued,
		InFlight:       s.InFlight,
		Pending:        s.Pending,
		MaxConcurrency: s.MaxConcurrency,
		Accepted:       int64(s.Accepted),
		Finished:       int64(s.Finished),
	}
}

func NewTaskListFromModel(tasks []models.Task, status models.ManagerStatus) TaskList {
	list := TaskList{
		Tasks:   make([]Task, 0, len(tasks)),
		Manager: NewManagerStatusFromModel(status),
	}
	for _, t := range tasks {
		list.Tasks = append(list.Tasks, NewTaskFromModel(t))
	}
	return list
}

func NewWorkKindFromModel(k models.WorkKind) WorkKind {
	params := k.Params
	if params == nil {
		params = []string{}
	}
	return WorkKind{Name: k.Name, Description: k.Description, Params: params}
}

// NewJobEntryFromModel converts a cron entry. Zero times are omitted.
func NewJobEntryFromModel(e models.JobEntry) JobEntry {
	entry := JobEntry{Name: e.Name, Schedule: e.Schedule, Kind: e.Kind}
	if !e.Next.IsZero() {
		next := e.Next
		entry.Next = &next
	}
	if !e.Prev.IsZero() {
		prev := e.Prev
		entry.Prev = &prev
	}
	return entry
}

func NewHistoryRecordFromModel(r models.TaskRecord) HistoryRecord {
	rec := HistoryRecord{
		Id:         r.ID,
		Name:       r.Name,
		Status:     TaskStatus(r.Status),
		QueuedAt:   r.QueuedAt,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		DurationMs: r.Duration().Milliseconds(),
	}
	if r.Kind != "" {
		rec.Kind = &r.Kind
	}
	if r.Error != "" {
		rec.Error = &r.Error
	}
	if len(r.Result) > 0 {
		rec.Result = json.RawMessage(r.Result)
	}
	return rec
}
