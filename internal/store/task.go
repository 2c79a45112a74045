package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tupyy/async-services/internal/models"
	srvErrors "github.com/tupyy/async-services/pkg/errors"
	"github.com/tupyy/async-services/pkg/manager"
)

// TaskStore persists the outcome of finished tasks.
type TaskStore struct {
	db QueryInterceptor
}

func NewTaskStore(db QueryInterceptor) *TaskStore {
	return &TaskStore{db: db}
}

// Save inserts or replaces the record with the same id.
func (s *TaskStore) Save(ctx context.Context, r models.TaskRecord) error {
	var result, startedAt any
	if r.Result != nil {
		result = string(r.Result)
	}
	if r.StartedAt != nil {
		startedAt = *r.StartedAt
	}
	_, err := s.db.ExecContext(ctx, queryUpsertTaskRecord,
		r.ID,
		r.Name,
		r.Kind,
		string(r.Status),
		result,
		r.Error,
		r.QueuedAt,
		startedAt,
		r.FinishedAt,
	)
	return err
}

func (s *TaskStore) Get(ctx context.Context, id string) (*models.TaskRecord, error) {
	query, args, err := sq.Select(taskRecordColumns...).
		From(taskHistoryTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	r, err := scanTaskRecord(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewResourceNotFoundError("task record", id)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *TaskStore) List(ctx context.Context, opts ...ListOption) ([]models.TaskRecord, error) {
	builder := sq.Select(taskRecordColumns...).From(taskHistoryTable)
	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.TaskRecord
	for rows.Next() {
		r, err := scanTaskRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Count ignores pagination, pass only filter options.
func (s *TaskStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From(taskHistoryTable)
	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// Purge deletes the records finished before olderThan and returns how many were removed.
func (s *TaskStore) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, queryPurgeTaskRecords, olderThan)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTaskRecord(row rowScanner) (models.TaskRecord, error) {
	var (
		r         models.TaskRecord
		status    string
		result    sql.NullString
		errMsg    sql.NullString
		startedAt sql.NullTime
	)
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Kind,
		&status,
		&result,
		&errMsg,
		&r.QueuedAt,
		&startedAt,
		&r.FinishedAt,
	)
	if err != nil {
		return models.TaskRecord{}, err
	}
	r.Status = manager.Status(status)
	if result.Valid {
		r.Result = []byte(result.String)
	}
	r.Error = errMsg.String
	if startedAt.Valid {
		t := startedAt.Time
		r.StartedAt = &t
	}
	return r, nil
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByStatus(statuses ...manager.Status) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(statuses) == 0 {
			return b
		}
		values := make([]string, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, string(s))
		}
		return b.Where(sq.Eq{"status": values})
	}
}

func ByName(names ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(names) == 0 {
			return b
		}
		return b.Where(sq.Eq{"name": names})
	}
}

func FinishedAfter(t time.Time) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if t.IsZero() {
			return b
		}
		return b.Where(sq.GtOrEq{"finished_at": t})
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

// WithDefaultSort orders by most recently finished first, id as tie-breaker.
func WithDefaultSort() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("finished_at DESC", "id ASC")
	}
}
