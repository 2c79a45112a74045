package store

// Task history queries
const (
	queryUpsertTaskRecord = `
		INSERT INTO task_history (id, name, kind, status, result, error, queued_at, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			kind = EXCLUDED.kind,
			status = EXCLUDED.status,
			result = EXCLUDED.result,
			error = EXCLUDED.error,
			queued_at = EXCLUDED.queued_at,
			started_at = EXCLUDED.started_at,
			finished_at = EXCLUDED.finished_at`

	queryPurgeTaskRecords = `DELETE FROM task_history WHERE finished_at < ?`
)

const taskHistoryTable = "task_history"

var taskRecordColumns = []string{
	"id", "name", "kind", "status", "result", "error", "queued_at", "started_at", "finished_at",
}
