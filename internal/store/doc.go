// Package store implements the data access layer for async-services.
//
// The store keeps the history of finished tasks in DuckDB. Queued and running
// tasks live only in the task manager and are never written here.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│                          TaskStore                              │
//	│                              ▼                                  │
//	│                        task_history                             │
//	├─────────────────────────────────────────────────────────────────┤
//	│              QueryInterceptor (debug SQL logging)               │
//	├─────────────────────────────────────────────────────────────────┤
//	│                       *sql.DB (duckdb)                          │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Opening the Database
//
//	NewDB("")                   in-memory database
//	NewDB(":memory:")           in-memory database
//	NewDB("/var/lib/x.duckdb")  file database, created when missing
//	NewReadOnlyDB(path)         existing file, no write lock taken
//
// # Migrations
//
// Tables are created by migrations.Run from the SQL files embedded in
// internal/store/migrations/sql/. Applied versions are tracked in
// schema_migrations and each file runs in its own transaction, so Run is
// idempotent.
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  task_history      │  One row per finished task                  │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// # TaskStore
//
// Schema:
//
//	task_history (
//	    id          VARCHAR PRIMARY KEY,
//	    name        VARCHAR,
//	    kind        VARCHAR,
//	    status      VARCHAR NOT NULL,
//	    result      VARCHAR,      -- JSON encoded value
//	    error       VARCHAR,
//	    queued_at   TIMESTAMP NOT NULL,
//	    started_at  TIMESTAMP,    -- NULL when the task never ran
//	    finished_at TIMESTAMP NOT NULL
//	)
//
// Methods:
//   - Save(ctx, record) → error (UPSERT on id)
//   - Get(ctx, id) → *models.TaskRecord, ResourceNotFoundError when missing
//   - List(ctx, opts...) → []models.TaskRecord
//   - Count(ctx, opts...) → int
//   - Purge(ctx, olderThan) → number of deleted rows
//
// List Options:
//
// List and Count take functional options that modify the squirrel
// SelectBuilder. Filters combine with AND, values of one filter with OR:
//
//	records, err := st.Tasks().List(ctx,
//	    store.ByStatus(manager.StatusTimeout, manager.StatusTaskException),
//	    store.ByName("nightly-report"),
//	    store.FinishedAfter(time.Now().Add(-24*time.Hour)),
//	    store.WithDefaultSort(),
//	    store.WithLimit(20),
//	    store.WithOffset(40),
//	)
//
//   - ByStatus(statuses ...manager.Status)   WHERE status IN (...)
//   - ByName(names ...string)                WHERE name IN (...)
//   - FinishedAfter(t time.Time)             WHERE finished_at >= t, ignored when zero
//   - WithDefaultSort()                      ORDER BY finished_at DESC, id ASC
//   - WithLimit(n), WithOffset(n)            pagination
//
// Count ignores sorting and pagination, so the same filters give the total
// of a paginated List.
//
// # Query Interceptor
//
// Every statement goes through QueryInterceptor which logs the query and its
// arguments at debug level on the "store" logger.
package store
