// Package services implements the business logic layer for async-services.
//
// This package sits between the HTTP handlers, the cron scheduler and the CLI
// on one side and the task manager and the history store on the other.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints)      cron triggers       CLI
//	    │                               │               │
//	    ▼                               ▼               │
//	Services Layer                                      │
//	    ├── TaskService ──► Manager, Catalog, Store ◄───┘
//	    ├── JobService ───► TaskService (Submitter)
//	    └── Recorder ─────► Store (TaskSaver)
//	            ▲
//	            └────────── Manager observer
//
// # TaskService
//
// TaskService turns a SubmitRequest into a scheduled task:
//
//  1. The work is built from the catalog (kind + params).
//  2. The task is named after the request or the kind and labelled with the kind.
//  3. When CallbackURL is set, a callback POSTs {"id","status","result"} to it.
//     A transport error or a non-2xx answer turns the task into "failed".
//  4. With Wait, Submit blocks until the task is terminal. If the caller goes
//     away first the task is cancelled.
//
// Manager errors are translated into the typed errors of pkg/errors:
//
//	┌─────────────────────────────┬──────────────────────────────┐
//	│ manager                     │ service                      │
//	├─────────────────────────────┼──────────────────────────────┤
//	│ ErrTaskMissing              │ ResourceNotFoundError        │
//	│ ErrInvalidState             │ InvalidStateError            │
//	│ ErrNotInitialized/ErrStopped│ ManagerUnavailableError      │
//	└─────────────────────────────┴──────────────────────────────┘
//
// # Recorder
//
// Recorder is registered as a manager observer. Every terminal event is
// queued in a bounded buffer and written to the task_history table by a
// single goroutine. Writes are retried with exponential backoff. A result
// that cannot be JSON encoded is a permanent error and is not retried.
// Close flushes the buffer.
//
// # JobService
//
// JobService registers the jobs of the YAML jobs file in a cron scheduler.
// Each trigger submits a task through the Submitter and does not wait for it.
// Reload swaps every entry at once and is used by the file watcher.
//
// Usage:
//
//	jobSrv := services.NewJobService(taskSrv, time.Local)
//	if err := jobSrv.Reload(file.Jobs); err != nil {
//	    return err
//	}
//	jobSrv.Start()
//	defer jobSrv.Stop()
package services
