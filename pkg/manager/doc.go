// Package manager runs submitted work concurrently and keeps a queryable
// status for every task until the caller consumes it.
//
// A Manager owns one dispatch loop. Submissions are handed to the loop over an
// unbuffered channel, buffered in a FIFO submission queue and started one
// goroutine per task. Every task has an id, a cancellable context and exactly
// one final status written by its runner.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                            Manager                                  │
//	│                                                                     │
//	│  Schedule(work) ──► results[id] = queued                            │
//	│        │            active[id]  = {cancel, running=false}           │
//	│        │                                                            │
//	│        ▼                                                            │
//	│  ┌────────────┐     ┌──────────────────────────────────────┐        │
//	│  │ work chan  │ ──► │  Submission Queue  [r1] [r2] [r3]     │        │
//	│  └────────────┘     └──────────────────┬───────────────────┘        │
//	│                                        │ dispatch()                 │
//	│                                        ▼                            │
//	│        ┌──────────────┐     ┌──────────────┐     ┌──────────────┐   │
//	│        │  runTask(r1) │     │  runTask(r2) │     │  runTask(rN) │   │
//	│        └──────┬───────┘     └──────┬───────┘     └──────┬───────┘   │
//	│               │                    │                    │           │
//	│               └────────────────────┼────────────────────┘           │
//	│                                    ▼                                │
//	│                       results[id] = terminal status                 │
//	│                                    │                                │
//	│                                    ▼                                │
//	│                   CheckResult(id) / Wait(ctx, id)                   │
//	└─────────────────────────────────────────────────────────────────────┘
//
// # Statuses
//
//	queued ──► completed
//	       ──► task_exception   work returned an error or panicked
//	       ──► timeout          work did not return within its timeout
//	       ──► cancelled        Cancel or Stop landed before the work returned
//	       ──► failed           the callback returned an error or panicked
//
// queued covers both "waiting for a slot" and "running". TaskInfo.Running
// tells them apart. A terminal status is written once and never changes.
//
// # Consumption
//
// CheckResult on a terminal task returns the result and forgets the task: a
// second call returns ErrTaskMissing. Peek and List never consume.
//
//	id, err := m.Schedule(work, manager.WithTimeout(5*time.Second))
//	if err != nil {
//	    return err
//	}
//	res, err := m.Wait(ctx, id)
//
// # Concurrency limit
//
// With WithMaxConcurrency(n) the loop starts at most n tasks at once. A task
// cancelled while waiting for a slot is resolved on the next loop iteration
// without running its work.
//
// # Shutdown
//
// Stop cancels the main context. Every task context derives from it, so
// running work is asked to return and pending requests are resolved as
// cancelled. Run returns once every runner has written its final status.
// Results stay readable after Stop. New submissions fail with ErrStopped.
//
// # Logging
//
// Errors raised by the work are logged on the "manager" named logger: at
// error level with a stack trace, or at warn level when wrapped with Expected.
package manager
