// Package handlers implements the HTTP API layer for async-services.
//
// Handlers delegate to the services layer and only deal with request
// parsing, model-to-API conversion and the mapping of service errors to HTTP
// status codes.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Body and parameter parsing                                   │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  TaskService │ JobService                                       │
//	└─────────────────────────────────────────────────────────────────┘
//
// The Handler implements the ServerInterface generated from the OpenAPI
// document and is registered with:
//
//	v1.RegisterHandlersWithOptions(router, handlers.New(taskSrv, jobSrv), opts)
//
// # API Endpoints
//
//	┌────────┬──────────────────┬──────────────────────────────────────────┐
//	│ Method │ Endpoint         │ Description                              │
//	├────────┼──────────────────┼──────────────────────────────────────────┤
//	│ GET    │ /tasks           │ Tracked tasks and manager counters       │
//	│ POST   │ /tasks           │ Submit a task (202, or 200 with wait)    │
//	│ GET    │ /tasks/{id}      │ Task status, terminal result read once   │
//	│ DELETE │ /tasks/{id}      │ Request cancellation (202)               │
//	│ GET    │ /kinds           │ Work kinds of the catalog                │
//	│ GET    │ /jobs            │ Cron jobs with next and previous runs    │
//	│ GET    │ /history         │ Finished tasks, paginated                │
//	│ GET    │ /history/export  │ Finished tasks as an XLSX workbook       │
//	└────────┴──────────────────┴──────────────────────────────────────────┘
//
// # Submitting a Task
//
//	POST /tasks
//	{
//	    "kind": "sleep",
//	    "name": "nap",
//	    "params": {"duration": "2s", "value": "rested"},
//	    "timeout": "5s",
//	    "wait": false,
//	    "callbackUrl": "http://hooks.local/done"
//	}
//
// Without wait the answer is 202 {"id": "...", "status": "queued"}. With wait
// the request blocks until the task is terminal and the answer is 200 with
// the final status, value and error.
//
// # Cancelling
//
// DELETE /tasks/{id} returns 202 once cancellation is requested. A finished
// task is left alone unless strict=true is given, in which case the answer is
// 409 Conflict.
//
// # History
//
// GET /history accepts repeated status and name filters, page (default 1)
// and pageSize (default 20, max 100):
//
//	{
//	    "page": 1,
//	    "pageCount": 3,
//	    "total": 42,
//	    "records": [
//	        {
//	            "id": "0b9c...",
//	            "name": "nap",
//	            "kind": "sleep",
//	            "status": "completed",
//	            "result": "rested",
//	            "queuedAt": "2026-01-01T12:00:00Z",
//	            "startedAt": "2026-01-01T12:00:00Z",
//	            "finishedAt": "2026-01-01T12:00:02Z",
//	            "durationMs": 2000
//	        }
//	    ]
//	}
//
// # Errors
//
//	┌──────────────────────────────────────────┬────────┐
//	│ Service error                            │ Status │
//	├──────────────────────────────────────────┼────────┤
//	│ ValidationError, UnknownWorkKindError    │ 400    │
//	│ ResourceNotFoundError                    │ 404    │
//	│ InvalidStateError                        │ 409    │
//	│ ManagerUnavailableError                  │ 503    │
//	│ anything else (logged)                   │ 500    │
//	└──────────────────────────────────────────┴────────┘
//
// Every error body is {"error": "message"}.
package handlers
