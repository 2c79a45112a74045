package models

import "time"

// JobEntry describes a scheduled cron job.
type JobEntry struct {
	Name     string
	Schedule string
	Kind     string
	Next     time.Time
	Prev     time.Time
}

// WorkKind describes a work kind that can be submitted by name.
type WorkKind struct {
	Name        string
	Description string
	Params      []string
}
