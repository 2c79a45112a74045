package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db    *sql.DB
	tasks *TaskStore
}

func NewStore(db *sql.DB) *Store {
	qi := NewQueryInterceptor(db)
	return &Store{
		db:    db,
		tasks: NewTaskStore(qi),
	}
}

func (s *Store) Tasks() *TaskStore {
	return s.tasks
}

func (s *Store) Close() error {
	return s.db.Close()
}
