package domain

import (
	"sync/atomic"
	"time"
)

// FilterMode selects a derived view of a todo list.
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterCompleted FilterMode = "completed"
	FilterPending   FilterMode = "pending"
)

// ParseFilter normalises a filter string; anything unrecognised means "all",
// matching the select-box default in the UI.
func ParseFilter(s string) FilterMode {
	switch FilterMode(s) {
	case FilterCompleted:
		return FilterCompleted
	case FilterPending:
		return FilterPending
	default:
		return FilterAll
	}
}

// Todo is a single task owned by one user. IDs are millisecond-timestamp
// derived; uniqueness is required, strict ordering is not.
type Todo struct {
	ID        int64     `json:"id"`
	Task      string    `json:"task"`
	DueDate   time.Time `json:"due_date"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   string    `json:"owner_id"`
}

// Matches reports whether the todo belongs to the given filter view.
func (t Todo) Matches(mode FilterMode) bool {
	switch mode {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	default:
		return true
	}
}

var lastTodoID atomic.Int64

// NewTodoID derives a fresh id from the wall clock, bumping past the
// previous one when two todos land in the same millisecond.
func NewTodoID(now time.Time) int64 {
	for {
		id := now.UnixMilli()
		last := lastTodoID.Load()
		if id <= last {
			id = last + 1
		}
		if lastTodoID.CompareAndSwap(last, id) {
			return id
		}
	}
}
