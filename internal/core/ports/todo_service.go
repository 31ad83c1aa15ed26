package ports

import (
	"context"
	"time"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

// TodoService covers all task operations. Every call is scoped to the
// acting user's id; an empty ownerID fails with domain.ErrNoSession.
type TodoService interface {
	Add(ctx context.Context, ownerID, task string, dueDate time.Time) (*domain.Todo, error)
	// ToggleComplete flips the completed flag. Absent ids are a no-op and
	// return (nil, nil).
	ToggleComplete(ctx context.Context, ownerID string, id int64) (*domain.Todo, error)
	// Edit replaces the task text when newTask is non-blank after trimming;
	// otherwise it is a no-op.
	Edit(ctx context.Context, ownerID string, id int64, newTask string) (*domain.Todo, error)
	Delete(ctx context.Context, ownerID string, id int64) error
	// DeleteAll clears the owner's list. confirm must be true: the explicit
	// confirmation step lives in the contract, not the UI.
	DeleteAll(ctx context.Context, ownerID string, confirm bool) error
	// List returns a derived view; it never mutates storage.
	List(ctx context.Context, ownerID string, mode domain.FilterMode) ([]domain.Todo, error)
}
