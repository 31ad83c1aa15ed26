package ports

import (
	"context"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

// TodoRepository persists per-owner todo lists. Lists are read and written
// whole: every mutation in the service layer is a read-modify-write of the
// owner's full list, mirroring the single-blob storage model.
type TodoRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error)
	SaveList(ctx context.Context, ownerID string, todos []domain.Todo) error
}
