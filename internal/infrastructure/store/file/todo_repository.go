package file

import (
	"context"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

// TodoRepository persists all lists in one owner-keyed document, the same
// single-blob partitioning the storage model prescribes.
type TodoRepository struct {
	store *Store
}

func NewTodoRepository(store *Store) *TodoRepository {
	return &TodoRepository{store: store}
}

func (r *TodoRepository) all() (map[string][]domain.Todo, error) {
	lists := make(map[string][]domain.Todo)
	if _, err := r.store.load(keyTodos, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *TodoRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Todo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	lists, err := r.all()
	if err != nil {
		return nil, err
	}
	return append([]domain.Todo(nil), lists[ownerID]...), nil
}

func (r *TodoRepository) SaveList(_ context.Context, ownerID string, todos []domain.Todo) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	lists, err := r.all()
	if err != nil {
		return err
	}
	lists[ownerID] = todos
	return r.store.save(keyTodos, lists)
}
