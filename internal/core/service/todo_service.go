package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
	"github.com/fadilarbi/todo-offline/internal/core/ports"
)

// TodoService implements per-owner task CRUD and filtering. Every mutation
// persists the owner's full list immediately: no batching, no partial writes.
type TodoService struct {
	repo ports.TodoRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewTodoService(repo ports.TodoRepository, log zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, log: log, now: time.Now}
}

func (s *TodoService) Add(ctx context.Context, ownerID, task string, dueDate time.Time) (*domain.Todo, error) {
	if ownerID == "" {
		return nil, domain.ErrNoSession
	}
	task = strings.TrimSpace(task)
	if task == "" {
		return nil, domain.NewValidationError("task is required")
	}
	if dueDate.IsZero() {
		return nil, domain.NewValidationError("due date is required")
	}

	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("add todo: %w", err)
	}

	now := s.now().UTC()
	todo := domain.Todo{
		ID:        domain.NewTodoID(now),
		Task:      task,
		DueDate:   dueDate,
		Completed: false,
		CreatedAt: now,
		OwnerID:   ownerID,
	}

	if err := s.repo.SaveList(ctx, ownerID, append(list, todo)); err != nil {
		return nil, fmt.Errorf("add todo: %w", err)
	}
	s.log.Debug().Int64("id", todo.ID).Str("owner", ownerID).Msg("todo added")
	return &todo, nil
}

func (s *TodoService) ToggleComplete(ctx context.Context, ownerID string, id int64) (*domain.Todo, error) {
	if ownerID == "" {
		return nil, domain.ErrNoSession
	}

	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("toggle todo: %w", err)
	}

	for i := range list {
		if list[i].ID != id {
			continue
		}
		list[i].Completed = !list[i].Completed
		if err := s.repo.SaveList(ctx, ownerID, list); err != nil {
			return nil, fmt.Errorf("toggle todo: %w", err)
		}
		return &list[i], nil
	}

	// Absent id is a no-op, not an error.
	return nil, nil
}

func (s *TodoService) Edit(ctx context.Context, ownerID string, id int64, newTask string) (*domain.Todo, error) {
	if ownerID == "" {
		return nil, domain.ErrNoSession
	}
	newTask = strings.TrimSpace(newTask)

	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("edit todo: %w", err)
	}

	for i := range list {
		if list[i].ID != id {
			continue
		}
		if newTask == "" {
			// Blank edits leave the task untouched.
			return &list[i], nil
		}
		list[i].Task = newTask
		if err := s.repo.SaveList(ctx, ownerID, list); err != nil {
			return nil, fmt.Errorf("edit todo: %w", err)
		}
		return &list[i], nil
	}

	return nil, nil
}

func (s *TodoService) Delete(ctx context.Context, ownerID string, id int64) error {
	if ownerID == "" {
		return domain.ErrNoSession
	}

	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	kept := list[:0]
	for _, t := range list {
		if t.ID != id {
			kept = append(kept, t)
		}
	}

	if err := s.repo.SaveList(ctx, ownerID, kept); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

func (s *TodoService) DeleteAll(ctx context.Context, ownerID string, confirm bool) error {
	if ownerID == "" {
		return domain.ErrNoSession
	}
	if !confirm {
		return domain.ErrConfirmRequired
	}

	if err := s.repo.SaveList(ctx, ownerID, []domain.Todo{}); err != nil {
		return fmt.Errorf("delete all todos: %w", err)
	}
	s.log.Info().Str("owner", ownerID).Msg("all todos deleted")
	return nil
}

func (s *TodoService) List(ctx context.Context, ownerID string, mode domain.FilterMode) ([]domain.Todo, error) {
	if ownerID == "" {
		return nil, domain.ErrNoSession
	}

	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	if mode == domain.FilterAll || mode == "" {
		return list, nil
	}
	filtered := make([]domain.Todo, 0, len(list))
	for _, t := range list {
		if t.Matches(mode) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}
