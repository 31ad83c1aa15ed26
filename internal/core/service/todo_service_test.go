package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

type stubTodoRepo struct {
	lists   map[string][]domain.Todo
	saveErr error
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{lists: make(map[string][]domain.Todo)}
}

func (r *stubTodoRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Todo, error) {
	return append([]domain.Todo(nil), r.lists[ownerID]...), nil
}

func (r *stubTodoRepo) SaveList(_ context.Context, ownerID string, todos []domain.Todo) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.lists[ownerID] = append([]domain.Todo(nil), todos...)
	return nil
}

func newTodoServiceForTest(repo *stubTodoRepo) *TodoService {
	return NewTodoService(repo, zerolog.Nop())
}

const owner = "user-1"

func mustAdd(t *testing.T, svc *TodoService, task string, due time.Time) *domain.Todo {
	t.Helper()
	todo, err := svc.Add(context.Background(), owner, task, due)
	if err != nil {
		t.Fatalf("Add(%q) failed: %v", task, err)
	}
	return todo
}

func TestTodoService_Add(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTodoServiceForTest(repo)
	due := time.Now().AddDate(0, 0, 7)

	todo := mustAdd(t, svc, "  write report  ", due)
	if todo.Task != "write report" {
		t.Fatalf("expected trimmed task, got %q", todo.Task)
	}
	if todo.Completed {
		t.Fatalf("new todo must start pending")
	}
	if todo.OwnerID != owner {
		t.Fatalf("expected owner %q, got %q", owner, todo.OwnerID)
	}
	if len(repo.lists[owner]) != 1 {
		t.Fatalf("expected list persisted with 1 entry, got %d", len(repo.lists[owner]))
	}

	second := mustAdd(t, svc, "another", due)
	if second.ID == todo.ID {
		t.Fatalf("ids must be unique, both %d", todo.ID)
	}
}

func TestTodoService_Add_Validation(t *testing.T) {
	svc := newTodoServiceForTest(newStubTodoRepo())
	ctx := context.Background()
	due := time.Now().AddDate(0, 0, 1)

	if _, err := svc.Add(ctx, owner, "   ", due); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank task, got %v", err)
	}
	if _, err := svc.Add(ctx, owner, "task", time.Time{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing due date, got %v", err)
	}
}

func TestTodoService_NoSession(t *testing.T) {
	svc := newTodoServiceForTest(newStubTodoRepo())
	ctx := context.Background()

	if _, err := svc.Add(ctx, "", "task", time.Now()); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("Add without session: expected ErrNoSession, got %v", err)
	}
	if _, err := svc.List(ctx, "", domain.FilterAll); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("List without session: expected ErrNoSession, got %v", err)
	}
	if err := svc.Delete(ctx, "", 1); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("Delete without session: expected ErrNoSession, got %v", err)
	}
}

func TestTodoService_Delete(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTodoServiceForTest(repo)
	due := time.Now().AddDate(0, 0, 2)

	keep := mustAdd(t, svc, "keep", due)
	gone := mustAdd(t, svc, "gone", due)

	if err := svc.Delete(context.Background(), owner, gone.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	list, err := svc.List(context.Background(), owner, domain.FilterAll)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected list length 1 after delete, got %d", len(list))
	}
	for _, todo := range list {
		if todo.ID == gone.ID {
			t.Fatalf("deleted id %d still present", gone.ID)
		}
	}
	if list[0].ID != keep.ID {
		t.Fatalf("expected surviving id %d, got %d", keep.ID, list[0].ID)
	}
}

func TestTodoService_ToggleComplete_DoubleToggle(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTodoServiceForTest(repo)
	todo := mustAdd(t, svc, "flip me", time.Now().AddDate(0, 0, 2))

	once, err := svc.ToggleComplete(context.Background(), owner, todo.ID)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !once.Completed {
		t.Fatalf("expected completed after first toggle")
	}

	twice, err := svc.ToggleComplete(context.Background(), owner, todo.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if twice.Completed != todo.Completed {
		t.Fatalf("double toggle must restore original value %v, got %v", todo.Completed, twice.Completed)
	}
}

func TestTodoService_ToggleComplete_AbsentID(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTodoServiceForTest(repo)
	mustAdd(t, svc, "only", time.Now().AddDate(0, 0, 2))

	got, err := svc.ToggleComplete(context.Background(), owner, 42)
	if err != nil {
		t.Fatalf("toggle of absent id must not error: %v", err)
	}
	if got != nil {
		t.Fatalf("toggle of absent id must be a no-op, got %+v", got)
	}
}

func TestTodoService_Edit(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTodoServiceForTest(repo)
	todo := mustAdd(t, svc, "original", time.Now().AddDate(0, 0, 2))

	edited, err := svc.Edit(context.Background(), owner, todo.ID, "  updated  ")
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if edited.Task != "updated" {
		t.Fatalf("expected %q, got %q", "updated", edited.Task)
	}

	// Blank edit is a no-op.
	unchanged, err := svc.Edit(context.Background(), owner, todo.ID, "   ")
	if err != nil {
		t.Fatalf("blank Edit failed: %v", err)
	}
	if unchanged.Task != "updated" {
		t.Fatalf("blank edit must leave task untouched, got %q", unchanged.Task)
	}
}

func TestTodoService_DeleteAll(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTodoServiceForTest(repo)
	mustAdd(t, svc, "a", time.Now().AddDate(0, 0, 1))
	mustAdd(t, svc, "b", time.Now().AddDate(0, 0, 2))

	if err := svc.DeleteAll(context.Background(), owner, false); !errors.Is(err, domain.ErrConfirmRequired) {
		t.Fatalf("expected ErrConfirmRequired without confirmation, got %v", err)
	}
	if len(repo.lists[owner]) != 2 {
		t.Fatalf("unconfirmed delete-all must not mutate, got %d entries", len(repo.lists[owner]))
	}

	if err := svc.DeleteAll(context.Background(), owner, true); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if len(repo.lists[owner]) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(repo.lists[owner]))
	}
}

func TestTodoService_FilterPartition(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTodoServiceForTest(repo)
	due := time.Now().AddDate(0, 0, 3)

	mustAdd(t, svc, "one", due)
	done := mustAdd(t, svc, "two", due)
	mustAdd(t, svc, "three", due)
	if _, err := svc.ToggleComplete(context.Background(), owner, done.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	all, _ := svc.List(context.Background(), owner, domain.FilterAll)
	completed, _ := svc.List(context.Background(), owner, domain.FilterCompleted)
	pending, _ := svc.List(context.Background(), owner, domain.FilterPending)

	if len(completed)+len(pending) != len(all) {
		t.Fatalf("completed(%d) + pending(%d) != all(%d)", len(completed), len(pending), len(all))
	}

	union := make(map[int64]bool)
	for _, todo := range completed {
		if !todo.Completed {
			t.Fatalf("pending todo %d in completed view", todo.ID)
		}
		union[todo.ID] = true
	}
	for _, todo := range pending {
		if todo.Completed {
			t.Fatalf("completed todo %d in pending view", todo.ID)
		}
		union[todo.ID] = true
	}
	for _, todo := range all {
		if !union[todo.ID] {
			t.Fatalf("todo %d missing from completed ∪ pending", todo.ID)
		}
	}
}
