package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

type stubSink struct {
	notifications []domain.Notification
	err           error
}

func (s *stubSink) Notify(_ context.Context, n domain.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.notifications = append(s.notifications, n)
	return nil
}

type stubBanners struct {
	messages []string
}

func (b *stubBanners) Post(message string)     { b.messages = append(b.messages, message) }
func (b *stubBanners) Active() []domain.Banner { return nil }

type stubBeeper struct {
	beeps int
	err   error
}

func (b *stubBeeper) Beep() error {
	b.beeps++
	return b.err
}

func deadlineFixture(t *testing.T, now time.Time) (*DeadlineService, *stubTodoRepo, *stubSink, *stubBanners, *stubBeeper) {
	t.Helper()
	repo := newStubTodoRepo()
	sessions := &stubSessionStore{session: &domain.Session{
		User:      domain.User{ID: owner, Name: "Test", Email: "t@example.com"},
		StartedAt: now,
	}}
	sink := &stubSink{}
	banners := &stubBanners{}
	beeper := &stubBeeper{}
	svc := NewDeadlineService(repo, sessions, sink, banners, beeper, time.Hour, zerolog.Nop())
	svc.now = func() time.Time { return now }
	return svc, repo, sink, banners, beeper
}

func TestDeadlineService_Scan_Buckets(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, repo, sink, banners, beeper := deadlineFixture(t, now)

	repo.lists[owner] = []domain.Todo{
		{ID: 1, Task: "overdue task", DueDate: now.AddDate(0, 0, -1), OwnerID: owner},
		{ID: 2, Task: "today task", DueDate: now, OwnerID: owner},
		{ID: 3, Task: "tomorrow task", DueDate: now.AddDate(0, 0, 1), OwnerID: owner},
		{ID: 4, Task: "soon task", DueDate: now.AddDate(0, 0, 3), OwnerID: owner},
		{ID: 5, Task: "far task", DueDate: now.AddDate(0, 0, 10), OwnerID: owner},
		{ID: 6, Task: "done task", DueDate: now.AddDate(0, 0, -5), Completed: true, OwnerID: owner},
	}

	if err := svc.Scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// Only overdue / today / tomorrow alert; soon, far and completed do not.
	if len(sink.notifications) != 3 {
		t.Fatalf("expected 3 notifications, got %d: %+v", len(sink.notifications), sink.notifications)
	}
	if len(banners.messages) != 3 {
		t.Fatalf("expected 3 banners, got %d", len(banners.messages))
	}
	if !strings.Contains(banners.messages[0], "OVERDUE") {
		t.Fatalf("expected overdue message first, got %q", banners.messages[0])
	}

	// Audible alert only for overdue and due-today.
	if beeper.beeps != 2 {
		t.Fatalf("expected 2 beeps, got %d", beeper.beeps)
	}

	for _, n := range sink.notifications {
		if len(n.Actions) != 2 {
			t.Fatalf("expected view/dismiss actions, got %+v", n.Actions)
		}
	}
}

func TestDeadlineService_Scan_OnlyOnTransition(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, repo, sink, _, _ := deadlineFixture(t, now)

	repo.lists[owner] = []domain.Todo{
		{ID: 1, Task: "today task", DueDate: now, OwnerID: owner},
	}

	if err := svc.Scan(context.Background()); err != nil {
		t.Fatalf("first Scan failed: %v", err)
	}
	if err := svc.Scan(context.Background()); err != nil {
		t.Fatalf("second Scan failed: %v", err)
	}
	if len(sink.notifications) != 1 {
		t.Fatalf("task still in the same bucket must not re-alert, got %d notifications", len(sink.notifications))
	}

	// A day later the task transitions to overdue and alerts again.
	svc.now = func() time.Time { return now.AddDate(0, 0, 1) }
	if err := svc.Scan(context.Background()); err != nil {
		t.Fatalf("third Scan failed: %v", err)
	}
	if len(sink.notifications) != 2 {
		t.Fatalf("expected alert on bucket transition, got %d notifications", len(sink.notifications))
	}
	last := sink.notifications[len(sink.notifications)-1]
	if !last.Urgent {
		t.Fatalf("overdue alert must be urgent")
	}
}

func TestDeadlineService_Scan_NoSession(t *testing.T) {
	repo := newStubTodoRepo()
	repo.lists[owner] = []domain.Todo{{ID: 1, Task: "x", DueDate: time.Now(), OwnerID: owner}}
	sink := &stubSink{}
	svc := NewDeadlineService(repo, &stubSessionStore{}, sink, &stubBanners{}, &stubBeeper{}, time.Hour, zerolog.Nop())

	if err := svc.Scan(context.Background()); err != nil {
		t.Fatalf("scan without session must be a quiet no-op: %v", err)
	}
	if len(sink.notifications) != 0 {
		t.Fatalf("expected no notifications without a session")
	}
}

func TestDeadlineService_Scan_BeeperFailureContained(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, repo, sink, _, beeper := deadlineFixture(t, now)
	beeper.err = errors.New("no audio device")

	repo.lists[owner] = []domain.Todo{
		{ID: 1, Task: "today task", DueDate: now, OwnerID: owner},
	}

	if err := svc.Scan(context.Background()); err != nil {
		t.Fatalf("beeper failure must not fail the scan: %v", err)
	}
	if len(sink.notifications) != 1 {
		t.Fatalf("notification must still be delivered, got %d", len(sink.notifications))
	}
}
