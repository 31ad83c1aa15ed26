package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

func TestBoard_PostAndExpiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	board := NewBoard(5 * time.Second)
	board.now = func() time.Time { return now }

	board.Post("first")
	board.Post("second")

	active := board.Active()
	if len(active) != 2 {
		t.Fatalf("expected 2 active banners, got %d", len(active))
	}
	if active[0].Message != "first" || active[1].Message != "second" {
		t.Fatalf("unexpected banner order: %+v", active)
	}
	if active[0].ID == active[1].ID {
		t.Fatalf("banner ids must be unique")
	}

	now = now.Add(6 * time.Second)
	if got := board.Active(); len(got) != 0 {
		t.Fatalf("expected banners to expire, got %d", len(got))
	}

	board.Post("third")
	if got := board.Active(); len(got) != 1 || got[0].Message != "third" {
		t.Fatalf("expected only the fresh banner, got %+v", got)
	}
}

func TestPlatform_PermissionStates(t *testing.T) {
	p := NewPlatform(zerolog.Nop())

	if got := p.Permission(); got != PermissionDefault {
		t.Fatalf("expected default permission, got %s", got)
	}
	if got := p.RequestPermission(); got != PermissionGranted {
		t.Fatalf("expected unanswered prompt to grant, got %s", got)
	}

	p.Deny()
	if got := p.RequestPermission(); got != PermissionDenied {
		t.Fatalf("a denial must not be re-asked, got %s", got)
	}
}

func TestPlatform_NotifySuppressedWithoutGrant(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlatform(zerolog.New(&buf))

	n := domain.Notification{Tag: "todo-1", Title: "Due Today"}
	if err := p.Notify(context.Background(), n); err != nil {
		t.Fatalf("suppressed delivery must not error: %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte("platform notification")) {
		t.Fatalf("notification delivered without permission: %s", buf.String())
	}

	p.RequestPermission()
	if err := p.Notify(context.Background(), n); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("platform notification")) {
		t.Fatalf("expected delivery after grant, log: %s", buf.String())
	}
}

type channelSink struct {
	delivered chan domain.Notification
	err       error
}

func (s *channelSink) Notify(_ context.Context, n domain.Notification) error {
	s.delivered <- n
	return s.err
}

func TestDispatcher_PerOwnerOrdering(t *testing.T) {
	sink := &channelSink{delivered: make(chan domain.Notification, 16)}
	d := NewDispatcher(4, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const owner = "user-1"
	for i := 0; i < 5; i++ {
		n := domain.Notification{Tag: fmt.Sprintf("todo-%d", i), OwnerID: owner}
		if err := d.Notify(ctx, n); err != nil {
			t.Fatalf("Notify: %v", err)
		}
	}

	for i := 0; i < 5; i++ {
		select {
		case n := <-sink.delivered:
			if want := fmt.Sprintf("todo-%d", i); n.Tag != want {
				t.Fatalf("delivery %d: expected tag %s, got %s", i, want, n.Tag)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for delivery %d", i)
		}
	}
}

func TestDispatcher_SinkFailureDoesNotStopWorker(t *testing.T) {
	sink := &channelSink{delivered: make(chan domain.Notification, 4), err: errors.New("channel down")}
	d := NewDispatcher(1, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	_ = d.Notify(ctx, domain.Notification{Tag: "todo-1", OwnerID: "user-1"})
	_ = d.Notify(ctx, domain.Notification{Tag: "todo-2", OwnerID: "user-1"})

	for _, want := range []string{"todo-1", "todo-2"} {
		select {
		case n := <-sink.delivered:
			if n.Tag != want {
				t.Fatalf("expected %s, got %s", want, n.Tag)
			}
		case <-time.After(time.Second):
			t.Fatalf("worker stopped after sink failure")
		}
	}
}

func TestTerminalBeeper_WritesBell(t *testing.T) {
	var buf bytes.Buffer
	b := &TerminalBeeper{Out: &buf}
	if err := b.Beep(); err != nil {
		t.Fatalf("Beep: %v", err)
	}
	if buf.String() != "\a" {
		t.Fatalf("expected BEL, got %q", buf.String())
	}
}
