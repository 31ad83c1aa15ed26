package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
	"github.com/fadilarbi/todo-offline/internal/core/ports"
)

const defaultScanInterval = time.Hour

// DeadlineService periodically scans the current user's incomplete tasks,
// classifies their urgency, and emits alerts for tasks that transition into
// the overdue / due-today / due-tomorrow buckets.
type DeadlineService struct {
	todos    ports.TodoRepository
	sessions ports.SessionStore
	sink     ports.NotificationSink
	banners  ports.BannerBoard
	beeper   ports.Beeper
	interval time.Duration
	log      zerolog.Logger
	now      func() time.Time

	mu   sync.Mutex
	seen map[int64]domain.Urgency
}

func NewDeadlineService(
	todos ports.TodoRepository,
	sessions ports.SessionStore,
	sink ports.NotificationSink,
	banners ports.BannerBoard,
	beeper ports.Beeper,
	interval time.Duration,
	log zerolog.Logger,
) *DeadlineService {
	if interval <= 0 {
		interval = defaultScanInterval
	}
	return &DeadlineService{
		todos:    todos,
		sessions: sessions,
		sink:     sink,
		banners:  banners,
		beeper:   beeper,
		interval: interval,
		log:      log,
		now:      time.Now,
		seen:     make(map[int64]domain.Urgency),
	}
}

// Run scans once immediately, then on every tick until ctx is cancelled.
func (s *DeadlineService) Run(ctx context.Context) {
	if err := s.Scan(ctx); err != nil {
		s.log.Warn().Err(err).Msg("deadline scan failed")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Scan(ctx); err != nil {
				s.log.Warn().Err(err).Msg("deadline scan failed")
			}
		}
	}
}

// Scan classifies the current user's tasks and emits alerts for every task
// newly entering a reminder bucket. Without a live session it does nothing.
func (s *DeadlineService) Scan(ctx context.Context) error {
	sess, err := s.sessions.Current(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return nil
		}
		return fmt.Errorf("deadline scan: %w", err)
	}

	list, err := s.todos.ListByOwner(ctx, sess.User.ID)
	if err != nil {
		return fmt.Errorf("deadline scan: %w", err)
	}

	now := s.now()
	for _, todo := range list {
		if todo.Completed {
			continue
		}
		c := domain.ClassifyDue(todo.DueDate, now)
		if s.entered(todo.ID, c.Urgency) && c.AlertMessage(todo.Task) != "" {
			s.alert(ctx, sess.User.ID, todo, c)
		}
	}
	return nil
}

// entered records the task's bucket and reports whether it changed.
func (s *DeadlineService) entered(id int64, u domain.Urgency) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[id] == u {
		return false
	}
	s.seen[id] = u
	return true
}

func (s *DeadlineService) alert(ctx context.Context, ownerID string, todo domain.Todo, c domain.Classification) {
	msg := c.AlertMessage(todo.Task)

	s.banners.Post(msg)

	err := s.sink.Notify(ctx, domain.Notification{
		Tag:     fmt.Sprintf("todo-%d", todo.ID),
		Title:   "Todo Deadline Alert",
		Body:    msg,
		OwnerID: ownerID,
		Urgent:  c.Critical(),
		Actions: domain.DefaultActions(),
	})
	if err != nil {
		s.log.Warn().Err(err).Int64("todo_id", todo.ID).Msg("platform notification failed")
	}

	// Audible alert for critical deadlines. Audio is best-effort: a missing
	// device must never crash the scan.
	if c.Critical() {
		if err := s.beeper.Beep(); err != nil {
			s.log.Debug().Err(err).Msg("audio not available")
		}
	}

	s.log.Info().
		Int64("todo_id", todo.ID).
		Str("urgency", string(c.Urgency)).
		Msg("deadline alert emitted")
}
