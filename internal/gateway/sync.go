package gateway

import (
	"context"

	"github.com/rs/zerolog"
)

// Sync trigger tags.
const (
	SyncTagTodos     = "background-sync-todos"
	SyncTagReminders = "todo-reminders"
)

// Sync runs the handler for a named sync trigger. The contract is that the
// trigger always resolves: a failing reconciliation is logged, not
// propagated, so the platform does not retry with backoff it doesn't need.
func (c *Controller) Sync(ctx context.Context, tag string) {
	c.log.Info().Str("tag", tag).Msg("background sync triggered")

	switch tag {
	case SyncTagTodos:
		if c.reconciler == nil {
			return
		}
		if err := c.reconciler.Reconcile(ctx); err != nil {
			c.log.Warn().Err(err).Msg("todo reconciliation failed")
		}
	case SyncTagReminders:
		if c.reminders == nil {
			return
		}
		if err := c.reminders(ctx); err != nil {
			c.log.Warn().Err(err).Msg("reminder check failed")
		}
	default:
		c.log.Debug().Str("tag", tag).Msg("unknown sync tag ignored")
	}
}

// NoopReconciler is the placeholder synchronisation task: there is no
// backend to reconcile against, so it resolves immediately.
type NoopReconciler struct {
	Log zerolog.Logger
}

func (r NoopReconciler) Reconcile(context.Context) error {
	r.Log.Debug().Msg("syncing todos: nothing to reconcile")
	return nil
}
