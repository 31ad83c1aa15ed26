package ports

import (
	"context"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

// NotificationSink receives platform-level notifications. Implementations
// must not assume delivery succeeds; callers log and continue on error.
type NotificationSink interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// BannerBoard holds in-app ephemeral alerts.
type BannerBoard interface {
	Post(message string)
	// Active returns the banners that have not yet expired.
	Active() []domain.Banner
}

// Beeper plays the audible alert for critical deadlines. Failures are
// expected (no audio device) and must never crash the caller.
type Beeper interface {
	Beep() error
}

// Reconciler runs the background todo synchronisation. With no backend it
// must still resolve (return nil) so the platform does not retry forever.
type Reconciler interface {
	Reconcile(ctx context.Context) error
}
