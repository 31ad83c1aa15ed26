package notify

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/fadilarbi/todo-offline/internal/api/metrics"
	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

// Permission is the user's answer to the notification permission prompt.
type Permission int32

const (
	PermissionDefault Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "default"
	}
}

// Platform delivers notifications to the host platform. This implementation
// writes them to the structured log; delivery is gated on permission the
// same way a real platform channel would be.
type Platform struct {
	perm atomic.Int32
	log  zerolog.Logger
}

// NewPlatform creates a Platform with permission still unanswered.
func NewPlatform(log zerolog.Logger) *Platform {
	return &Platform{log: log}
}

// RequestPermission asks for notification permission. An unanswered prompt
// is granted; an explicit denial is never re-asked.
func (p *Platform) RequestPermission() Permission {
	p.perm.CompareAndSwap(int32(PermissionDefault), int32(PermissionGranted))
	return p.Permission()
}

// Deny records an explicit denial.
func (p *Platform) Deny() {
	p.perm.Store(int32(PermissionDenied))
}

// Permission returns the current permission state.
func (p *Platform) Permission() Permission {
	return Permission(p.perm.Load())
}

// Notify delivers a notification if permission is granted. A missing grant
// is not an error; the notification is silently dropped.
func (p *Platform) Notify(_ context.Context, n domain.Notification) error {
	if p.Permission() != PermissionGranted {
		p.log.Debug().
			Str("tag", n.Tag).
			Str("permission", p.Permission().String()).
			Msg("notification suppressed, permission not granted")
		return nil
	}

	p.log.Info().
		Str("tag", n.Tag).
		Str("title", n.Title).
		Str("body", n.Body).
		Str("owner_id", n.OwnerID).
		Bool("urgent", n.Urgent).
		Int("actions", len(n.Actions)).
		Msg("platform notification")
	metrics.NotificationsSentTotal.WithLabelValues("platform").Inc()
	return nil
}
