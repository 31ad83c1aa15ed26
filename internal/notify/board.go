package notify

import (
	"sync"
	"time"

	"github.com/fadilarbi/todo-offline/internal/api/metrics"
	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

const defaultBannerTTL = 5 * time.Second

// Board is an in-memory banner board. Banners expire after a fixed TTL and
// are swept lazily on read, so an idle board holds at most the banners
// posted since the last Active call.
type Board struct {
	mu      sync.Mutex
	ttl     time.Duration
	nextID  int64
	banners []domain.Banner
	now     func() time.Time
}

// NewBoard creates a Board. If ttl <= 0, defaultBannerTTL is used.
func NewBoard(ttl time.Duration) *Board {
	if ttl <= 0 {
		ttl = defaultBannerTTL
	}
	return &Board{ttl: ttl, now: time.Now}
}

// Post adds a banner that expires after the board TTL.
func (b *Board) Post(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	now := b.now()
	b.banners = append(b.banners, domain.Banner{
		ID:        b.nextID,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(b.ttl),
	})
	metrics.NotificationsSentTotal.WithLabelValues("banner").Inc()
}

// Active returns the banners that have not yet expired, oldest first.
// Expired banners are dropped.
func (b *Board) Active() []domain.Banner {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	live := b.banners[:0]
	for _, banner := range b.banners {
		if banner.ExpiresAt.After(now) {
			live = append(live, banner)
		}
	}
	b.banners = live

	out := make([]domain.Banner, len(live))
	copy(out, live)
	return out
}
