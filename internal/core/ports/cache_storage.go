package ports

import (
	"context"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

// CacheStorage holds named cache generations, each a map from request key
// (URL) to a stored response. Implementations must tolerate concurrent
// Put/Match on the same key; last-write-wins is acceptable because entries
// are stored whole, never merged.
type CacheStorage interface {
	Put(ctx context.Context, generation, key string, res *domain.CachedResponse) error
	// Match returns the stored response, or domain.ErrCacheMiss.
	Match(ctx context.Context, generation, key string) (*domain.CachedResponse, error)
	// Generations lists every generation name currently present.
	Generations(ctx context.Context) ([]string, error)
	// Delete drops a whole generation and all its entries.
	Delete(ctx context.Context, generation string) error
}
