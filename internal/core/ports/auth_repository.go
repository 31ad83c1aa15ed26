package ports

import (
	"context"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

// UserRepository defines persistence for the user registry (email → User).
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// SessionStore persists the single current session so it survives restarts.
type SessionStore interface {
	// Current returns the live session, or domain.ErrNoSession.
	Current(ctx context.Context) (*domain.Session, error)
	Set(ctx context.Context, s *domain.Session) error
	Clear(ctx context.Context) error
}
