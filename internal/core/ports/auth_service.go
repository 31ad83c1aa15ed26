package ports

import (
	"context"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

type AuthService interface {
	// Register creates a new account. It does not log the user in.
	Register(ctx context.Context, name, email, password, confirmPassword string) (*domain.User, error)
	// Login establishes the session and returns a signed token for it.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout clears the session unconditionally.
	Logout(ctx context.Context) error
	// Current returns the live session's user, or domain.ErrNoSession.
	Current(ctx context.Context) (*domain.User, error)
}
