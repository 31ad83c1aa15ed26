package file

import (
	"context"
	"time"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

// fileUser is the at-rest shape; the hash never crosses the API boundary
// because domain.User hides it from JSON, so storage needs its own doc type.
type fileUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u fileUser) toDomain() *domain.User {
	return &domain.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

// UserRepository persists the registry as a single email-keyed document.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) registry() (map[string]fileUser, error) {
	users := make(map[string]fileUser)
	if _, err := r.store.load(keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users, err := r.registry()
	if err != nil {
		return nil, err
	}
	u, ok := users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.toDomain(), nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users, err := r.registry()
	if err != nil {
		return nil, err
	}
	if _, exists := users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}

	users[user.Email] = fileUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
	if err := r.store.save(keyUsers, users); err != nil {
		return nil, err
	}
	return users[user.Email].toDomain(), nil
}
