package file

import (
	"context"
	"time"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

type fileSession struct {
	User      fileUser  `json:"user"`
	StartedAt time.Time `json:"started_at"`
}

// SessionStore persists the single current session under its own key so it
// survives process restarts.
type SessionStore struct {
	store *Store
}

func NewSessionStore(store *Store) *SessionStore {
	return &SessionStore{store: store}
}

func (s *SessionStore) Current(_ context.Context) (*domain.Session, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	var fs fileSession
	ok, err := s.store.load(keyCurrentUser, &fs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNoSession
	}
	return &domain.Session{User: *fs.User.toDomain(), StartedAt: fs.StartedAt}, nil
}

func (s *SessionStore) Set(_ context.Context, sess *domain.Session) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	return s.store.save(keyCurrentUser, fileSession{
		User: fileUser{
			ID:           sess.User.ID,
			Name:         sess.User.Name,
			Email:        sess.User.Email,
			PasswordHash: sess.User.PasswordHash,
			CreatedAt:    sess.User.CreatedAt,
		},
		StartedAt: sess.StartedAt,
	})
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	return s.store.remove(keyCurrentUser)
}
