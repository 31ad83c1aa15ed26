package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
	"github.com/fadilarbi/todo-offline/internal/core/ports"
)

const minPasswordLen = 6

// Demo account guaranteed present on first load.
const (
	DemoUserID    = "demo-user"
	DemoUserName  = "Demo User"
	DemoUserEmail = "admin@test.com"
	demoPassword  = "password123"
)

// AuthService implements registration, login and session tracking.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// EnsureSeed creates the demo user when the registry does not hold it yet.
func (s *AuthService) EnsureSeed(ctx context.Context) error {
	_, err := s.users.FindByEmail(ctx, DemoUserEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("seed lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed hash: %w", err)
	}
	_, err = s.users.Create(ctx, &domain.User{
		ID:           DemoUserID,
		Name:         DemoUserName,
		Email:        DemoUserEmail,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil && !errors.Is(err, domain.ErrUserExists) {
		return fmt.Errorf("seed create: %w", err)
	}
	s.log.Info().Str("email", DemoUserEmail).Msg("demo user seeded")
	return nil
}

// Register creates a new account. It does not establish a session.
func (s *AuthService) Register(ctx context.Context, name, email, password, confirmPassword string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" || confirmPassword == "" {
		return nil, domain.NewValidationError("all fields are required")
	}
	if len(password) < minPasswordLen {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	if password != confirmPassword {
		return nil, domain.NewValidationError("passwords do not match")
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           "user-" + uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login verifies credentials, persists the session, and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, domain.NewValidationError("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login lookup: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.sessions.Set(ctx, &domain.Session{User: *user, StartedAt: time.Now().UTC()}); err != nil {
		return "", nil, fmt.Errorf("persist session: %w", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout clears the session unconditionally.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// Current returns the persisted session's user, or domain.ErrNoSession.
func (s *AuthService) Current(ctx context.Context) (*domain.User, error) {
	sess, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	return &sess.User, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
