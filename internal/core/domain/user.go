package domain

import "time"

// User models a registered account. Email is the unique registry key.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the currently authenticated user. At most one session is live
// per store; it survives process restarts until Logout clears it.
type Session struct {
	User      User      `json:"user"`
	StartedAt time.Time `json:"started_at"`
}
