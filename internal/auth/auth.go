// Package auth implements the demo's mock session: any non-empty credentials
// are accepted and a boolean flag is kept in the store. There is no real
// verification and no user records.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/edrone/storefront/internal/kv"
)

// SessionKey is the store key holding the logged-in flag.
const SessionKey = "e-drone-auth"

var (
	ErrEmptyCredentials = errors.New("email and password are required")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Session reads and writes the login flag through an explicitly passed
// store handle so independent sessions do not interfere.
type Session struct {
	store kv.Store
}

func NewSession(store kv.Store) *Session {
	return &Session{store: store}
}

// Login accepts any non-empty email and password and marks the session
// as logged in.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return ErrEmptyCredentials
	}
	if err := s.store.Set(ctx, SessionKey, "true"); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Signup behaves like Login but additionally requires the confirmation
// password to match. A successful signup logs the session in.
func (s *Session) Signup(ctx context.Context, email, password, confirm string) error {
	if email == "" || password == "" {
		return ErrEmptyCredentials
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return s.Login(ctx, email, password)
}

// Logout clears the session flag.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.Remove(ctx, SessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// LoggedIn reports whether the session flag is set.
func (s *Session) LoggedIn(ctx context.Context) (bool, error) {
	value, err := s.store.Get(ctx, SessionKey)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read session: %w", err)
	}
	return value == "true", nil
}
