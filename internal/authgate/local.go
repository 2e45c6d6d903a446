// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package authgate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/alexedwards/scs/v2"

	"github.com/automindlabs/site-go/internal/auth"
	"github.com/automindlabs/site-go/internal/middleware"
	"github.com/automindlabs/site-go/internal/store"
)

// Limiter gates sign-in attempts per key (account or address).
type Limiter interface {
	Allow(key string) bool
}

// LocalService implements Service against the users/user_roles store
// with scs cookie sessions. CurrentSession and SignOut read the session
// data scs loaded into the request context.
type LocalService struct {
	queries  *store.Queries
	sessions *scs.SessionManager
	limiter  Limiter

	mu        sync.Mutex
	nextSubID int
	listeners map[int]func(SessionInfo)
}

// NewLocalService creates a store-backed auth service. limiter may be
// nil to disable sign-in throttling.
func NewLocalService(queries *store.Queries, sessions *scs.SessionManager, limiter Limiter) *LocalService {
	return &LocalService{
		queries:   queries,
		sessions:  sessions,
		limiter:   limiter,
		listeners: make(map[int]func(SessionInfo)),
	}
}

// CurrentSession reports the session carried by ctx. A ctx without scs
// session data (process startup, background jobs) is signed out.
func (s *LocalService) CurrentSession(ctx context.Context) (SessionInfo, error) {
	defer func() { recover() }() // scs panics on a ctx it did not load

	userID := s.sessions.GetInt64(ctx, middleware.SessionKeyUserID)
	if userID == 0 {
		return SessionInfo{}, nil
	}
	user, err := s.queries.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionInfo{}, nil
		}
		return SessionInfo{}, fmt.Errorf("loading session user: %w", err)
	}
	return SessionInfo{UserID: user.ID, Email: user.Email, Authenticated: true}, nil
}

// OnSessionChange registers a listener for session events.
func (s *LocalService) OnSessionChange(fn func(SessionInfo)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *LocalService) notify(info SessionInfo) {
	s.mu.Lock()
	fns := make([]func(SessionInfo), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(info)
	}
}

// SignInWithPassword verifies credentials and binds the user to the
// request's session. A wrong email and a wrong password are
// indistinguishable to the caller.
func (s *LocalService) SignInWithPassword(ctx context.Context, email, password string) (SessionInfo, error) {
	if s.limiter != nil && !s.limiter.Allow(email) {
		return SessionInfo{}, ErrRateLimited
	}

	user, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionInfo{}, ErrInvalidCredentials
		}
		return SessionInfo{}, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return SessionInfo{}, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return SessionInfo{}, ErrInvalidCredentials
	}

	// New token on privilege change.
	if err := s.sessions.RenewToken(ctx); err != nil {
		return SessionInfo{}, fmt.Errorf("renewing session token: %w", err)
	}
	s.sessions.Put(ctx, middleware.SessionKeyUserID, user.ID)

	info := SessionInfo{UserID: user.ID, Email: user.Email, Authenticated: true}
	s.notify(info)
	return info, nil
}

// SignOut destroys the request's session.
func (s *LocalService) SignOut(ctx context.Context) error {
	if err := s.sessions.Destroy(ctx); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	s.notify(SessionInfo{})
	return nil
}

// HasRole checks the user's role in the store.
func (s *LocalService) HasRole(ctx context.Context, userID int64, role string) (bool, error) {
	return s.queries.HasRole(ctx, store.HasRoleParams{UserID: userID, Role: role})
}

var _ Service = (*LocalService)(nil)
