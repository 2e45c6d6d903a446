// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package authgate tracks authentication state for the admin surface.
// A Gate consumes session events from a Service and resolves the
// signed-in user's admin role on a separate goroutine, exposing a
// phase-tagged snapshot that route guards and the session endpoint read.
package authgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Phase is the gate's resolution state.
type Phase int

const (
	// PhaseUnresolved is the state before Initialize is called.
	PhaseUnresolved Phase = iota

	// PhaseSessionResolving means the initial session fetch is in flight.
	PhaseSessionResolving

	// PhaseRoleResolving means a session is known and the role check is
	// in flight. New session events re-enter here, not at Unresolved.
	PhaseRoleResolving

	// PhaseReady means the snapshot is settled and safe to act on.
	PhaseReady
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseUnresolved:
		return "unresolved"
	case PhaseSessionResolving:
		return "session_resolving"
	case PhaseRoleResolving:
		return "role_resolving"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Session is the gate's snapshot of who is signed in.
type Session struct {
	UserID          int64
	Email           string
	IsAuthenticated bool
	IsAdmin         bool
	Phase           Phase
}

// SessionInfo is the session event payload delivered by a Service.
type SessionInfo struct {
	UserID        int64
	Email         string
	Authenticated bool
}

// Service is the authentication collaborator the gate consumes. It
// stays opaque so the gate can be exercised against a fake in tests.
type Service interface {
	// CurrentSession fetches the session as of now.
	CurrentSession(ctx context.Context) (SessionInfo, error)

	// OnSessionChange registers a listener for session events and
	// returns an unsubscribe function.
	OnSessionChange(fn func(SessionInfo)) (unsubscribe func())

	// SignInWithPassword authenticates with credentials. Failures are
	// ErrInvalidCredentials, ErrRateLimited, or a wrapped cause.
	SignInWithPassword(ctx context.Context, email, password string) (SessionInfo, error)

	// SignOut terminates the current session.
	SignOut(ctx context.Context) error

	// HasRole reports whether the user holds the given role.
	HasRole(ctx context.Context, userID int64, role string) (bool, error)
}

// Sign-in errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("too many attempts")
)

const roleResolveTimeout = 10 * time.Second

// Gate is the authentication state machine. Safe for concurrent use.
type Gate struct {
	svc       Service
	adminRole string
	log       *slog.Logger

	mu      sync.Mutex
	phase   Phase
	session Session
	seq     uint64 // monotonic session event counter

	readyOnce   sync.Once
	readyCh     chan struct{}
	unsubscribe func()
}

// New creates a Gate over the given service. adminRole is the role name
// checked during role resolution.
func New(svc Service, adminRole string, log *slog.Logger) *Gate {
	if log == nil {
		log = slog.Default()
	}
	return &Gate{
		svc:       svc,
		adminRole: adminRole,
		log:       log,
		phase:     PhaseUnresolved,
		session:   Session{Phase: PhaseUnresolved},
		readyCh:   make(chan struct{}),
	}
}

// Initialize performs the one-shot current-session fetch and registers
// the session listener. Both paths feed the same event handling, so a
// listener event racing the fetch settles by sequence order. Any
// failure, panics from the service included, still lands the gate in
// Ready with no authenticated user.
func (g *Gate) Initialize(ctx context.Context) {
	g.mu.Lock()
	if g.phase != PhaseUnresolved {
		g.mu.Unlock()
		return
	}
	g.setPhaseLocked(PhaseSessionResolving)
	g.mu.Unlock()

	g.unsubscribe = g.svc.OnSessionChange(func(info SessionInfo) {
		g.handleSessionEvent(info)
	})

	info, err := g.fetchCurrentSession(ctx)
	if err != nil {
		g.log.Warn("authgate: initial session fetch failed, continuing signed out", "error", err)
		g.handleSessionEvent(SessionInfo{})
		return
	}
	g.handleSessionEvent(info)
}

// fetchCurrentSession wraps the service call so a panic in the auth
// collaborator degrades to a signed-out state instead of crashing.
func (g *Gate) fetchCurrentSession(ctx context.Context) (info SessionInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("session fetch panicked: %v", r)
		}
	}()
	return g.svc.CurrentSession(ctx)
}

// handleSessionEvent applies a session event. The latest event wins:
// each event takes a new sequence number, and a role resolution started
// for an older number discards its result.
func (g *Gate) handleSessionEvent(info SessionInfo) {
	g.mu.Lock()
	g.seq++
	seq := g.seq

	if !info.Authenticated {
		g.session = Session{Phase: PhaseReady}
		g.setPhaseLocked(PhaseReady)
		g.mu.Unlock()
		return
	}

	g.session = Session{
		UserID:          info.UserID,
		Email:           info.Email,
		IsAuthenticated: true,
		Phase:           PhaseRoleResolving,
	}
	g.setPhaseLocked(PhaseRoleResolving)
	g.mu.Unlock()

	// Role resolution always runs outside the event callback so a slow
	// or re-entrant service cannot deadlock the listener.
	go g.resolveRole(seq, info.UserID)
}

// resolveRole checks the admin role for the session event with the
// given sequence number. A failed or panicked check resolves to
// IsAdmin=false with the cause logged.
func (g *Gate) resolveRole(seq uint64, userID int64) {
	isAdmin, err := g.checkRole(userID)
	if err != nil {
		g.log.Warn("authgate: role check failed, treating as non-admin",
			"user_id", userID, "error", err)
		isAdmin = false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if seq != g.seq {
		// A newer session event superseded this resolution.
		return
	}
	g.session.IsAdmin = isAdmin
	g.session.Phase = PhaseReady
	g.setPhaseLocked(PhaseReady)
}

func (g *Gate) checkRole(userID int64) (isAdmin bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("role check panicked: %v", r)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), roleResolveTimeout)
	defer cancel()
	return g.svc.HasRole(ctx, userID, g.adminRole)
}

// SignIn authenticates with credentials and feeds the resulting session
// through the normal event path.
func (g *Gate) SignIn(ctx context.Context, email, password string) error {
	info, err := g.svc.SignInWithPassword(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrRateLimited):
			return err
		default:
			return fmt.Errorf("sign in: %w", err)
		}
	}
	g.handleSessionEvent(info)
	return nil
}

// SignOut resets local state immediately, then tells the service. The
// local reset is not contingent on the service call succeeding.
func (g *Gate) SignOut(ctx context.Context) error {
	g.handleSessionEvent(SessionInfo{})
	if err := g.svc.SignOut(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// Snapshot returns the current session state.
func (g *Gate) Snapshot() Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := g.session
	s.Phase = g.phase
	return s
}

// Ready returns a channel closed when the gate first reaches Ready.
func (g *Gate) Ready() <-chan struct{} {
	return g.readyCh
}

// WaitReady blocks until the gate first reaches Ready or ctx ends.
func (g *Gate) WaitReady(ctx context.Context) error {
	select {
	case <-g.readyCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close unregisters the session listener.
func (g *Gate) Close() {
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
}

// setPhaseLocked updates the phase. Callers hold g.mu.
func (g *Gate) setPhaseLocked(p Phase) {
	g.phase = p
	g.session.Phase = p
	if p == PhaseReady {
		g.readyOnce.Do(func() { close(g.readyCh) })
	}
}
