package authgate

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"
)

// fakeService is a controllable Service for gate tests.
type fakeService struct {
	mu        sync.Mutex
	current   SessionInfo
	currentFn func() (SessionInfo, error)
	roleFn    func(userID int64) (bool, error)
	roleGate  chan struct{} // when set, HasRole blocks until receive
	listeners []func(SessionInfo)
	signInErr error
}

func (f *fakeService) CurrentSession(context.Context) (SessionInfo, error) {
	f.mu.Lock()
	fn := f.currentFn
	info := f.current
	f.mu.Unlock()
	if fn != nil {
		return fn()
	}
	return info, nil
}

func (f *fakeService) OnSessionChange(fn func(SessionInfo)) func() {
	f.mu.Lock()
	f.listeners = append(f.listeners, fn)
	f.mu.Unlock()
	return func() {}
}

func (f *fakeService) emit(info SessionInfo) {
	f.mu.Lock()
	fns := append([]func(SessionInfo){}, f.listeners...)
	f.mu.Unlock()
	for _, fn := range fns {
		fn(info)
	}
}

func (f *fakeService) SignInWithPassword(_ context.Context, email, _ string) (SessionInfo, error) {
	if f.signInErr != nil {
		return SessionInfo{}, f.signInErr
	}
	return SessionInfo{UserID: 1, Email: email, Authenticated: true}, nil
}

func (f *fakeService) SignOut(context.Context) error { return nil }

func (f *fakeService) HasRole(_ context.Context, userID int64, _ string) (bool, error) {
	f.mu.Lock()
	gate := f.roleGate
	fn := f.roleFn
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if fn != nil {
		return fn(userID)
	}
	return false, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func waitForPhase(t *testing.T, g *Gate, want Phase) Session {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s := g.Snapshot()
		if s.Phase == want {
			return s
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("gate never reached phase %v; at %v", want, g.Snapshot().Phase)
	return Session{}
}

func TestInitializeSignedOut(t *testing.T) {
	svc := &fakeService{}
	g := New(svc, "admin", testLogger())
	defer g.Close()

	if got := g.Snapshot().Phase; got != PhaseUnresolved {
		t.Fatalf("phase before init = %v", got)
	}
	g.Initialize(context.Background())

	s := waitForPhase(t, g, PhaseReady)
	if s.IsAuthenticated || s.IsAdmin {
		t.Errorf("signed-out init produced %+v", s)
	}
}

func TestInitializeAuthenticatedResolvesRole(t *testing.T) {
	svc := &fakeService{
		current: SessionInfo{UserID: 7, Email: "a@b.c", Authenticated: true},
		roleFn:  func(int64) (bool, error) { return true, nil },
	}
	g := New(svc, "admin", testLogger())
	defer g.Close()
	g.Initialize(context.Background())

	s := waitForPhase(t, g, PhaseReady)
	if !s.IsAuthenticated || !s.IsAdmin || s.UserID != 7 {
		t.Errorf("snapshot = %+v", s)
	}
}

func TestInitializeFetchFailureLandsReady(t *testing.T) {
	svc := &fakeService{
		currentFn: func() (SessionInfo, error) {
			return SessionInfo{}, errors.New("backend down")
		},
	}
	g := New(svc, "admin", testLogger())
	defer g.Close()
	g.Initialize(context.Background())

	s := waitForPhase(t, g, PhaseReady)
	if s.IsAuthenticated {
		t.Errorf("failed fetch must resolve signed out, got %+v", s)
	}
}

func TestInitializeFetchPanicLandsReady(t *testing.T) {
	svc := &fakeService{
		currentFn: func() (SessionInfo, error) { panic("sdk blew up") },
	}
	g := New(svc, "admin", testLogger())
	defer g.Close()
	g.Initialize(context.Background())

	s := waitForPhase(t, g, PhaseReady)
	if s.IsAuthenticated {
		t.Errorf("panicked fetch must resolve signed out, got %+v", s)
	}
}

func TestRoleCheckFailureFailsClosed(t *testing.T) {
	svc := &fakeService{
		current: SessionInfo{UserID: 7, Authenticated: true},
		roleFn:  func(int64) (bool, error) { return true, errors.New("role backend down") },
	}
	g := New(svc, "admin", testLogger())
	defer g.Close()
	g.Initialize(context.Background())

	s := waitForPhase(t, g, PhaseReady)
	if !s.IsAuthenticated {
		t.Fatal("session should still be authenticated")
	}
	if s.IsAdmin {
		t.Error("failed role check must resolve to non-admin")
	}
}

func TestStaleRoleResolutionDiscarded(t *testing.T) {
	// The first event's role check (admin=true) is held until after a
	// second event for a non-admin user resolves. The stale result must
	// not overwrite the newer session.
	firstGate := make(chan struct{})
	svc := &fakeService{
		current:  SessionInfo{UserID: 1, Authenticated: true},
		roleGate: firstGate,
		roleFn:   func(userID int64) (bool, error) { return userID == 1, nil },
	}
	g := New(svc, "admin", testLogger())
	defer g.Close()
	g.Initialize(context.Background())
	waitForPhase(t, g, PhaseRoleResolving)

	// Second session event for user 2; unblock its role check only.
	svc.mu.Lock()
	svc.roleGate = nil
	svc.mu.Unlock()
	svc.emit(SessionInfo{UserID: 2, Authenticated: true})

	s := waitForPhase(t, g, PhaseReady)
	if s.UserID != 2 || s.IsAdmin {
		t.Fatalf("after second event: %+v", s)
	}

	// Now release the first, stale resolution (admin=true for user 1).
	close(firstGate)
	time.Sleep(50 * time.Millisecond)

	s = g.Snapshot()
	if s.UserID != 2 {
		t.Errorf("stale resolution replaced session: %+v", s)
	}
	if s.IsAdmin {
		t.Errorf("stale admin=true overwrote newer resolution: %+v", s)
	}
	if s.Phase != PhaseReady {
		t.Errorf("phase = %v", s.Phase)
	}
}

func TestNewSessionEventRestartsAtRoleResolving(t *testing.T) {
	block := make(chan struct{})
	svc := &fakeService{
		roleFn: func(int64) (bool, error) { return false, nil },
	}
	g := New(svc, "admin", testLogger())
	defer g.Close()
	g.Initialize(context.Background())
	waitForPhase(t, g, PhaseReady)

	svc.mu.Lock()
	svc.roleGate = block
	svc.mu.Unlock()
	svc.emit(SessionInfo{UserID: 3, Authenticated: true})

	s := g.Snapshot()
	if s.Phase != PhaseRoleResolving {
		t.Fatalf("phase after new event = %v, want RoleResolving", s.Phase)
	}
	if s.Phase == PhaseUnresolved || s.Phase == PhaseSessionResolving {
		t.Fatal("new events must not restart the full machine")
	}
	close(block)
	waitForPhase(t, g, PhaseReady)
}

func TestSignInErrors(t *testing.T) {
	svc := &fakeService{signInErr: ErrInvalidCredentials}
	g := New(svc, "admin", testLogger())
	defer g.Close()
	g.Initialize(context.Background())
	waitForPhase(t, g, PhaseReady)

	if err := g.SignIn(context.Background(), "a@b.c", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}

	svc.signInErr = ErrRateLimited
	if err := g.SignIn(context.Background(), "a@b.c", "x"); !errors.Is(err, ErrRateLimited) {
		t.Errorf("err = %v, want ErrRateLimited", err)
	}

	svc.signInErr = errors.New("connection reset")
	err := g.SignIn(context.Background(), "a@b.c", "x")
	if err == nil || errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrRateLimited) {
		t.Errorf("unknown failure should wrap, got %v", err)
	}
}

func TestSignOutResetsImmediately(t *testing.T) {
	svc := &fakeService{
		current: SessionInfo{UserID: 5, Authenticated: true},
		roleFn:  func(int64) (bool, error) { return true, nil },
	}
	g := New(svc, "admin", testLogger())
	defer g.Close()
	g.Initialize(context.Background())
	waitForPhase(t, g, PhaseReady)

	if err := g.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	s := g.Snapshot()
	if s.IsAuthenticated || s.IsAdmin || s.UserID != 0 {
		t.Errorf("snapshot after sign out = %+v", s)
	}
	if s.Phase != PhaseReady {
		t.Errorf("phase after sign out = %v", s.Phase)
	}
}

func TestWaitReady(t *testing.T) {
	svc := &fakeService{}
	g := New(svc, "admin", testLogger())
	defer g.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := g.WaitReady(ctx); err == nil {
		t.Fatal("WaitReady should time out before Initialize")
	}

	g.Initialize(context.Background())
	ctx2, cancel2 := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel2()
	if err := g.WaitReady(ctx2); err != nil {
		t.Fatalf("WaitReady after init: %v", err)
	}
}
