package middleware

import (
	"testing"
	"time"
)

func TestAccountLockoutAfterFailures(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	email := "user@example.com"
	if !lp.Allow(email) {
		t.Fatal("fresh account should be allowed")
	}

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Fatal("locked before reaching the threshold")
	}

	locked, duration := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("third failure should lock")
	}
	if duration != time.Minute {
		t.Errorf("lock duration = %v", duration)
	}
	if lp.Allow(email) {
		t.Error("locked account allowed")
	}
}

func TestSuccessfulLoginClearsAttempts(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	email := "user@example.com"
	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	lp.RecordSuccessfulLogin(email)

	// Counter restarted; two more failures must not lock.
	lp.RecordFailedAttempt(email)
	if locked, _ := lp.RecordFailedAttempt(email); locked {
		t.Error("attempts not cleared by successful login")
	}
}

func TestLockoutBackoffDoubles(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 2,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Hour,
	})

	email := "user@example.com"
	lp.RecordFailedAttempt(email)
	locked, first := lp.RecordFailedAttempt(email)
	if !locked || first != time.Minute {
		t.Fatalf("first lockout = %v locked=%v", first, locked)
	}

	// Counter resets after a lockout; the next cycle locks for twice
	// as long.
	lp.RecordFailedAttempt(email)
	locked, second := lp.RecordFailedAttempt(email)
	if !locked || second != 2*time.Minute {
		t.Errorf("second lockout = %v locked=%v, want doubled", second, locked)
	}
}
