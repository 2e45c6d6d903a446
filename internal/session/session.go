package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Admin sessions live up to a week but expire after a day without use.
const (
	sessionLifetime    = 7 * 24 * time.Hour
	sessionIdleTimeout = 24 * time.Hour
)

// CookieName identifies the session cookie. Production gets the
// __Host- prefix, which requires Secure and Path=/ with no Domain.
const CookieName = "automind_session"

// New creates a session manager backed by the sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = sessionLifetime
	sm.IdleTimeout = sessionIdleTimeout
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	if isDev {
		sm.Cookie.Name = CookieName
		sm.Cookie.Secure = false
	} else {
		sm.Cookie.Name = "__Host-" + CookieName
		sm.Cookie.Secure = true
	}

	return sm
}
