// Package auth provides cookie-session authentication: a SessionManager
// that signs users in and out, middleware that loads the current user into
// the request context, and a gate that redirects anonymous requests to the
// login page.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/eventhub/internal/domain/models"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// SessionUser is the authenticated caller injected into r.Context().
// It is re-fetched from the database on every request so role changes and
// deleted accounts take effect immediately.
type SessionUser struct {
	ID       uint
	Username string
	Role     models.Role
}

// AsUser adapts the session user to the domain model expected by the
// policy predicates. Only identity fields are populated.
func (su *SessionUser) AsUser() *models.User {
	if su == nil {
		return nil
	}
	return &models.User{ID: su.ID, Username: su.Username, Role: su.Role}
}

// UserFetcher loads fresh user data for the session middleware.
// Implemented by store/users.Fetcher.
type UserFetcher interface {
	FetchUser(ctx context.Context, id uint) (*SessionUser, error)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user from the request context and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a user directly into the request context.
// Only for tests; production code goes through LoadSessionUser.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// SessionManager owns the cookie store and session lifecycle.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	fetcher UserFetcher
	log     *zap.Logger
}

// NewSessionManager builds a SessionManager from the configured session key.
// The secure flag controls the Secure cookie attribute and SameSite mode:
// production uses Secure + Lax, local dev over http needs secure=false.
func NewSessionManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide 32+ random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   86400 * 14,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session store initialized",
		zap.String("cookie", name),
		zap.Bool("secure", secure))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// SetUserFetcher wires the store-backed fetcher used by LoadSessionUser.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) {
	sm.fetcher = f
}

// Store exposes the underlying cookie store (used by logout and flash).
func (sm *SessionManager) Store() *sessions.CookieStore {
	return sm.store
}

// SessionName returns the configured cookie name.
func (sm *SessionManager) SessionName() string {
	return sm.name
}

// GetSession returns the request's session, creating one if absent.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// SignIn records the user in the session cookie.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID uint) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		// Undecodable cookie (rotated key, tampering): start a fresh session.
		sm.log.Warn("session decode failed on sign-in", zap.Error(err))
	}
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Warn("session decode failed on sign-out", zap.Error(err))
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// LoadSessionUser injects the current user into context if they are logged
// in. The user record is fetched fresh on each request; a missing or
// deleted user degrades to anonymous rather than failing the request.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.GetSession(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		isAuth, _ := sess.Values[isAuthKey].(bool)
		if !isAuth || sm.fetcher == nil {
			next.ServeHTTP(w, r)
			return
		}

		id, ok := sess.Values[userIDKey].(uint)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		u, err := sm.fetcher.FetchUser(r.Context(), id)
		if err != nil {
			sm.log.Debug("session user fetch failed", zap.Uint("user_id", id), zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// Anonymous HTML requests get a 303 to /login?return=...; non-HTML callers
// get a plain 401.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		if wantsHTML(r) {
			ret := url.QueryEscape(currentURI(r))
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}

		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func wantsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	// Browsers send text/html (or */*); API clients typically do not.
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*") || accept == ""
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
