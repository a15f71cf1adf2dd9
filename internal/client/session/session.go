// Package session holds the process-wide admin credentials: the bearer token
// obtained from login and the user it belongs to. It replaces ambient storage
// with an explicit object threaded through every admin call, so tests and
// multi-session scenarios stay tractable.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/models"
)

// Session is safe for concurrent use. Writes happen only on login/logout and
// on a 401 response, reads on every admin request.
type Session struct {
	mu    sync.RWMutex
	token string
	user  models.User
}

func New() *Session {
	return &Session{}
}

// SetCredentials stores the token and user returned by a successful login.
func (s *Session) SetCredentials(token string, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// Token returns the bearer token, or "" when not authenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Clear drops the credentials. Called on logout and on any 401 response.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = models.User{}
}

// ExpiresAt reports the token's exp claim, parsed without signature
// verification (the client has no key; the backend is the authority, this is
// only used to warn before a request that is doomed to 401).
// ok is false when there is no token or the claim is absent or unreadable.
func (s *Session) ExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the token carries an exp claim in the past.
// A token without a readable exp claim is not considered expired.
func (s *Session) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	if !ok {
		return false
	}
	return exp.Before(now)
}
