package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/pkg/localmirror"
)

const (
	maxLoginAttempts = 5
	attemptWindow    = 5 * time.Minute
)

// ErrTooManyAttempts is returned when the local rate limit window is full.
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// authSession is the mirrored login session.
type authSession struct {
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthState owns the login session and the client-side attempt limiter.
// The limiter lives entirely in the local mirror: it is a politeness
// brake on the UI, not a security boundary.
type AuthState struct {
	client *Client
	logger *zap.Logger

	sessionMirror  *localmirror.Mirror[authSession]
	attemptsMirror *localmirror.Mirror[[]time.Time]

	mu        sync.Mutex
	session   *authSession
	lastError string

	now func() time.Time
}

// NewAuthState creates an AuthState backed by the given mirror store.
func NewAuthState(apiClient *Client, store localmirror.Store, logger *zap.Logger) *AuthState {
	log := logger.Named("AuthState")
	return &AuthState{
		client:         apiClient,
		logger:         log,
		sessionMirror:  localmirror.New[authSession](store, "auth_session", log),
		attemptsMirror: localmirror.New[[]time.Time](store, "auth_attempts", log),
		now:            time.Now,
	}
}

// Load restores a mirrored session. An expired or missing session just
// leaves the state logged out.
func (s *AuthState) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessionMirror.Get()
	if err != nil {
		return
	}
	if !s.now().Before(session.ExpiresAt) {
		s.logger.Debug("Mirrored session expired")
		if err := s.sessionMirror.Clear(); err != nil {
			s.logger.Warn("Failed to clear expired session", zap.Error(err))
		}
		return
	}
	s.session = &session
	s.client.SetToken(session.Token)
}

// Login exchanges the shared password for a token. Failed attempts are
// counted in a sliding window; once the window is full further attempts
// are refused locally until it drains.
func (s *AuthState) Login(ctx context.Context, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := s.recentAttempts()
	if len(attempts) >= maxLoginAttempts {
		s.lastError = "Too many failed attempts. Please wait a few minutes and try again."
		return ErrTooManyAttempts
	}

	result, err := s.client.Login(ctx, password)
	if err != nil {
		attempts = append(attempts, s.now())
		if putErr := s.attemptsMirror.Put(attempts); putErr != nil {
			s.logger.Warn("Failed to mirror login attempts", zap.Error(putErr))
		}
		s.lastError = "Login failed: " + err.Error()
		return err
	}

	session := authSession{
		Token:     result.Token,
		IssuedAt:  s.now(),
		ExpiresAt: result.ExpiresAt,
	}
	s.session = &session
	s.client.SetToken(session.Token)
	if err := s.sessionMirror.Put(session); err != nil {
		s.logger.Warn("Failed to mirror session", zap.Error(err))
	}
	if err := s.attemptsMirror.Clear(); err != nil {
		s.logger.Warn("Failed to clear login attempts", zap.Error(err))
	}
	s.lastError = ""
	return nil
}

// Logout drops the session locally.
func (s *AuthState) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.client.SetToken("")
	if err := s.sessionMirror.Clear(); err != nil {
		s.logger.Warn("Failed to clear session", zap.Error(err))
	}
	s.lastError = ""
}

// Authenticated reports whether an unexpired session is held.
func (s *AuthState) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil && s.now().Before(s.session.ExpiresAt)
}

// Err returns the most recent failure message, empty when the last
// action succeeded.
func (s *AuthState) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// recentAttempts loads the mirrored attempt timestamps and drops those
// outside the window.
func (s *AuthState) recentAttempts() []time.Time {
	attempts, err := s.attemptsMirror.Get()
	if err != nil {
		return nil
	}
	cutoff := s.now().Add(-attemptWindow)
	recent := attempts[:0]
	for _, at := range attempts {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}
	return recent
}
