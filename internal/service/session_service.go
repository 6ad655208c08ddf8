package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"retail-mis-console/internal/logger"
	"retail-mis-console/internal/metrics"
	"retail-mis-console/internal/model"
	"retail-mis-console/internal/repository"

	"go.uber.org/zap"
)

var ErrCorruptSession = errors.New("stored session is corrupt")

// AuthResult is what the authentication endpoint returns on success
type AuthResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Authenticator exchanges credentials for an AuthResult
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// AuthError carries a message that is safe to show on the login screen
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Session event types
const (
	SessionEventLogin   = "login"
	SessionEventLogout  = "logout"
	SessionEventExpired = "expired"
	SessionEventCorrupt = "corrupt"
)

// SessionEvent describes a change of the session of one scope
type SessionEvent struct {
	Type string     `json:"type"`
	Role model.Role `json:"role,omitempty"`
	At   time.Time  `json:"at"`
}

// SessionNotifier is told about every session change
type SessionNotifier interface {
	SessionChanged(scope string, event SessionEvent)
}

// SessionManager owns the session storage and hands out per-scope stores
type SessionManager struct {
	storage  repository.SessionStorage
	auth     Authenticator
	now      func() time.Time
	lifetime time.Duration
	notifier SessionNotifier
	logger   *zap.Logger
	metrics  *metrics.Recorder
}

type SessionOption func(*SessionManager)

func WithClock(now func() time.Time) SessionOption {
	return func(m *SessionManager) { m.now = now }
}

func WithSessionNotifier(n SessionNotifier) SessionOption {
	return func(m *SessionManager) { m.notifier = n }
}

func WithSessionLogger(lg *zap.Logger) SessionOption {
	return func(m *SessionManager) { m.logger = lg }
}

func WithSessionMetrics(r *metrics.Recorder) SessionOption {
	return func(m *SessionManager) { m.metrics = r }
}

func NewSessionManager(storage repository.SessionStorage, auth Authenticator, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		storage:  storage,
		auth:     auth,
		now:      time.Now,
		lifetime: model.SessionLifetime,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Scope returns the session store of one storage scope. Stores of the same scope share state.
func (m *SessionManager) Scope(scope string) *SessionStore {
	return &SessionStore{m: m, scope: scope}
}

// SessionStore is the session of a single storage scope
type SessionStore struct {
	m     *SessionManager
	scope string
}

func (s *SessionStore) ScopeID() string {
	return s.scope
}

// Login authenticates and persists a new session. On any failure nothing is written
// and the returned error is an *AuthError.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*model.Session, error) {
	sess, err := s.login(ctx, email, password)
	s.m.metrics.Login(err == nil)
	if err != nil {
		s.m.logger.Info("console login failed",
			zap.String("scope", s.scope),
			zap.String("email", logger.MaskEmail(email)),
			zap.Error(err))
		return nil, err
	}

	s.m.logger.Info("console login",
		zap.String("scope", s.scope),
		zap.String("email", logger.MaskEmail(sess.Email)),
		zap.String("role", string(sess.Role)))
	s.notify(SessionEventLogin, sess.Role)
	return sess, nil
}

func (s *SessionStore) login(ctx context.Context, email, password string) (*model.Session, error) {
	if email == "" || password == "" {
		return nil, &AuthError{Message: "Email and password are required"}
	}

	res, err := s.m.auth.Login(ctx, email, password)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return nil, authErr
		}
		return nil, &AuthError{Message: "Unable to sign in. Please try again.", Err: err}
	}
	if res == nil || res.Token == "" {
		return nil, &AuthError{Message: "Unable to sign in. Please try again.", Err: errors.New("empty token in auth response")}
	}

	role, err := model.ParseRole(res.Role)
	if err != nil {
		return nil, &AuthError{Message: "Your account has no console access.", Err: err}
	}

	sess := &model.Session{
		Name:      res.Name,
		Role:      role,
		Email:     res.Email,
		Token:     res.Token,
		ExpiresAt: s.m.now().Add(s.m.lifetime).Truncate(time.Millisecond),
	}
	record, err := encodeSession(s.scope, sess)
	if err != nil {
		return nil, &AuthError{Message: "Unable to start a session. Please try again.", Err: err}
	}
	if err := s.m.storage.Save(ctx, record); err != nil {
		return nil, &AuthError{Message: "Unable to start a session. Please try again.", Err: err}
	}
	return sess, nil
}

// Logout removes every persisted field of the scope. Calling it again is a no-op.
func (s *SessionStore) Logout(ctx context.Context) error {
	if err := s.m.storage.Delete(ctx, s.scope); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.m.metrics.Logout()
	s.m.logger.Debug("console logout", zap.String("scope", s.scope))
	s.notify(SessionEventLogout, "")
	return nil
}

// Session returns the current session, or nil when none is stored or it has expired.
// Expired and corrupt records are removed as a side effect of the read, unless
// another login replaced them in between.
func (s *SessionStore) Session(ctx context.Context) (*model.Session, error) {
	record, err := s.m.storage.Load(ctx, s.scope)
	if err != nil {
		var malformed *repository.MalformedRecordError
		if errors.As(err, &malformed) {
			return nil, s.discardCorrupt(ctx, malformed.Token, err)
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	sess, err := decodeSession(record)
	if err != nil {
		return nil, s.discardCorrupt(ctx, record.Token, err)
	}

	if s.IsExpired(sess) {
		removed, err := s.m.storage.DeleteIf(ctx, s.scope, sess.Token)
		switch {
		case err != nil:
			s.m.logger.Warn("failed to clear expired session", zap.String("scope", s.scope), zap.Error(err))
		case removed:
			s.m.metrics.Logout()
			s.notify(SessionEventExpired, sess.Role)
		}
		return nil, nil
	}
	return sess, nil
}

// IsExpired reports whether sess is past its expiry at the store's clock
func (s *SessionStore) IsExpired(sess *model.Session) bool {
	return sess.ExpiredAt(s.m.now())
}

// discardCorrupt removes the record holding token. A record saved since the read is kept.
func (s *SessionStore) discardCorrupt(ctx context.Context, token string, cause error) error {
	s.m.logger.Warn("discarding corrupt session", zap.String("scope", s.scope), zap.Error(cause))
	removed, err := s.m.storage.DeleteIf(ctx, s.scope, token)
	switch {
	case err != nil:
		s.m.logger.Warn("failed to clear corrupt session", zap.String("scope", s.scope), zap.Error(err))
	case removed:
		s.notify(SessionEventCorrupt, "")
	}
	return fmt.Errorf("%w: %w", ErrCorruptSession, cause)
}

func (s *SessionStore) notify(eventType string, role model.Role) {
	if s.m.notifier == nil {
		return
	}
	s.m.notifier.SessionChanged(s.scope, SessionEvent{Type: eventType, Role: role, At: s.m.now()})
}

func encodeSession(scope string, sess *model.Session) (*model.SessionRecord, error) {
	profile, err := json.Marshal(model.SessionProfile{
		Name:  sess.Name,
		Role:  string(sess.Role),
		Email: sess.Email,
	})
	if err != nil {
		return nil, err
	}
	return &model.SessionRecord{
		Scope:     scope,
		Token:     sess.Token,
		Profile:   string(profile),
		ExpiresAt: sess.ExpiresAt.UnixMilli(),
	}, nil
}

// decodeSession is the only place a stored role string becomes a model.Role
func decodeSession(rec *model.SessionRecord) (*model.Session, error) {
	if rec.Token == "" {
		return nil, errors.New("missing token")
	}
	var profile model.SessionProfile
	if err := json.Unmarshal([]byte(rec.Profile), &profile); err != nil {
		return nil, fmt.Errorf("decode user profile: %w", err)
	}
	role, err := model.ParseRole(profile.Role)
	if err != nil {
		return nil, err
	}
	return &model.Session{
		Name:      profile.Name,
		Role:      role,
		Email:     profile.Email,
		Token:     rec.Token,
		ExpiresAt: time.UnixMilli(rec.ExpiresAt),
	}, nil
}
