package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/frankenpanel/frankenpanel/internal/dependencies/clock"
	"github.com/frankenpanel/frankenpanel/internal/model"
	"github.com/frankenpanel/frankenpanel/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// Session represents an authenticated session
type Session struct {
	Token     string
	UserID    int64
	User      model.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles authentication and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		logger:          logger,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// CreateUser creates an operator account with a hashed password
func (s *Service) CreateUser(ctx context.Context, username, password, email, fullName string, superuser bool) (*model.User, error) {
	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, model.ErrUsernameExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := s.storage.NextID(ctx, "user")
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		ID:           id,
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		IsActive:     true,
		IsSuperuser:  superuser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates an operator and creates a session.
// Failed attempts are recorded in the audit log.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.audit(ctx, nil, username, model.AuditLogin, false, "invalid credentials")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.audit(ctx, &user.ID, username, model.AuditLogin, false, "invalid credentials")
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.audit(ctx, &user.ID, username, model.AuditLogin, false, "user inactive")
		return nil, model.ErrUserInactive
	}

	now := s.clock.Now()
	user.LastLogin = &now
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.audit(ctx, &user.ID, username, model.AuditLogin, true, "")
	return s.createSession(user), nil
}

// Logout invalidates the session for the given token
func (s *Service) Logout(ctx context.Context, token string) {
	session, err := s.ValidateSession(token)
	if err == nil {
		s.audit(ctx, &session.UserID, session.User.Username, model.AuditLogout, true, "")
	}
	s.InvalidateSession(token)
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// InvalidateUserSessions removes every session belonging to a user.
// Called when an account is deleted or deactivated.
func (s *Service) InvalidateUserSessions(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, token)
		}
	}
}

// GetUser returns the user for a session token
func (s *Service) GetUser(token string) (*model.User, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return nil, err
	}
	return &session.User, nil
}

// createSession creates a new session for a user
func (s *Service) createSession(user *model.User) *Session {
	token := generateToken()
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		UserID:    user.ID,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

func (s *Service) audit(ctx context.Context, userID *int64, username, action string, success bool, errMsg string) {
	id, err := s.storage.NextID(ctx, "audit")
	if err != nil {
		s.logger.Warn("audit sequence failed", slog.String("error", err.Error()))
		return
	}
	entry := &model.AuditEntry{
		ID:           id,
		UserID:       userID,
		Username:     username,
		Action:       action,
		Success:      success,
		ErrorMessage: errMsg,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.storage.SaveAuditEntry(ctx, entry); err != nil {
		s.logger.Warn("audit write failed", slog.String("error", err.Error()))
	}
}

// generateToken generates a random bearer token
func generateToken() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return "fp_" + base64.RawURLEncoding.EncodeToString(b)
}
