package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lenscope/lenscope/internal/domain"
)

// tokenSetter is how the session service pushes tokens into the API client
type tokenSetter interface {
	SetToken(token string)
}

// SessionService manages the authenticated session: restore on startup,
// challenge-based login, refresh and logout.
type SessionService struct {
	auth   domain.AuthRepository
	store  domain.SessionStore
	client tokenSetter
	logger *slog.Logger

	session domain.Session
}

// NewSessionService creates a new session service
func NewSessionService(auth domain.AuthRepository, store domain.SessionStore, client tokenSetter, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{auth: auth, store: store, client: client, logger: logger}
}

// Restore loads a persisted session and refreshes it if expired.
// Returns false when no usable session exists; the app then runs
// unauthenticated until the user signs in.
func (s *SessionService) Restore(ctx context.Context) bool {
	session, ok := s.store.LoadSession()
	if !ok {
		return false
	}

	if !session.Valid(time.Now()) {
		if session.RefreshToken == "" {
			s.logger.Info("stored session expired with no refresh token")
			return false
		}
		refreshed, err := s.auth.Refresh(ctx, session.RefreshToken)
		if err != nil {
			s.logger.Warn("session refresh failed", "error", err)
			_ = s.store.ClearSession()
			return false
		}
		session = refreshed
		if err := s.store.SaveSession(session); err != nil {
			s.logger.Warn("failed to persist refreshed session", "error", err)
		}
	}

	s.adopt(session)
	s.logger.Info("session restored", "account", session.AccountAddress)
	return true
}

// BeginLogin starts the challenge flow for an account address or handle
func (s *SessionService) BeginLogin(ctx context.Context, account string) (domain.LoginChallenge, error) {
	challenge, err := s.auth.RequestChallenge(ctx, account)
	if err != nil {
		s.logger.Error("login challenge request failed", "error", err)
		return domain.LoginChallenge{}, err
	}
	return challenge, nil
}

// PollLogin checks whether the pending challenge has been approved and,
// once it has, adopts and persists the resulting session. approved is
// false while the user has not acted yet.
func (s *SessionService) PollLogin(ctx context.Context, challengeID string) (approved bool, err error) {
	session, err := s.auth.PollChallenge(ctx, challengeID)
	if err != nil {
		return false, err
	}
	if session.AccessToken == "" {
		return false, nil
	}

	s.adopt(session)
	if err := s.store.SaveSession(session); err != nil {
		s.logger.Warn("failed to persist session", "error", err)
	}
	s.logger.Info("signed in", "account", session.AccountAddress)
	return true, nil
}

// Logout revokes the session and clears local state. Local state is
// cleared even when the server-side revocation fails.
func (s *SessionService) Logout(ctx context.Context) error {
	var revokeErr error
	if s.session.AccessToken != "" {
		revokeErr = s.auth.Logout(ctx, s.session)
		if revokeErr != nil {
			s.logger.Warn("server-side logout failed", "error", revokeErr)
		}
	}

	s.session = domain.Session{}
	s.client.SetToken("")
	if err := s.store.ClearSession(); err != nil {
		return errors.Join(revokeErr, err)
	}
	return revokeErr
}

// Authenticated reports whether a usable session is active
func (s *SessionService) Authenticated() bool {
	return s.session.Valid(time.Now())
}

// AccountAddress returns the signed-in account address, or "" when
// unauthenticated
func (s *SessionService) AccountAddress() string {
	if !s.Authenticated() {
		return ""
	}
	return s.session.AccountAddress
}

func (s *SessionService) adopt(session domain.Session) {
	s.session = session
	s.client.SetToken(session.AccessToken)
}
