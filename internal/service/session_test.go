package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lenscope/lenscope/internal/domain"
)

type fakeAuth struct {
	challenge  domain.LoginChallenge
	polled     domain.Session
	pollErr    error
	refreshed  domain.Session
	refreshErr error
	loggedOut  bool
}

func (f *fakeAuth) RequestChallenge(ctx context.Context, account string) (domain.LoginChallenge, error) {
	return f.challenge, nil
}

func (f *fakeAuth) PollChallenge(ctx context.Context, id string) (domain.Session, error) {
	return f.polled, f.pollErr
}

func (f *fakeAuth) Refresh(ctx context.Context, token string) (domain.Session, error) {
	return f.refreshed, f.refreshErr
}

func (f *fakeAuth) Logout(ctx context.Context, session domain.Session) error {
	f.loggedOut = true
	return nil
}

type fakeSessionStore struct {
	session domain.Session
	has     bool
	cleared bool
}

func (f *fakeSessionStore) LoadSession() (domain.Session, bool) { return f.session, f.has }
func (f *fakeSessionStore) SaveSession(s domain.Session) error {
	f.session = s
	f.has = true
	return nil
}
func (f *fakeSessionStore) ClearSession() error {
	f.session = domain.Session{}
	f.has = false
	f.cleared = true
	return nil
}

type fakeTokenSetter struct{ token string }

func (f *fakeTokenSetter) SetToken(t string) { f.token = t }

func liveSession(account string) domain.Session {
	return domain.Session{
		AccountAddress: account,
		AccessToken:    "at",
		RefreshToken:   "rt",
		ExpiresAt:      time.Now().Add(time.Hour),
	}
}

func TestRestoreNoStoredSession(t *testing.T) {
	svc := NewSessionService(&fakeAuth{}, &fakeSessionStore{}, &fakeTokenSetter{}, nil)

	if svc.Restore(context.Background()) {
		t.Error("Restore succeeded with nothing stored")
	}
	if svc.Authenticated() {
		t.Error("Authenticated() = true with no session")
	}
}

func TestRestoreValidSession(t *testing.T) {
	client := &fakeTokenSetter{}
	store := &fakeSessionStore{session: liveSession("0xme"), has: true}
	svc := NewSessionService(&fakeAuth{}, store, client, nil)

	if !svc.Restore(context.Background()) {
		t.Fatal("Restore failed for a valid session")
	}
	if !svc.Authenticated() {
		t.Error("Authenticated() = false after restore")
	}
	if client.token != "at" {
		t.Errorf("client token = %q, want at", client.token)
	}
	if svc.AccountAddress() != "0xme" {
		t.Errorf("AccountAddress() = %q", svc.AccountAddress())
	}
}

func TestRestoreRefreshesExpiredSession(t *testing.T) {
	expired := liveSession("0xme")
	expired.ExpiresAt = time.Now().Add(-time.Hour)

	fresh := liveSession("0xme")
	fresh.AccessToken = "at2"

	client := &fakeTokenSetter{}
	store := &fakeSessionStore{session: expired, has: true}
	svc := NewSessionService(&fakeAuth{refreshed: fresh}, store, client, nil)

	if !svc.Restore(context.Background()) {
		t.Fatal("Restore failed despite a working refresh token")
	}
	if client.token != "at2" {
		t.Errorf("client token = %q, want refreshed token", client.token)
	}
	if store.session.AccessToken != "at2" {
		t.Error("refreshed session not persisted")
	}
}

func TestRestoreClearsOnRefreshFailure(t *testing.T) {
	expired := liveSession("0xme")
	expired.ExpiresAt = time.Now().Add(-time.Hour)

	store := &fakeSessionStore{session: expired, has: true}
	auth := &fakeAuth{refreshErr: domain.ErrSessionExpired}
	svc := NewSessionService(auth, store, &fakeTokenSetter{}, nil)

	if svc.Restore(context.Background()) {
		t.Error("Restore succeeded with a dead refresh token")
	}
	if !store.cleared {
		t.Error("dead session left in the store")
	}
}

func TestPollLoginLifecycle(t *testing.T) {
	client := &fakeTokenSetter{}
	store := &fakeSessionStore{}
	auth := &fakeAuth{}
	svc := NewSessionService(auth, store, client, nil)

	// Pending: no session yet.
	approved, err := svc.PollLogin(context.Background(), "ch1")
	if err != nil || approved {
		t.Fatalf("pending poll = (%v, %v), want (false, nil)", approved, err)
	}
	if svc.Authenticated() {
		t.Error("authenticated before approval")
	}

	// Approved: session adopted and persisted.
	auth.polled = liveSession("0xme")
	approved, err = svc.PollLogin(context.Background(), "ch1")
	if err != nil || !approved {
		t.Fatalf("approved poll = (%v, %v), want (true, nil)", approved, err)
	}
	if !svc.Authenticated() {
		t.Error("not authenticated after approval")
	}
	if !store.has {
		t.Error("session not persisted")
	}
}

func TestLogoutClearsLocalStateOnServerFailure(t *testing.T) {
	client := &fakeTokenSetter{token: "at"}
	store := &fakeSessionStore{session: liveSession("0xme"), has: true}
	auth := &fakeAuth{}
	svc := NewSessionService(auth, store, client, nil)
	svc.Restore(context.Background())

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if !auth.loggedOut {
		t.Error("server-side revocation not attempted")
	}
	if svc.Authenticated() {
		t.Error("still authenticated after logout")
	}
	if client.token != "" {
		t.Error("client token not cleared")
	}
	if !store.cleared {
		t.Error("stored session not cleared")
	}
}

func TestPollLoginErrorPropagates(t *testing.T) {
	auth := &fakeAuth{pollErr: domain.ErrSessionExpired}
	svc := NewSessionService(auth, &fakeSessionStore{}, &fakeTokenSetter{}, nil)

	_, err := svc.PollLogin(context.Background(), "ch1")
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("err = %v, want ErrSessionExpired", err)
	}
}
