// Package session holds the authenticated identity and its bearer token,
// and is the only writer of the device-local credential store. There is no
// package-level singleton: one Manager is constructed in main and handed to
// every component that needs the session.
package session

import (
	"context"

	"github.com/verilab/verifeed/client"
	"github.com/verilab/verifeed/model"
	Logger "github.com/verilab/verifeed/utils/log"
)

type Manager struct {
	client *client.Client
	store  Store

	current *model.Session
}

func NewManager(c *client.Client, store Store) *Manager {
	return &Manager{client: c, store: store}
}

// Current returns the active session, or nil when unauthenticated.
func (m *Manager) Current() *model.Session {
	return m.current
}

// Resume restores a persisted session from a previous run on this device.
// Returns false when no session was stored. A corrupt store is logged and
// treated as no session.
func (m *Manager) Resume() bool {
	sess, err := m.store.LoadSession()
	if err != nil {
		Logger.Log.Errorf("fail to restore persisted session: %v", err)
		return false
	}
	if sess == nil {
		return false
	}
	m.current = sess
	return true
}

// Login performs the two-step credential exchange: token first, then the
// profile fetch with that token. The profile step runs only if the token
// step succeeded. On full success the session is persisted and becomes
// current; on any failure the session stays unset.
func (m *Manager) Login(ctx context.Context, username, email, password string) (*model.Session, error) {
	if username == "" || email == "" || password == "" {
		return nil, &model.ValidationError{Message: "Please fill in all fields."}
	}

	token, err := m.client.ExchangeToken(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := m.client.FetchProfile(ctx, token)
	if err != nil {
		// No partial state: a token without a profile is not a session.
		Logger.Log.Errorf("fetching user info failed: %v", err)
		return nil, err
	}

	if err := m.store.SaveSession(token, user); err != nil {
		// Losing persistence degrades restart resume, not this login.
		Logger.Log.Errorf("fail to persist session: %v", err)
	}

	m.current = &model.Session{User: user, Token: token}
	return m.current, nil
}

// Logout drops the in-memory session and clears the persisted credentials
// so a different user can log in on this device.
func (m *Manager) Logout() {
	m.current = nil
	if err := m.store.Clear(); err != nil {
		Logger.Log.Errorf("fail to clear persisted session: %v", err)
	}
}

// SignUp registers a new account and reports the typed outcome. It does not
// log the new user in; a follow-up Login is expected.
func (m *Manager) SignUp(ctx context.Context, username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return &model.ValidationError{Message: "Please fill in all fields."}
	}
	return m.client.CreateAccount(ctx, username, email, password)
}
