package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/verilab/verifeed/client"
	"github.com/verilab/verifeed/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// authBackend fakes the two-step exchange and counts requests.
func authBackend(t *testing.T, requests *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		switch r.URL.Path {
		case "/api/v1/auth/token":
			w.Write([]byte(`{"access_token": "tok-123"}`))
		case "/api/v1/users/login":
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			w.Write([]byte(`{"id": "u1", "username": "sarah", "email": "s@example.com"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestLoginEmptyFieldsMakesNoNetworkCall(t *testing.T) {
	requests := 0
	server := authBackend(t, &requests)
	defer server.Close()

	mgr := NewManager(client.NewClient(server.URL), newTestStore(t))

	for _, args := range [][3]string{
		{"", "a@b.com", "pw"},
		{"sarah", "", "pw"},
		{"sarah", "a@b.com", ""},
	} {
		_, err := mgr.Login(context.Background(), args[0], args[1], args[2])
		vErr, ok := err.(*model.ValidationError)
		assert.True(t, ok)
		assert.Equal(t, "Please fill in all fields.", vErr.Message)
	}
	assert.Equal(t, 0, requests)
	assert.Nil(t, mgr.Current())
}

func TestLoginSuccessPersistsSession(t *testing.T) {
	requests := 0
	server := authBackend(t, &requests)
	defer server.Close()

	store := newTestStore(t)
	mgr := NewManager(client.NewClient(server.URL), store)

	sess, err := mgr.Login(context.Background(), "sarah", "s@example.com", "pw")
	assert.NoError(t, err)
	assert.Equal(t, "tok-123", sess.Token)
	assert.Equal(t, "sarah", sess.User.Username)
	assert.Equal(t, 2, requests)
	assert.Equal(t, sess, mgr.Current())

	stored, err := store.LoadSession()
	assert.NoError(t, err)
	assert.Equal(t, *sess, *stored)
}

func TestLoginBadCredentialsLeavesSessionUnset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Bad credentials"}`))
	}))
	defer server.Close()

	mgr := NewManager(client.NewClient(server.URL), newTestStore(t))
	_, err := mgr.Login(context.Background(), "sarah", "s@example.com", "bad")
	authErr, ok := err.(*model.AuthError)
	assert.True(t, ok)
	assert.Equal(t, "Bad credentials", authErr.Message)
	assert.Nil(t, mgr.Current())
}

func TestLoginProfileFailureIsNotPartialLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/token" {
			w.Write([]byte(`{"access_token": "tok-123"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	store := newTestStore(t)
	mgr := NewManager(client.NewClient(server.URL), store)
	_, err := mgr.Login(context.Background(), "sarah", "s@example.com", "pw")
	assert.Error(t, err)
	assert.Nil(t, mgr.Current())

	stored, err := store.LoadSession()
	assert.NoError(t, err)
	assert.Nil(t, stored)
}

func TestLogoutClearsMemoryAndStore(t *testing.T) {
	requests := 0
	server := authBackend(t, &requests)
	defer server.Close()

	store := newTestStore(t)
	mgr := NewManager(client.NewClient(server.URL), store)
	_, err := mgr.Login(context.Background(), "sarah", "s@example.com", "pw")
	assert.NoError(t, err)

	mgr.Logout()
	assert.Nil(t, mgr.Current())

	stored, err := store.LoadSession()
	assert.NoError(t, err)
	assert.Nil(t, stored)
}

func TestResumeRestoresPersistedSession(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.SaveSession("tok-9", model.User{Id: "u1", Username: "sarah"}))

	mgr := NewManager(client.NewClient("http://localhost:8000"), store)
	assert.True(t, mgr.Resume())
	assert.Equal(t, "tok-9", mgr.Current().Token)
	assert.Equal(t, "sarah", mgr.Current().User.Username)
}

func TestResumeWithoutStoredSession(t *testing.T) {
	mgr := NewManager(client.NewClient("http://localhost:8000"), newTestStore(t))
	assert.False(t, mgr.Resume())
	assert.Nil(t, mgr.Current())
}

func TestSignUpIsAwaitedAndTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	mgr := NewManager(client.NewClient(server.URL), newTestStore(t))
	err := mgr.SignUp(context.Background(), "sarah", "s@example.com", "pw")
	_, ok := err.(*model.SubmitError)
	assert.True(t, ok)
}

func TestStoreOverwriteAndClear(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.SaveSession("tok-1", model.User{Id: "u1"}))
	assert.NoError(t, store.SaveSession("tok-2", model.User{Id: "u2"}))

	sess, err := store.LoadSession()
	assert.NoError(t, err)
	assert.Equal(t, "tok-2", sess.Token)
	assert.Equal(t, "u2", sess.User.Id)

	assert.NoError(t, store.Clear())
	sess, err = store.LoadSession()
	assert.NoError(t, err)
	assert.Nil(t, sess)
}
