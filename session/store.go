package session

import (
	"database/sql"
	"encoding/json"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/verilab/verifeed/model"
)

// Store persists the bearer token and the serialized profile across process
// restarts on the same device.
type Store interface {
	// SaveSession overwrites any previously stored session.
	SaveSession(token string, user model.User) error

	// LoadSession returns the stored session, or nil when none exists.
	LoadSession() (*model.Session, error)

	// Clear removes the stored session.
	Clear() error

	Close() error
}

const (
	keyAccessToken = "access_token"
	keyUser        = "user"
)

// SQLiteStore implements Store on a device-local sqlite file.
type SQLiteStore struct {
	db *sql.DB
}

// DefaultStatePath resolves the sqlite path, honoring VERIFEED_STATE_PATH.
func DefaultStatePath() string {
	if p := os.Getenv("VERIFEED_STATE_PATH"); p != "" {
		return p
	}
	return "verifeed_state.db"
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open state db")
	}

	store := &SQLiteStore{db: db}
	if err := store.initDB(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) initDB() error {
	query := `
	CREATE TABLE IF NOT EXISTS client_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(query)
	return errors.Wrap(err, "init state schema")
}

func (s *SQLiteStore) setValue(key, value string) error {
	query := `
	INSERT INTO client_state (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	_, err := s.db.Exec(query, key, value)
	return err
}

func (s *SQLiteStore) getValue(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM client_state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteStore) SaveSession(token string, user model.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "serialize user")
	}
	if err := s.setValue(keyAccessToken, token); err != nil {
		return errors.Wrap(err, "persist token")
	}
	if err := s.setValue(keyUser, string(userJSON)); err != nil {
		return errors.Wrap(err, "persist user")
	}
	return nil
}

func (s *SQLiteStore) LoadSession() (*model.Session, error) {
	token, ok, err := s.getValue(keyAccessToken)
	if err != nil {
		return nil, errors.Wrap(err, "load token")
	}
	if !ok || token == "" {
		return nil, nil
	}

	userJSON, ok, err := s.getValue(keyUser)
	if err != nil {
		return nil, errors.Wrap(err, "load user")
	}
	if !ok {
		return nil, nil
	}

	var user model.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, errors.Wrap(err, "parse stored user")
	}
	return &model.Session{User: user, Token: token}, nil
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM client_state WHERE key IN (?, ?)", keyAccessToken, keyUser)
	return errors.Wrap(err, "clear state")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
