package state

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"

	"github.com/llehouerou/ytplay/internal/db"
)

const (
	appName    = "ytplay"
	dbFileName = "ytplay.db"
)

// Manager persists small key-value settings in SQLite.
type Manager struct {
	db *sql.DB

	closeOnce sync.Once
	closeErr  error
}

// Open opens the settings database at its XDG data path.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, errors.Wrap(err, "resolve settings database path")
	}
	return OpenAt(dbPath)
}

// OpenAt opens the settings database at path. db.MemoryPath gives a
// throwaway database.
func OpenAt(path string) (*Manager, error) {
	conn, err := db.Open(path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "initialize settings schema")
	}

	return &Manager{db: conn}, nil
}

// Close closes the database. It is safe to call more than once.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		m.closeErr = m.db.Close()
	})
	return m.closeErr
}

// DB returns the underlying database handle.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// Get returns the value stored under key. ok is false when nothing is stored.
func (m *Manager) Get(key string) (string, bool, error) {
	var value sql.NullString
	err := m.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "read setting %q", key)
	}
	return db.NullStringValue(value), true, nil
}

// Set stores value under key, replacing any previous value.
func (m *Manager) Set(key, value string) error {
	_, err := m.db.Exec(upsertSetting, key, value)
	return errors.Wrapf(err, "save setting %q", key)
}

// SetMany stores several values atomically.
func (m *Manager) SetMany(ctx context.Context, values map[string]string) error {
	return db.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		for key, value := range values {
			if _, err := tx.ExecContext(ctx, upsertSetting, key, value); err != nil {
				return errors.Wrapf(err, "save setting %q", key)
			}
		}
		return nil
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (m *Manager) Delete(key string) error {
	_, err := m.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return errors.Wrapf(err, "delete setting %q", key)
}

const upsertSetting = `
	INSERT INTO settings (key, value, updated_at)
	VALUES (?, ?, strftime('%s', 'now'))
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = excluded.updated_at
`

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
