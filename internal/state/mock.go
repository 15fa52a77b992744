// internal/state/mock.go
package state

import (
	"context"
	"database/sql"
	"strconv"
	"sync"

	"github.com/llehouerou/ytplay/internal/playback"
)

// Mock is an in-memory test double for Manager.
type Mock struct {
	mu     sync.Mutex
	values map[string]string
	err    error
	closed bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{values: make(map[string]string)}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Mock) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func (m *Mock) SetMany(_ context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *Mock) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return m.err
}

func (m *Mock) GetVolume() (*VolumeState, error) {
	vs := &VolumeState{Volume: playback.DefaultVolume}
	if v, ok, err := m.Get(playback.KeyVolume); err != nil {
		return nil, err
	} else if ok {
		vs.Volume, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok, _ := m.Get(playback.KeyMuted); ok {
		vs.Muted = v == "true"
	}
	return vs, nil
}

func (m *Mock) SaveVolume(ctx context.Context, volume float64, muted bool) error {
	return m.SetMany(ctx, map[string]string{
		playback.KeyVolume: strconv.FormatFloat(volume, 'f', -1, 64),
		playback.KeyMuted:  strconv.FormatBool(muted),
	})
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// SetError makes every subsequent call fail with err.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
