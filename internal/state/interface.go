// internal/state/interface.go
package state

import (
	"context"
	"database/sql"

	"github.com/llehouerou/ytplay/internal/playback"
)

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	playback.Settings
	DB() *sql.DB
	SetMany(ctx context.Context, values map[string]string) error
	Delete(key string) error
	GetVolume() (*VolumeState, error)
	SaveVolume(ctx context.Context, volume float64, muted bool) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
