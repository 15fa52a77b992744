//go:build linux

package mpris

import (
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/ytplay/internal/playback"
)

// Adapter connects a Transport to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	events *events.EventHandler
	sub    *playback.Subscription
	done   chan struct{}
}

// New starts serving t on the session bus. pos may be nil.
func New(t playback.Transport, pos Positioner) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer(Identity, &rootAdapter{}, newPlayerAdapter(t, pos)),
		sub:    t.Watch(),
		done:   make(chan struct{}),
	}
	a.events = events.NewEventHandler(a.server)

	go func() {
		if err := a.server.Listen(); err != nil {
			zlog.Warn().Err(err).Msg("mpris server stopped")
		}
	}()
	go a.forward()

	return a, nil
}

// forward turns transport changes into PropertiesChanged signals.
func (a *Adapter) forward() {
	for {
		var err error
		select {
		case <-a.sub.StateChanged:
			err = a.events.Player.OnPlayPause()
		case <-a.sub.TrackChanged:
			err = a.events.Player.OnTitle()
		case <-a.sub.QueueChanged:
			err = a.events.Player.OnOptions()
		case <-a.sub.VolumeChanged:
			err = a.events.Player.OnVolume()
		case <-a.sub.Done:
			return
		case <-a.done:
			return
		}
		if err != nil {
			zlog.Debug().Err(err).Msg("mpris signal")
		}
	}
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	close(a.done)
	a.sub.Close()
	return a.server.Stop()
}
