//go:build linux

package notify

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionNotifier(t *testing.T) Notifier {
	t.Helper()
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}
	n, err := New()
	require.NoError(t, err)
	if _, ok := n.(Nop); ok {
		t.Skip("session bus unreachable")
	}
	return n
}

func TestDBusNowPlayingReplaces(t *testing.T) {
	n := sessionNotifier(t)

	first := NowPlaying(track("a"))
	first.Timeout = 1000
	id, err := n.Notify(first)
	if err != nil {
		t.Skipf("no notification server: %v", err)
	}
	assert.NotZero(t, id)

	second := NowPlaying(track("b"))
	second.Timeout = 1000
	second.ReplacesID = id
	id2, err := n.Notify(second)
	require.NoError(t, err)
	assert.Equal(t, id, id2, "replacing keeps the id")

	assert.NoError(t, n.Close(id2))
}
