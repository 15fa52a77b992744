package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/ytplay/internal/playback"
	"github.com/llehouerou/ytplay/internal/playlist"
)

func track(id string) playlist.Track {
	return playlist.Track{ID: id, VideoID: "v" + id, Title: "Song " + id, Artist: "Artist"}
}

func newController() *playback.Controller {
	return playback.NewController(playback.NewStore(), nil)
}

func postCommand(t *testing.T, url string, body string) (*http.Response, Message) {
	t.Helper()
	resp, err := http.Post(url+"/api/command", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var msg Message
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
	return resp, msg
}

func TestServer_State(t *testing.T) {
	ctrl := newController()
	ctrl.AddToQueue(track("a"))
	ts := httptest.NewServer(NewServer(ctrl).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var st playback.PlaybackState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Nil(t, st.CurrentTrack)
	assert.InDelta(t, playback.DefaultVolume, st.Volume, 1e-9)
	require.Len(t, st.Queue, 1)
	assert.Equal(t, "a", st.Queue[0].ID)
}

func TestServer_Command(t *testing.T) {
	ctrl := newController()
	ts := httptest.NewServer(NewServer(ctrl).Handler())
	defer ts.Close()

	resp, msg := postCommand(t, ts.URL, `{"action":"play","track":{"id":"a","videoId":"va","title":"Song a"}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, MessageState, msg.Type)
	require.NotNil(t, msg.State)
	require.NotNil(t, msg.State.CurrentTrack)
	assert.Equal(t, "a", msg.State.CurrentTrack.ID)
	assert.True(t, msg.State.IsPlaying)

	assert.Equal(t, "a", ctrl.Snapshot().CurrentID())
}

func TestServer_CommandErrors(t *testing.T) {
	ctrl := newController()
	ts := httptest.NewServer(NewServer(ctrl).Handler())
	defer ts.Close()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"invalid json", `{"action":`, "invalid json"},
		{"unknown action", `{"action":"shuffle"}`, "unknown action"},
		{"missing track", `{"action":"add"}`, "track is required"},
		{"track without id", `{"action":"playNext","track":{"title":"x"}}`, "track is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, msg := postCommand(t, ts.URL, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, MessageError, msg.Type)
			assert.Contains(t, msg.Error, tt.want)
		})
	}

	assert.Empty(t, ctrl.Snapshot().Queue)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	ts := httptest.NewServer(NewServer(newController()).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/command")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func dialWS(t *testing.T, serverURL string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until match returns true.
func readUntil(t *testing.T, conn *websocket.Conn, match func(Message) bool) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		if match(msg) {
			return msg
		}
	}
}

func TestServer_WebsocketPushesState(t *testing.T) {
	ctrl := newController()
	ts := httptest.NewServer(NewServer(ctrl).Handler())
	defer ts.Close()

	conn := dialWS(t, ts.URL)
	first := readUntil(t, conn, func(Message) bool { return true })
	assert.Equal(t, MessageState, first.Type)
	require.NotNil(t, first.State)
	assert.Nil(t, first.State.CurrentTrack)

	ctrl.PlayTrack(track("a"))
	msg := readUntil(t, conn, func(m Message) bool {
		return m.State != nil && m.State.CurrentID() == "a"
	})
	assert.True(t, msg.State.IsPlaying)
}

func TestServer_WebsocketCommands(t *testing.T) {
	ctrl := newController()
	ts := httptest.NewServer(NewServer(ctrl).Handler())
	defer ts.Close()

	conn := dialWS(t, ts.URL)
	require.NoError(t, conn.WriteJSON(Command{Action: ActionAdd, Track: &playlist.Track{ID: "b", VideoID: "vb"}}))
	readUntil(t, conn, func(m Message) bool {
		return m.State != nil && len(m.State.Queue) == 1
	})

	require.NoError(t, conn.WriteJSON(Command{Action: ActionVolume, Volume: 0.25}))
	msg := readUntil(t, conn, func(m Message) bool {
		return m.State != nil && m.State.Volume == 0.25
	})
	assert.False(t, msg.State.IsMuted)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	errMsg := readUntil(t, conn, func(m Message) bool { return m.Type == MessageError })
	assert.Equal(t, "invalid json", errMsg.Error)

	require.NoError(t, conn.WriteJSON(Command{Action: "shuffle"}))
	errMsg = readUntil(t, conn, func(m Message) bool { return m.Type == MessageError })
	assert.Contains(t, errMsg.Error, "unknown action")

	// The connection survives bad input.
	require.NoError(t, conn.WriteJSON(Command{Action: ActionClear}))
	readUntil(t, conn, func(m Message) bool {
		return m.State != nil && len(m.State.Queue) == 0
	})
}

func TestServer_ClientLifecycle(t *testing.T) {
	ctrl := newController()
	srv := NewServer(ctrl)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dialWS(t, ts.URL)
	readUntil(t, conn, func(Message) bool { return true })
	assert.Equal(t, 1, srv.ClientCount())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return srv.ClientCount() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	ctrl := newController()
	srv := NewServer(ctrl)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String()
	conn := dialWS(t, url)
	readUntil(t, conn, func(Message) bool { return true })

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}

	// The server closes the websocket on shutdown.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestServer_ListenAndServeBadAddr(t *testing.T) {
	err := NewServer(newController()).ListenAndServe(context.Background(), "256.0.0.1:bad")
	assert.Error(t, err)
}
