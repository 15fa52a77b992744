package remote

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/ytplay/internal/playback"
)

const (
	clientBufferSize = 8
	writeTimeout     = 5 * time.Second
	shutdownTimeout  = 3 * time.Second
)

// Message types sent to websocket clients.
const (
	MessageState = "state"
	MessageError = "error"
)

// Message is a server-to-client websocket frame.
type Message struct {
	Type  string                  `json:"type"`
	State *playback.PlaybackState `json:"state,omitempty"`
	Error string                  `json:"error,omitempty"`
}

// Server serves the remote-control API:
//
//	GET  /api/state    current PlaybackState as JSON
//	POST /api/command  apply one Command
//	GET  /ws           websocket: state pushes out, commands in
type Server struct {
	transport playback.Transport
	upgrader  websocket.Upgrader

	mu      sync.Mutex
	clients map[uuid.UUID]*client
}

type client struct {
	id   uuid.UUID
	send chan Message

	mu     sync.Mutex
	closed bool
}

// NewServer creates a server for t.
func NewServer(t playback.Transport) *Server {
	return &Server{
		transport: t,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		clients: make(map[uuid.UUID]*client),
	}
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/command", s.handleCommand)
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	return mux
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", addr)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info().Str("addr", ln.Addr().String()).Msg("remote control listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve remote control")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.closeClients()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown remote control")
	}
	return nil
}

// ClientCount returns the number of connected websocket clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.transport.Snapshot())
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, Message{Type: MessageError, Error: "invalid json"})
		return
	}
	if err := Apply(s.transport, cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, Message{Type: MessageError, Error: err.Error()})
		return
	}
	st := s.transport.Snapshot()
	writeJSON(w, http.StatusOK, Message{Type: MessageState, State: &st})
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zlog.Warn().Err(err).Msg("websocket upgrade")
		return
	}

	c := &client{id: uuid.New(), send: make(chan Message, clientBufferSize)}
	log := zlog.With().Str("client", c.id.String()).Logger()

	// The listener only enqueues: transport operations are not allowed from
	// inside a store callback.
	unsubscribe := s.transport.Subscribe(func(ch playback.Change) {
		st := ch.Current
		c.push(Message{Type: MessageState, State: &st})
	})
	s.addClient(c)
	log.Debug().Msg("remote client connected")

	st := s.transport.Snapshot()
	c.push(Message{Type: MessageState, State: &st})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writeLoop(conn, c)
	}()

	s.readLoop(conn, c)

	unsubscribe()
	s.removeClient(c)
	wg.Wait()
	conn.Close()
	log.Debug().Msg("remote client disconnected")
}

// readLoop applies incoming commands until the connection fails.
func (s *Server) readLoop(conn *websocket.Conn, c *client) {
	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				c.push(Message{Type: MessageError, Error: "invalid json"})
				continue
			}
			return
		}
		if err := Apply(s.transport, cmd); err != nil {
			c.push(Message{Type: MessageError, Error: err.Error()})
		}
	}
}

// writeLoop sends queued messages until the client is removed.
func (s *Server) writeLoop(conn *websocket.Conn, c *client) {
	for msg := range c.send {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			// Unblock readLoop.
			conn.Close()
			for range c.send {
			}
			return
		}
	}
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeTimeout),
	)
	conn.Close()
}

// push enqueues msg, dropping the oldest pending state when the client
// falls behind. Messages pushed after close are discarded.
func (c *client) push(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	for {
		select {
		case c.send <- msg:
			return
		default:
		}
		select {
		case <-c.send:
		default:
		}
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (s *Server) addClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.id] = c
}

func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c.id)
	c.close()
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.clients {
		delete(s.clients, id)
		c.close()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Warn().Err(err).Msg("write response")
	}
}
