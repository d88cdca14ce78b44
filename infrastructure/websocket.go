package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"stageshow/auth"
	"stageshow/domain"
	"stageshow/errors"
	"stageshow/services"
)

// Connection roles. Displays mirror state and can never become operators on
// the same connection.
const (
	RoleOperator = auth.RoleOperator
	RoleDisplay  = "display"
)

// clientEnvelope is everything a client may send after the handshake.
type clientEnvelope struct {
	Type       string          `json:"type"`
	ID         int64           `json:"id"`
	Credential string          `json:"credential,omitempty"`
	Action     json.RawMessage `json:"action,omitempty"`
}

type serverEnvelope struct {
	Type       string            `json:"type"`
	ID         int64             `json:"id,omitempty"`
	SessionID  string            `json:"sessionId,omitempty"`
	Role       string            `json:"role,omitempty"`
	ServerTime domain.Millis     `json:"serverTime,omitempty"`
	State      *domain.ShowState `json:"state,omitempty"`
	OK         *bool             `json:"ok,omitempty"`
	Token      string            `json:"token,omitempty"`
	Error      string            `json:"error,omitempty"`
	Details    string            `json:"details,omitempty"`
}

// WSHandler upgrades connections and runs the session protocol: hello, then
// an initial state push, then acks for submissions and state pushes after
// every accepted action.
type WSHandler struct {
	log          *slog.Logger
	shows        services.IShowService
	auth         services.IAuthService
	writeTimeout time.Duration
	pongTimeout  time.Duration
	upgrader     websocket.Upgrader
}

func NewWSHandler(
	log *slog.Logger,
	shows services.IShowService,
	authService services.IAuthService,
	writeTimeout, pongTimeout time.Duration,
) *WSHandler {
	return &WSHandler{
		log:          log,
		shows:        shows,
		auth:         authService,
		writeTimeout: writeTimeout,
		pongTimeout:  pongTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The server is deployed behind the venue's own network; the
			// browser clients are served from PUBLIC_DIR on the same host.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = "default"
	}
	role := r.URL.Query().Get("role")
	if role != RoleOperator {
		role = RoleDisplay
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", "err", err)
		return
	}

	connID := uuid.NewString()
	conn := &connection{
		id:        connID,
		sessionID: sessionID,
		role:      role,
		ws:        ws,
		handler:   h,
		log:       h.log.With("connection", connID, "session", sessionID, "role", role),
	}
	conn.serve(r.Context())
}

// connection is the per-socket protocol state. authorized is only touched by
// the read loop; writes from the read loop and the push loop share writeMu.
type connection struct {
	id        string
	sessionID string
	role      string
	ws        *websocket.Conn
	handler   *WSHandler
	log       *slog.Logger

	writeMu    sync.Mutex
	authorized bool
}

func (c *connection) serve(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	defer c.ws.Close()

	h := c.handler
	c.ws.SetReadLimit(64 * 1024)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.handler.pongTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.handler.pongTimeout))
	})

	if err := c.writeEnvelope(serverEnvelope{
		Type:       "hello",
		SessionID:  c.sessionID,
		Role:       c.role,
		ServerTime: domain.ToMillis(time.Now().UTC()),
	}); err != nil {
		c.log.Warn("Handshake write failed", "err", err)
		return
	}

	sink := NewSink()
	h.shows.Join(ctx, c.id, c.sessionID, sink)
	defer h.shows.Leave(c.id, c.sessionID)

	go c.pushLoop(ctx, cancel, sink)

	c.log.Debug("Connection established")
	c.readLoop(ctx)
}

// pushLoop delivers snapshots and keepalive pings until the connection dies.
// Teardown closes the socket as well as canceling the context: the read loop
// blocks in ReadMessage and only the close unblocks it, which is what lets
// serve release the registry entry right away instead of waiting out the
// pong deadline.
func (c *connection) pushLoop(ctx context.Context, cancel context.CancelFunc, sink *Sink) {
	defer func() {
		cancel()
		_ = c.ws.Close()
	}()
	ping := time.NewTicker(c.handler.pongTimeout * 9 / 10)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case state := <-sink.Updates():
			if err := c.writeEnvelope(serverEnvelope{Type: "state", State: &state}); err != nil {
				c.log.Debug("State push failed, dropping connection", "err", err)
				return
			}
		case <-ping.C:
			c.writeMu.Lock()
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.handler.writeTimeout))
			err := c.ws.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (c *connection) readLoop(ctx context.Context) {
	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Debug("Connection closed unexpectedly", "err", err)
			}
			return
		}

		var env clientEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			// An unparsable frame gets no ack: there is no id to ack to.
			c.log.Debug("Discarding unparsable frame")
			continue
		}

		switch env.Type {
		case "authenticate":
			c.handleAuthenticate(env)
		case "action":
			c.handleAction(ctx, env)
		default:
			c.log.Debug("Ignoring unknown envelope type", "type", env.Type)
		}
	}
}

func (c *connection) handleAuthenticate(env clientEnvelope) {
	if c.role != RoleOperator {
		c.ackError(env.ID, errors.ErrRoleNotOperator, "")
		return
	}

	token, err := c.handler.auth.Authenticate(env.Credential)
	if err != nil {
		c.ackError(env.ID, err, "")
		return
	}

	c.authorized = true
	ok := true
	_ = c.writeEnvelope(serverEnvelope{Type: "ack", ID: env.ID, OK: &ok, Token: string(token)})
	c.log.Info("Operator authenticated")
}

func (c *connection) handleAction(ctx context.Context, env clientEnvelope) {
	if !c.authorized {
		c.ackError(env.ID, errors.ErrNotAuthorized, "")
		return
	}

	// A malformed payload still goes through the reducer and lands on the
	// no-op fallback, so the control stream survives client bugs.
	action, _ := domain.DecodeAction(env.Action)

	if _, err := c.handler.shows.Submit(ctx, c.sessionID, action); err != nil {
		c.ackError(env.ID, err, err.Error())
		return
	}

	ok := true
	_ = c.writeEnvelope(serverEnvelope{Type: "ack", ID: env.ID, OK: &ok})
}

func (c *connection) ackError(id int64, err error, details string) {
	notOK := false
	_ = c.writeEnvelope(serverEnvelope{
		Type:    "ack",
		ID:      id,
		OK:      &notOK,
		Error:   errors.Code(err),
		Details: details,
	})
}

func (c *connection) writeEnvelope(env serverEnvelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(c.handler.writeTimeout))
	return c.ws.WriteJSON(env)
}
