package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/match"
	"github.com/preston-bernstein/scoreboard-service/internal/keymap"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait).
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
	replyBuffer    = 8
)

// Stream message types.
const (
	MessageSnapshot = "snapshot"
	MessageError    = "error"
	MessageKey      = "key"
	MessageCommand  = "command"
	MessageSettings = "settings"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Boards are served from other origins on the venue network.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ClientMessage is what a display or remote control sends over the stream.
type ClientMessage struct {
	Type     string          `json:"type"`
	Key      string          `json:"key,omitempty"`
	Command  *match.Command  `json:"command,omitempty"`
	Settings *match.Settings `json:"settings,omitempty"`
}

// ServerMessage is what the stream pushes to clients.
type ServerMessage struct {
	Type     string          `json:"type"`
	Snapshot *match.Snapshot `json:"snapshot,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type streamClient struct {
	id         string
	conn       *websocket.Conn
	feed       <-chan match.Snapshot
	replies    chan ServerMessage
	canControl bool
	logger     *slog.Logger
}

// Stream upgrades to a WebSocket that pushes every snapshot and accepts key,
// command and settings messages from authorized clients.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	canControl := h.auth.Authorized(r)
	logger := logging.FromContext(r.Context(), h.logger)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logger, "websocket upgrade failed", "error", err)
		return
	}

	id, feed, unsubscribe := h.svc.Subscribe(h.buffer)
	defer unsubscribe()
	h.metrics.AddStreamClients(1)
	defer h.metrics.AddStreamClients(-1)

	c := &streamClient{
		id:         id,
		conn:       conn,
		feed:       feed,
		replies:    make(chan ServerMessage, replyBuffer),
		canControl: canControl,
		logger:     logger,
	}
	logging.Info(logger, "stream client connected", logging.FieldClientID, id, "control", canControl)

	ctx, cancel := context.WithCancel(context.Background())
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writePump(ctx)
	}()

	c.readPump(ctx, h.svc)
	cancel()
	<-writerDone
	logging.Info(logger, "stream client disconnected", logging.FieldClientID, id)
}

// readPump applies client messages until the connection fails or closes.
func (c *streamClient) readPump(ctx context.Context, svc Scoreboard) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug(c.logger, "stream read failed", logging.FieldClientID, c.id, "error", err)
			}
			return
		}
		c.handle(ctx, svc, msg)
	}
}

func (c *streamClient) handle(ctx context.Context, svc Scoreboard, msg ClientMessage) {
	cmd, ok := c.command(msg)
	if !ok {
		return
	}
	if !c.canControl {
		c.trySend(ServerMessage{Type: MessageError, Error: "unauthorized"})
		return
	}
	if _, err := svc.Do(ctx, cmd); err != nil {
		_, text := commandErrorStatus(err)
		c.trySend(ServerMessage{Type: MessageError, Error: text})
	}
}

func (c *streamClient) command(msg ClientMessage) (match.Command, bool) {
	switch msg.Type {
	case MessageKey:
		cmd, ok := keymap.Lookup(msg.Key)
		if !ok {
			c.trySend(ServerMessage{Type: MessageError, Error: "unknown key"})
		}
		return cmd, ok
	case MessageCommand:
		if msg.Command == nil {
			c.trySend(ServerMessage{Type: MessageError, Error: "missing command"})
			return match.Command{}, false
		}
		return *msg.Command, true
	case MessageSettings:
		if msg.Settings == nil {
			c.trySend(ServerMessage{Type: MessageError, Error: "missing settings"})
			return match.Command{}, false
		}
		return match.Command{Type: match.CmdConfigure, Settings: msg.Settings}, true
	default:
		c.trySend(ServerMessage{Type: MessageError, Error: "unknown message type"})
		return match.Command{}, false
	}
}

// writePump is the only writer on the connection.
func (c *streamClient) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.writeClose()
			return

		case snap, ok := <-c.feed:
			if !ok {
				// Dropped as a slow subscriber or the service stopped.
				c.writeClose()
				return
			}
			if err := c.write(ServerMessage{Type: MessageSnapshot, Snapshot: &snap}); err != nil {
				return
			}

		case reply := <-c.replies:
			if err := c.write(reply); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *streamClient) write(msg ServerMessage) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		logging.Debug(c.logger, "stream write failed", logging.FieldClientID, c.id, "error", err)
		return err
	}
	return nil
}

func (c *streamClient) writeClose() {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// trySend queues a reply without blocking the read loop.
func (c *streamClient) trySend(msg ServerMessage) bool {
	select {
	case c.replies <- msg:
		return true
	default:
		return false
	}
}
