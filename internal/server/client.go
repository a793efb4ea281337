package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/mazecrawl/internal/game"
	"github.com/samdwyer/mazecrawl/internal/logger"
)

// WebSocket settings
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client connects one WebSocket to one session.
type Client struct {
	ctx     context.Context
	Session *game.Session
	Conn    *websocket.Conn

	updates     <-chan game.Snapshot
	unsubscribe func()
	battles     chan struct{}
	done        chan struct{}
	log         *logrus.Entry
}

// NewClient starts a session for conn using cfg. Battle notifications from
// the session are forwarded to the socket.
func NewClient(ctx context.Context, cfg game.Config, conn *websocket.Conn) (*Client, error) {
	c := &Client{
		ctx:     ctx,
		Conn:    conn,
		battles: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	cfg.OnEncounter = func(game.Snapshot) {
		select {
		case c.battles <- struct{}{}:
		default:
		}
	}

	session, err := game.NewSession(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.Session = session
	c.updates, c.unsubscribe = session.Subscribe()
	c.log = logger.Log.WithFields(logrus.Fields{
		"component":  "ws_client",
		"session_id": session.ID(),
		"remote":     conn.RemoteAddr().String(),
	})
	c.log.Info("Client connected")

	return c, nil
}

// readPump applies commands from the client until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.unsubscribe()
		close(c.done)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		var cmd Command
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("WS read error")
			}
			return
		}

		outcome, err := cmd.Apply(c.ctx, c.Session)
		if err != nil {
			c.log.WithError(err).Warn("Ignoring command")
			continue
		}
		c.log.WithFields(logrus.Fields{
			"action":  cmd.Action,
			"outcome": outcome.String(),
		}).Debug("Command applied")
	}
}

// writePump pushes snapshots and battle notices to the client and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case snap, ok := <-c.updates:
			if !ok {
				c.write(websocket.CloseMessage, nil)
				return
			}
			view := NewSnapshotView(snap)
			if !c.writeJSON(Message{Type: TypeSnapshot, Snapshot: &view}) {
				return
			}

		case <-c.battles:
			if !c.writeJSON(Message{Type: TypeBattle}) {
				return
			}

		case <-ticker.C:
			if !c.write(websocket.PingMessage, nil) {
				return
			}

		case <-c.done:
			return
		}
	}
}

func (c *Client) writeJSON(msg Message) bool {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.log.WithError(err).Warn("failed to set write deadline")
	}
	if err := c.Conn.WriteJSON(msg); err != nil {
		c.log.WithError(err).Debug("write json message failed")
		return false
	}
	return true
}

func (c *Client) write(messageType int, data []byte) bool {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.log.WithError(err).Warn("failed to set write deadline")
	}
	if err := c.Conn.WriteMessage(messageType, data); err != nil {
		c.log.WithError(err).Debug("write message failed")
		return false
	}
	return true
}
