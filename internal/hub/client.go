package hub

import (
	"context"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait).
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size; subscribers only ever send pongs.
	maxMessageSize = 512

	// Per-client outbound buffer.
	sendBuffer = 8
)

// Client is one websocket subscriber.
type Client struct {
	ID   string
	Send chan UpdateMessage

	conn *websocket.Conn
	hub  *Hub
}

// NewClient wraps an upgraded websocket connection.
func NewClient(id string, conn *websocket.Conn, h *Hub) *Client {
	return &Client{
		ID:   id,
		Send: make(chan UpdateMessage, sendBuffer),
		conn: conn,
		hub:  h,
	}
}

// TrySend queues a message without blocking. Returns false when the
// client's buffer is full.
func (c *Client) TrySend(msg UpdateMessage) bool {
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

// WritePump drains the Send channel to the websocket and keeps the
// connection alive with pings. Runs until the channel closes, the peer
// goes away, or ctx is canceled.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("[hub] write to client %s failed: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump consumes (and discards) inbound frames so pongs and close
// frames are processed. Exits, and unregisters the client, when the peer
// disconnects; only this client's delivery loop is affected.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[hub] client %s read error: %v", c.ID, err)
			}
			return
		}
	}
}
