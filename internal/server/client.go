package server

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one websocket connection paired with its room. Outbound
// messages go through a buffered channel so the room never blocks on a slow
// connection; the read and write pumps each own one side of the socket.
type Client struct {
	conn   *websocket.Conn
	room   *Room
	send   chan []byte
	logger *log.Logger
}

// NewClient wraps an upgraded connection
func NewClient(conn *websocket.Conn, logger *log.Logger) *Client {
	return &Client{
		conn:   conn,
		send:   make(chan []byte, 64),
		logger: logger.WithPrefix("client"),
	}
}

// Send queues a message for delivery, dropping it if the client has fallen
// too far behind
func (c *Client) Send(msg *Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("marshaling outbound message", "error", err)
		return
	}
	select {
	case c.send <- payload:
	default:
		c.logger.Warn("dropping message, client too slow", "type", msg.Type)
	}
}

// ReadPump consumes inbound messages until the connection closes, then tears
// down the room
func (c *Client) ReadPump() {
	defer func() {
		c.room.Close()
		c.conn.Close()
		close(c.send)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.logger.Warn("discarding malformed message", "error", err)
			continue
		}
		c.room.Handle(&msg)
	}
}

// WritePump flushes queued messages and keeps the connection alive with
// pings
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
