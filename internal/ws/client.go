// Package ws streams the owner's change-feed events over a websocket.
package ws

import (
	"encoding/json"
	"time"

	"taskledger/internal/feed"
	"taskledger/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second

	// events buffered per connection before the slowest client starts
	// dropping
	sendBuffer = 256
)

type Client struct {
	UserID int64
	Conn   *websocket.Conn
	Send   chan []byte
	done   chan struct{}
}

func NewClient(userID int64, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
}

// Run subscribes the connection to the owner's feed and pumps events until
// the peer goes away. Blocks; the subscription is torn down before return so
// no event is delivered to a dead connection.
func (c *Client) Run(broker *feed.Broker) {
	cancel := broker.Subscribe(c.UserID, c.onEvent)
	defer cancel()

	go c.writePump()
	c.readPump()

	close(c.done)
	c.Conn.Close()
}

func (c *Client) onEvent(e feed.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		logger.Error("marshal feed event", "error", err)
		return
	}

	select {
	case c.Send <- payload:
	case <-c.done:
	default:
		// slow consumer, drop rather than block the publisher
		logger.Warn("dropping feed event for slow client", "user", c.UserID)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// readPump discards inbound frames; the socket is one-way. It exists to
// notice disconnects and answer pings.
func (c *Client) readPump() {
	c.Conn.SetReadLimit(1024)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
