package websocket

import (
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512
)

type Client struct {
	remote   string
	conn     *websocket.Conn
	hub      *Hub
	send     chan []byte
	vehicles map[string]struct{} // empty means every vehicle
}

func newClient(hub *Hub, conn *websocket.Conn, vehicleIDs []string) *Client {
	c := &Client{
		remote:   conn.RemoteAddr().String(),
		conn:     conn,
		hub:      hub,
		send:     make(chan []byte, 256),
		vehicles: make(map[string]struct{}, len(vehicleIDs)),
	}
	for _, id := range vehicleIDs {
		if id != "" {
			c.vehicles[id] = struct{}{}
		}
	}
	return c
}

func (c *Client) wants(vehicleID string) bool {
	if len(c.vehicles) == 0 {
		return true
	}
	_, ok := c.vehicles[vehicleID]
	return ok
}

// readPump only services control frames; dashboards do not send data.
func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithField("remote", c.remote).Warnf("websocket error: %v", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
