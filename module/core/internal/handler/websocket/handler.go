package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

func (h *Hub) Register(r *gin.RouterGroup) {
	r.GET("/ws/alerts", h.ServeWS)
}

// ServeWS upgrades the request into an alert stream. Repeat ?vehicle_id= to
// follow specific buses.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warnf("websocket upgrade failed: %v", err)
		return
	}

	client := newClient(h, conn, c.QueryArray("vehicle_id"))
	if !h.join(client) {
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
