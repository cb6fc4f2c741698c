package sync

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"xnews/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WSHandler upgrades the request and keeps the reader registered until it
// disconnects. Incoming messages are ignored.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logging.FromContext(c.Request.Context())

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the error response
			log.Debug("websocket upgrade failed", "error", err)
			return
		}

		if err := hub.Add(ws); err != nil {
			_ = ws.Close()
			return
		}
		log.Info("feed reader connected", "remote", c.Request.RemoteAddr)

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.Remove(ws)
		log.Info("feed reader disconnected", "remote", c.Request.RemoteAddr)
	}
}
