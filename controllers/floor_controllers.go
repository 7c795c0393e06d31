package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-reservations/floor"
	"github.com/yeremiapane/restaurant-reservations/middlewares"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type FloorController struct {
	Hub      *floor.Hub
	upgrader websocket.Upgrader
}

// NewFloorController accepts websocket handshakes from origins, or from any
// origin when origins is empty or "*".
func NewFloorController(hub *floor.Hub, origins []string) *FloorController {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &FloorController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || allowed["*"] || origin == "" || allowed[origin]
			},
		},
	}
}

// FloorHandler -> GET /ws. The connection only receives events; anything the
// client sends is discarded.
func (fc *FloorController) FloorHandler(c *gin.Context) {
	role := c.GetString(middlewares.ContextRole)
	if role == "" {
		role = "guest"
	}

	ws, err := fc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Warnf("websocket upgrade failed: %v", err)
		return
	}
	fc.Hub.Register(ws, role)
	utils.InfoLogger.Infof("floor client connected (role=%s, clients=%d)", role, fc.Hub.Clients())

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	fc.Hub.Unregister(ws)
}
