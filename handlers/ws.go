package handlers

import (
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/xener/energy-api/middleware"
)

// WSHandler pushes live updates to connected clients so the dashboard can
// refresh without polling. Each session is tagged with the user it
// authenticated as and only receives that user's events.
type WSHandler struct {
	m *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.HandleConnect(func(s *melody.Session) {
		log.Println("🔌 WebSocket client connected")
	})
	m.HandleDisconnect(func(s *melody.Session) {
		log.Println("🔌 WebSocket client disconnected")
	})

	return &WSHandler{m: m}
}

// Handle upgrades the request. Runs behind the auth middleware so the
// session can be tagged with the resolved user id.
func (h *WSHandler) Handle(c *gin.Context) {
	userID := middleware.GetUserID(c)
	err := h.m.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{
		"user_id": userID,
	})
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
	}
}

// BroadcastUpdate notifies a user's sessions that a resource changed. The
// payload carries only the update type; clients refetch what they need.
func (h *WSHandler) BroadcastUpdate(userID int, updateType string) {
	if h == nil {
		return
	}

	payload, err := json.Marshal(gin.H{"type": updateType})
	if err != nil {
		return
	}

	err = h.m.BroadcastFilter(payload, func(s *melody.Session) bool {
		v, ok := s.Get("user_id")
		if !ok {
			return false
		}
		id, _ := v.(int)
		return id == userID
	})
	if err != nil {
		log.Printf("❌ WebSocket broadcast failed: %v", err)
	}
}
