package handlers

import (
	"encoding/json"
	"time"

	"github.com/LovationAdmin/finance-tracker-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// TransactionEvent is pushed to every WebSocket subscriber after a mutation.
type TransactionEvent struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024

	// Keep-alive for hosts that drop idle connections
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		utils.LogWebSocket("connected", clientIP(s))
	})

	m.HandleDisconnect(func(s *melody.Session) {
		utils.LogWebSocket("disconnected", clientIP(s))
	})

	m.HandleError(func(s *melody.Session, err error) {
		utils.SafeWarn("WebSocket error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request and subscribes it to transaction events.
func (h *WSHandler) HandleWS(c *gin.Context) {
	keys := map[string]interface{}{"client_ip": c.ClientIP()}
	if err := h.M.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		utils.SafeWarn("Failed to upgrade websocket: %v", err)
	}
}

// Broadcast sends an event to all subscribers. Failures are only logged.
func (h *WSHandler) Broadcast(eventType, transactionID string) {
	if h == nil {
		return
	}
	msg, err := json.Marshal(TransactionEvent{Type: eventType, ID: transactionID})
	if err != nil {
		utils.SafeError("Failed to encode %s event: %v", eventType, err)
		return
	}
	if err := h.M.Broadcast(msg); err != nil {
		utils.SafeWarn("Error broadcasting %s event: %v", eventType, err)
	}
}

// Close disconnects every subscriber.
func (h *WSHandler) Close() error {
	return h.M.Close()
}

func clientIP(s *melody.Session) string {
	ip, _ := s.Get("client_ip")
	str, _ := ip.(string)
	return str
}
