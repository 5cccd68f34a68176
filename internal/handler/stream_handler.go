package handler

import (
	"encoding/json"

	"rfp-console/internal/pkg/logger"
	internalWS "rfp-console/internal/websocket"
	"rfp-console/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// StreamHandler upgrades bridge clients to a websocket that receives every
// state change and toast.
type StreamHandler struct {
	hub    *internalWS.Hub
	tree   *store.Tree
	logger logger.ILogger
}

func NewStreamHandler(hub *internalWS.Hub, tree *store.Tree, log logger.ILogger) *StreamHandler {
	return &StreamHandler{hub: hub, tree: tree, logger: log}
}

func (h *StreamHandler) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	r.Get("/ws", append(middleware, h.ServeWs)...)
}

// ServeWs greets the client with the whole tree, then streams updates.
func (h *StreamHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	greeting, err := json.Marshal(internalWS.Message{Type: internalWS.TypeState, Data: h.tree.Snapshot()})
	if err != nil {
		return err
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("StreamHandler", "Starting WebSocket session", map[string]interface{}{"remote": conn.RemoteAddr().String()})
		internalWS.ServeWs(h.hub, conn, greeting)
		h.logger.Info("StreamHandler", "WebSocket session ended", nil)
	})(c)
}
