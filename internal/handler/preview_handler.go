package handler

import (
	"content-platform-be/internal/pkg/logger"
	internalWS "content-platform-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type PreviewHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewPreviewHandler(hub *internalWS.Hub, log logger.ILogger) *PreviewHandler {
	return &PreviewHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs upgrades the request and streams rendered HTML of the content
// named by :id to the peer whenever it is edited or a draft is saved.
func (h *PreviewHandler) ServeWs(c *fiber.Ctx) error {
	contentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid content id")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("PreviewHandler", "Starting preview session", map[string]interface{}{"content_id": contentID})
		internalWS.ServeWs(h.hub, conn, contentID)
		h.logger.Info("PreviewHandler", "Preview session ended", map[string]interface{}{"content_id": contentID})
	})(c)
}

func (h *PreviewHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/content/:id", h.ServeWs)
}
