package handlers

import (
	"errors"
	"time"

	"github.com/carhubapp/carhub-server/internal/dto"
	"github.com/carhubapp/carhub-server/internal/notifications"
	"github.com/carhubapp/carhub-server/internal/services"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	maintenanceService *services.MaintenanceService
	hub                *notifications.Hub
}

func NewNotificationHandler(maintenanceService *services.MaintenanceService, hub *notifications.Hub) *NotificationHandler {
	return &NotificationHandler{maintenanceService: maintenanceService, hub: hub}
}

// Start handles POST /api/notification/start. The window begins a few
// seconds after the request so in-flight work can drain.
func (h *NotificationHandler) Start(c *fiber.Ctx) error {
	var req dto.StartMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "endTime must be an RFC 3339 timestamp")
	}

	if err := h.maintenanceService.StartWindow(c.Context(), endTime); err != nil {
		if errors.Is(err, services.ErrWindowInPast) {
			return respondError(c, fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}

// Upgrade rejects non-websocket requests to the push endpoint.
func (h *NotificationHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve handles GET /api/notification/ws. The client speaks no protocol
// beyond the upgrade; the read loop only exists to notice the close.
func (h *NotificationHandler) Serve(conn *websocket.Conn) {
	id := h.hub.Register(conn)
	defer func() {
		h.hub.Unregister(id)
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
