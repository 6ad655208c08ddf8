package handler

import (
	"retail-mis-console/internal/middleware"
	"retail-mis-console/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const socketScopeLocal = "ws_scope"

// UpgradeConsoleSocket only lets websocket upgrades through and hands the scope to the socket
func UpgradeConsoleSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.SendStatus(fiber.StatusUpgradeRequired)
	}
	c.Locals(socketScopeLocal, middleware.Scope(c))
	return c.Next()
}

// ConsoleSocket streams session changes of the caller's scope
// GET /ws/console
func ConsoleSocket(hub *ws.Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		scope, _ := c.Locals(socketScopeLocal).(string)
		client := &ws.Client{Scope: scope, Conn: c}
		if !hub.Register(client) {
			return
		}
		defer hub.Unregister(client)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
