package router

import (
	"context"

	"taskflow_realtime/internal/realtime/app"
	"taskflow_realtime/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes 注册 websocket 路由
func RegisterRoutes(r fiber.Router, realtimeWebsocket *app.RealtimeWebsocketHandler) {
	r.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	}, middlewares.JWTMiddleware())

	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		realtimeWebsocket.HandleConnection(context.Background(), c)
	}))
}
