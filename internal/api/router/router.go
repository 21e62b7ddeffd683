package router

import (
	"taskflow_realtime/internal/api/handlers"
	rtapp "taskflow_realtime/internal/realtime/app"
	rtrouter "taskflow_realtime/internal/realtime/router"
	"taskflow_realtime/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers everything the router mounts
type Handlers struct {
	Chat         *handlers.ChatHandler
	Notification *handlers.NotificationHandler
	Voice        *handlers.VoiceHandler
	Realtime     *rtapp.RealtimeWebsocketHandler
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(app *fiber.App, h Handlers, gatherer prometheus.Gatherer) {
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	rtrouter.RegisterRoutes(app, h.Realtime)

	api := app.Group("/api", middlewares.JWTMiddleware())

	api.Get("/voice/channels/:id/users", h.Voice.Users)

	chat := api.Group("/chat/groups/:id")
	chat.Get("/messages", h.Chat.ListMessages)
	chat.Post("/messages", h.Chat.SendMessage)
	chat.Patch("/messages/:msgId", h.Chat.EditMessage)
	chat.Delete("/messages/:msgId", h.Chat.DeleteMessage)
	chat.Post("/messages/:msgId/reactions", h.Chat.React)
	chat.Patch("/read", h.Chat.MarkRead)
	chat.Post("/pin-message", h.Chat.PinMessage)
	chat.Post("/unpin-message", h.Chat.UnpinMessage)

	notifications := api.Group("/notifications")
	notifications.Post("/create", h.Notification.Create)
	notifications.Post("/email", h.Notification.SendEmail)
	notifications.Get("/settings", h.Notification.MySettings)
	notifications.Put("/settings", h.Notification.UpdateSettings)
	notifications.Get("/settings/:userId", h.Notification.UserSettings)
}
