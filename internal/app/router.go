package app

import (
	"github.com/gin-gonic/gin"

	"github.com/coursebay/coursebay-backend/internal/server"
)

func wireRouter(h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:         h.Auth,
		AuthMiddleware:      m.Auth,
		CourseHandler:       h.Course,
		CartHandler:         h.Cart,
		HistoryHandler:      h.History,
		NotificationHandler: h.Notification,
	})
}
