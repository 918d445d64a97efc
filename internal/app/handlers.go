package app

import (
	"github.com/coursebay/coursebay-backend/internal/handlers"
	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Course       *handlers.CourseHandler
	Cart         *handlers.CartHandler
	History      *handlers.HistoryHandler
	Notification *handlers.NotificationHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("wiring handlers")
	return Handlers{
		Auth:         handlers.NewAuthHandler(log, s.Auth),
		Course:       handlers.NewCourseHandler(log, s.Course),
		Cart:         handlers.NewCartHandler(log, s.Cart),
		History:      handlers.NewHistoryHandler(log, s.History),
		Notification: handlers.NewNotificationHandler(log, s.Notification),
	}
}
