package app

import (
	"github.com/coursebay/coursebay-backend/internal/middleware"
	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	log.Info("wiring middleware")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, s.Auth),
	}
}
