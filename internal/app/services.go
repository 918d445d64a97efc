package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Image        services.ImageService
	Notification services.NotificationService
	Course       services.CourseService
	Cart         services.CartService
	History      services.HistoryService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("wiring services")

	imageService, err := services.NewImageService(log)
	if err != nil {
		return Services{}, fmt.Errorf("init image service: %w", err)
	}
	notificationService, err := services.NewNotificationService(db, log, r.Notification)
	if err != nil {
		return Services{}, fmt.Errorf("init notification service: %w", err)
	}
	authService := services.NewAuthService(db, log, r.User, r.UserToken,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	courseService := services.NewCourseService(db, log,
		r.Course, r.CourseContent, r.CourseSkill, r.TargetLearner,
		r.User, r.Enrollment, r.History,
		imageService, notificationService)
	cartService := services.NewCartService(db, log, r.Cart, r.Course)
	historyService := services.NewHistoryService(db, log, r.History, r.Course)

	return Services{
		Auth:         authService,
		Image:        imageService,
		Notification: notificationService,
		Course:       courseService,
		Cart:         cartService,
		History:      historyService,
	}, nil
}
