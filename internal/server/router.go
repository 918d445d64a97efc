package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/coursebay/coursebay-backend/internal/handlers"
	"github.com/coursebay/coursebay-backend/internal/middleware"
	"github.com/coursebay/coursebay-backend/internal/types"
)

type RouterConfig struct {
	AuthHandler         *handlers.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	CourseHandler       *handlers.CourseHandler
	CartHandler         *handlers.CartHandler
	HistoryHandler      *handlers.HistoryHandler
	NotificationHandler *handlers.NotificationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")

	// Public
	api.POST("/register", cfg.AuthHandler.Register)
	api.POST("/login", cfg.AuthHandler.Login)
	api.POST("/refresh", cfg.AuthHandler.Refresh)
	api.GET("/courses/all", cfg.CourseHandler.ListAll)

	// Optional identity: detail visibility and history recording depend on
	// who is asking, but anonymous browsing stays allowed.
	optional := api.Group("/")
	optional.Use(cfg.AuthMiddleware.OptionalAuth())
	optional.GET("/courses/:id", cfg.CourseHandler.GetByID)

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/logout", cfg.AuthHandler.Logout)

	// Catalog
	protected.GET("/courses", cfg.CourseHandler.List)
	protected.GET("/courses/mine", cfg.CourseHandler.Mine)
	protected.GET("/courses/purchased", cfg.CourseHandler.Purchased)
	protected.GET("/courses/:id/study-link", cfg.CourseHandler.GetStudyLink)

	sellerOnly := protected.Group("/")
	sellerOnly.Use(cfg.AuthMiddleware.RequireRoles(types.RoleSeller, types.RoleAdmin))
	sellerOnly.POST("/courses", cfg.CourseHandler.Create)
	sellerOnly.PUT("/courses/:id", cfg.CourseHandler.Update)
	sellerOnly.DELETE("/courses/:id", cfg.CourseHandler.Delete)
	sellerOnly.PUT("/courses/:id/study-link", cfg.CourseHandler.UpdateStudyLink)
	sellerOnly.POST("/courses/:id/contents", cfg.CourseHandler.AddContent)
	sellerOnly.DELETE("/courses/:id/contents/:contentId", cfg.CourseHandler.DeleteContent)
	sellerOnly.POST("/courses/:id/skills", cfg.CourseHandler.AddSkill)
	sellerOnly.DELETE("/courses/:id/skills/:skillId", cfg.CourseHandler.DeleteSkill)
	sellerOnly.POST("/courses/:id/target-learners", cfg.CourseHandler.AddTargetLearner)
	sellerOnly.DELETE("/courses/:id/target-learners/:learnerId", cfg.CourseHandler.DeleteTargetLearner)

	adminOnly := protected.Group("/")
	adminOnly.Use(cfg.AuthMiddleware.RequireRoles(types.RoleAdmin))
	adminOnly.PUT("/courses/:id/approve", cfg.CourseHandler.Approve)
	adminOnly.PUT("/courses/:id/restrict", cfg.CourseHandler.ToggleRestriction)

	// Cart
	protected.GET("/cart", cfg.CartHandler.Get)
	protected.POST("/cart/items/:courseId", cfg.CartHandler.AddItem)
	protected.DELETE("/cart/items/:courseId", cfg.CartHandler.RemoveItem)
	protected.DELETE("/cart", cfg.CartHandler.Clear)

	// History
	protected.GET("/history", cfg.HistoryHandler.List)
	protected.POST("/history/:courseId", cfg.HistoryHandler.Add)
	protected.DELETE("/history/:courseId", cfg.HistoryHandler.Remove)
	protected.DELETE("/history/clear", cfg.HistoryHandler.Clear)

	// Seller notifications
	notif := protected.Group("/")
	notif.Use(cfg.AuthMiddleware.RequireRoles(types.RoleSeller, types.RoleAdmin))
	notif.GET("/notifications", cfg.NotificationHandler.List)
	notif.PUT("/notifications/:id/read", cfg.NotificationHandler.MarkRead)

	return router
}
