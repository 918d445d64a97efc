package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/requestdata"
	"github.com/coursebay/coursebay-backend/internal/services"
)

type NotificationHandler struct {
	log                 *logger.Logger
	notificationService services.NotificationService
}

func NewNotificationHandler(log *logger.Logger, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		log:                 log.With("handler", "NotificationHandler"),
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	notifications, err := h.notificationService.ListBySeller(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	notificationID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := h.notificationService.MarkRead(c.Request.Context(), rd.UserID, notificationID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}
