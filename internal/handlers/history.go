package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/requestdata"
	"github.com/coursebay/coursebay-backend/internal/services"
)

type HistoryHandler struct {
	log            *logger.Logger
	historyService services.HistoryService
}

func NewHistoryHandler(log *logger.Logger, historyService services.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		log:            log.With("handler", "HistoryHandler"),
		historyService: historyService,
	}
}

func (h *HistoryHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	page, pageSize, err := pageParams(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	result, err := h.historyService.List(c.Request.Context(), rd.UserID, page, pageSize)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *HistoryHandler) Add(c *gin.Context) {
	courseID, err := pathUUID(c, "courseId")
	if err != nil {
		RespondError(c, err)
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := h.historyService.Add(c.Request.Context(), rd.UserID, courseID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *HistoryHandler) Remove(c *gin.Context) {
	courseID, err := pathUUID(c, "courseId")
	if err != nil {
		RespondError(c, err)
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := h.historyService.Remove(c.Request.Context(), rd.UserID, courseID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *HistoryHandler) Clear(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := h.historyService.Clear(c.Request.Context(), rd.UserID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}
