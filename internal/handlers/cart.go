package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/requestdata"
	"github.com/coursebay/coursebay-backend/internal/services"
)

type CartHandler struct {
	log         *logger.Logger
	cartService services.CartService
}

func NewCartHandler(log *logger.Logger, cartService services.CartService) *CartHandler {
	return &CartHandler{
		log:         log.With("handler", "CartHandler"),
		cartService: cartService,
	}
}

func (h *CartHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	cart, err := h.cartService.GetMyCart(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, cart)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	courseID, err := pathUUID(c, "courseId")
	if err != nil {
		RespondError(c, err)
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := h.cartService.AddToCart(c.Request.Context(), rd.UserID, courseID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	courseID, err := pathUUID(c, "courseId")
	if err != nil {
		RespondError(c, err)
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := h.cartService.RemoveFromCart(c.Request.Context(), rd.UserID, courseID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *CartHandler) Clear(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := h.cartService.ClearCart(c.Request.Context(), rd.UserID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}
