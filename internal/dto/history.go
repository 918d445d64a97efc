package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/coursebay/coursebay-backend/internal/types"
)

type HistoryItem struct {
	CourseID       uuid.UUID `json:"course_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	Level          string    `json:"level"`
	ImageURL       string    `json:"image_url"`
	AverageRating  float64   `json:"average_rating"`
	TotalPurchased int       `json:"total_purchased"`
	TeacherName    string    `json:"teacher_name"`
	SellerID       uuid.UUID `json:"seller_id"`
	DurationHours  int       `json:"duration_hours"`
	CategoryName   string    `json:"category_name"`
	IsApproved     bool      `json:"is_approved"`
	ViewedAt       time.Time `json:"viewed_at"`
}

func NewHistoryItem(h *types.History) HistoryItem {
	item := HistoryItem{
		CourseID: h.CourseID,
		ViewedAt: h.CreatedAt,
	}
	if c := h.Course; c != nil {
		item.Title = c.Title
		item.Description = c.Description
		item.Price = c.Price
		item.Level = c.Level
		item.ImageURL = c.ImageURL
		item.AverageRating = c.AverageRating
		item.TotalPurchased = c.TotalPurchased
		item.TeacherName = c.TeacherName
		item.SellerID = c.SellerID
		item.DurationHours = c.DurationHours
		item.CategoryName = categoryName(c.Category)
		item.IsApproved = c.IsApproved
	}
	return item
}
