package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/coursebay/coursebay-backend/internal/types"
)

type CartLine struct {
	ID             uuid.UUID `json:"id"`
	CourseID       uuid.UUID `json:"course_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	Level          string    `json:"level"`
	ImageURL       string    `json:"image_url"`
	TeacherName    string    `json:"teacher_name"`
	SellerID       uuid.UUID `json:"seller_id"`
	DurationHours  int       `json:"duration_hours"`
	CategoryName   string    `json:"category_name"`
	IsApproved     bool      `json:"is_approved"`
	TotalPurchased int       `json:"total_purchased"`
	AddedAt        time.Time `json:"added_at"`
}

type CartView struct {
	ID     uuid.UUID  `json:"id"`
	UserID uuid.UUID  `json:"user_id"`
	Items  []CartLine `json:"items"`
}

func NewCartLine(item *types.CartItem) CartLine {
	line := CartLine{
		ID:       item.ID,
		CourseID: item.CourseID,
		AddedAt:  item.AddedAt,
	}
	if c := item.Course; c != nil {
		line.Title = c.Title
		line.Description = c.Description
		line.Price = c.Price
		line.Level = c.Level
		line.ImageURL = c.ImageURL
		line.TeacherName = c.TeacherName
		line.SellerID = c.SellerID
		line.DurationHours = c.DurationHours
		line.CategoryName = categoryName(c.Category)
		line.IsApproved = c.IsApproved
		line.TotalPurchased = c.TotalPurchased
	}
	return line
}
