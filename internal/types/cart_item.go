package types

import (
	"time"

	"github.com/google/uuid"
)

// The (cart_id, course_id) unique index is the backstop for two racing adds
// both observing "not in cart"; the service-level duplicate check only covers
// the sequential case.
type CartItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CartID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_cart_item_cart_course" json:"cart_id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_cart_item_cart_course" json:"course_id"`
	Course   *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	AddedAt  time.Time `gorm:"not null" json:"added_at"`
}

func (CartItem) TableName() string { return "cart_item" }
