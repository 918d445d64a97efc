package types

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User      *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Items     []CartItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:CartID;references:ID" json:"items,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}

func (Cart) TableName() string { return "cart" }
