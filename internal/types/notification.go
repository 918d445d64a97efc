package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Notification struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller    *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:SellerID;references:ID" json:"-"`
	Message   string         `gorm:"not null;column:message" json:"message"`
	Data      datatypes.JSON `gorm:"column:data;type:jsonb" json:"data,omitempty"`
	Read      bool           `gorm:"not null;default:false;column:read" json:"read"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (Notification) TableName() string { return "notification" }
