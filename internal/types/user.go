package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin  = "Admin"
	RoleSeller = "Seller"
	RoleBuyer  = "Buyer"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password    string    `gorm:"not null;column:password" json:"-"`
	Role        string    `gorm:"not null;column:role" json:"role"`
	PhoneNumber string    `gorm:"column:phone_number" json:"phone_number"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }
