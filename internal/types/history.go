package types

import (
	"time"

	"github.com/google/uuid"
)

// History is a recency log keyed by (user, course); re-viewing a course
// refreshes CreatedAt instead of inserting a second row.
type History struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"course_id"`
	Course    *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (History) TableName() string { return "history" }
