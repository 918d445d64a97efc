package types

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment rows are written by the (external) purchase flow; this service
// only reads them to gate lecture visibility and build the buyer library.
type Enrollment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_enrollment_buyer_course" json:"buyer_id"`
	Buyer    *User     `gorm:"foreignKey:BuyerID;references:ID" json:"-"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_enrollment_buyer_course" json:"course_id"`
	Course   *Course   `gorm:"foreignKey:CourseID;references:ID" json:"course,omitempty"`
	EnrollAt time.Time `gorm:"not null" json:"enroll_at"`
}

func (Enrollment) TableName() string { return "enrollment" }
