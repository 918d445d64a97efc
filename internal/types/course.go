package types

import (
	"time"

	"github.com/google/uuid"
)

// Course levels are free-form strings by design; these are the values the
// frontend sends today.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

type Course struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string    `gorm:"not null;column:title" json:"title"`
	Description    string    `gorm:"column:description" json:"description"`
	Price          float64   `gorm:"not null;default:0;column:price" json:"price"`
	Level          string    `gorm:"column:level" json:"level"`
	TeacherName    string    `gorm:"column:teacher_name" json:"teacher_name"`
	ImageURL       string    `gorm:"column:image_url" json:"image_url"`
	DurationHours  int       `gorm:"not null;default:0;column:duration_hours" json:"duration_hours"`
	CategoryID     uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Category       *Category `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	SellerID       uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:SellerID;references:ID" json:"seller,omitempty"`
	AverageRating  float64   `gorm:"not null;default:0;column:average_rating" json:"average_rating"`
	TotalPurchased int       `gorm:"not null;default:0;column:total_purchased" json:"total_purchased"`
	IsApproved     bool      `gorm:"not null;default:false;column:is_approved" json:"is_approved"`
	IsRestricted   bool      `gorm:"not null;default:false;column:is_restricted" json:"is_restricted"`
	CourseLecture  *string   `gorm:"column:course_lecture" json:"course_lecture,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`

	Contents       []CourseContent `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"contents,omitempty"`
	Skills         []CourseSkill   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"skills,omitempty"`
	TargetLearners []TargetLearner `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"target_learners,omitempty"`
	Enrollments    []Enrollment    `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"enrollments,omitempty"`
	Reviews        []Review        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"reviews,omitempty"`
}

func (Course) TableName() string { return "course" }
