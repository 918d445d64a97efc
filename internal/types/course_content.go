package types

import "github.com/google/uuid"

type CourseContent struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course      *Course   `gorm:"foreignKey:CourseID;references:ID" json:"-"`
	Title       string    `gorm:"not null;column:title" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
}

func (CourseContent) TableName() string { return "course_content" }
