package types

import "github.com/google/uuid"

type CourseSkill struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course   *Course   `gorm:"foreignKey:CourseID;references:ID" json:"-"`
	Name     string    `gorm:"not null;column:name" json:"name"`
}

func (CourseSkill) TableName() string { return "course_skill" }
