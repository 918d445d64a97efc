package types

import "github.com/google/uuid"

type TargetLearner struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course      *Course   `gorm:"foreignKey:CourseID;references:ID" json:"-"`
	Description string    `gorm:"not null;column:description" json:"description"`
}

func (TargetLearner) TableName() string { return "target_learner" }
