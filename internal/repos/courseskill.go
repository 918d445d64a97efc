package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/types"
)

type CourseSkillRepo interface {
	Create(ctx context.Context, tx *gorm.DB, skill *types.CourseSkill) error
	GetByID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) (*types.CourseSkill, error)
	Delete(ctx context.Context, tx *gorm.DB, skill *types.CourseSkill) error
}

type courseSkillRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseSkillRepo(db *gorm.DB, baseLog *logger.Logger) CourseSkillRepo {
	return &courseSkillRepo{db: db, log: baseLog.With("repo", "CourseSkillRepo")}
}

func (csr *courseSkillRepo) Create(ctx context.Context, tx *gorm.DB, skill *types.CourseSkill) error {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}
	return transaction.WithContext(ctx).Create(skill).Error
}

func (csr *courseSkillRepo) GetByID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) (*types.CourseSkill, error) {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}
	var skill types.CourseSkill
	if err := transaction.WithContext(ctx).
		Preload("Course").
		First(&skill, "id = ?", skillID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &skill, nil
}

func (csr *courseSkillRepo) Delete(ctx context.Context, tx *gorm.DB, skill *types.CourseSkill) error {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}
	return transaction.WithContext(ctx).Delete(skill).Error
}
