package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/types"
)

type CourseContentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, content *types.CourseContent) error
	GetByID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) (*types.CourseContent, error)
	Delete(ctx context.Context, tx *gorm.DB, content *types.CourseContent) error
	ReplaceForCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, contents []types.CourseContent) error
}

type courseContentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseContentRepo(db *gorm.DB, baseLog *logger.Logger) CourseContentRepo {
	return &courseContentRepo{db: db, log: baseLog.With("repo", "CourseContentRepo")}
}

func (ccr *courseContentRepo) Create(ctx context.Context, tx *gorm.DB, content *types.CourseContent) error {
	transaction := tx
	if transaction == nil {
		transaction = ccr.db
	}
	return transaction.WithContext(ctx).Create(content).Error
}

// GetByID loads the parent course too, for the ownership check.
func (ccr *courseContentRepo) GetByID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) (*types.CourseContent, error) {
	transaction := tx
	if transaction == nil {
		transaction = ccr.db
	}
	var content types.CourseContent
	if err := transaction.WithContext(ctx).
		Preload("Course").
		First(&content, "id = ?", contentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &content, nil
}

func (ccr *courseContentRepo) Delete(ctx context.Context, tx *gorm.DB, content *types.CourseContent) error {
	transaction := tx
	if transaction == nil {
		transaction = ccr.db
	}
	return transaction.WithContext(ctx).Delete(content).Error
}

// ReplaceForCourse drops every row for the course and reinserts the given
// set: the wholesale-replace strategy used on course update.
func (ccr *courseContentRepo) ReplaceForCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, contents []types.CourseContent) error {
	transaction := tx
	if transaction == nil {
		transaction = ccr.db
	}
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&types.CourseContent{}).Error; err != nil {
		return err
	}
	if len(contents) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&contents).Error
}
