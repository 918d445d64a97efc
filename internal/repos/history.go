package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/types"
)

type HistoryRepo interface {
	Get(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.History, error)
	Create(ctx context.Context, tx *gorm.DB, entry *types.History) error
	Touch(ctx context.Context, tx *gorm.DB, entry *types.History) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, page, pageSize int) ([]*types.History, int64, error)
	Delete(ctx context.Context, tx *gorm.DB, entry *types.History) error
	ClearByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type historyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHistoryRepo(db *gorm.DB, baseLog *logger.Logger) HistoryRepo {
	return &historyRepo{db: db, log: baseLog.With("repo", "HistoryRepo")}
}

func (hr *historyRepo) Get(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.History, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	var entry types.History
	if err := transaction.WithContext(ctx).
		First(&entry, "user_id = ? AND course_id = ?", userID, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (hr *historyRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.History) error {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	return transaction.WithContext(ctx).Create(entry).Error
}

// Touch refreshes the last-viewed timestamp on an existing row.
func (hr *historyRepo) Touch(ctx context.Context, tx *gorm.DB, entry *types.History) error {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.History{}).
		Where("user_id = ? AND course_id = ?", entry.UserID, entry.CourseID).
		Update("created_at", entry.CreatedAt).Error
}

func (hr *historyRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, page, pageSize int) ([]*types.History, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.History{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*types.History
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Preload("Course").
		Preload("Course.Category").
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (hr *historyRepo) Delete(ctx context.Context, tx *gorm.DB, entry *types.History) error {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", entry.UserID, entry.CourseID).
		Delete(&types.History{}).Error
}

func (hr *historyRepo) ClearByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.History{}).Error
}
