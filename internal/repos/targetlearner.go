package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/types"
)

type TargetLearnerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, learner *types.TargetLearner) error
	GetByID(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) (*types.TargetLearner, error)
	Delete(ctx context.Context, tx *gorm.DB, learner *types.TargetLearner) error
}

type targetLearnerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTargetLearnerRepo(db *gorm.DB, baseLog *logger.Logger) TargetLearnerRepo {
	return &targetLearnerRepo{db: db, log: baseLog.With("repo", "TargetLearnerRepo")}
}

func (tlr *targetLearnerRepo) Create(ctx context.Context, tx *gorm.DB, learner *types.TargetLearner) error {
	transaction := tx
	if transaction == nil {
		transaction = tlr.db
	}
	return transaction.WithContext(ctx).Create(learner).Error
}

func (tlr *targetLearnerRepo) GetByID(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) (*types.TargetLearner, error) {
	transaction := tx
	if transaction == nil {
		transaction = tlr.db
	}
	var learner types.TargetLearner
	if err := transaction.WithContext(ctx).
		Preload("Course").
		First(&learner, "id = ?", learnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &learner, nil
}

func (tlr *targetLearnerRepo) Delete(ctx context.Context, tx *gorm.DB, learner *types.TargetLearner) error {
	transaction := tx
	if transaction == nil {
		transaction = tlr.db
	}
	return transaction.WithContext(ctx).Delete(learner).Error
}
