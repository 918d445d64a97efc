package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/types"
)

type CategoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, category *types.Category) error
	GetByID(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID) (*types.Category, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return &categoryRepo{db: db, log: baseLog.With("repo", "CategoryRepo")}
}

func (cr *categoryRepo) Create(ctx context.Context, tx *gorm.DB, category *types.Category) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Create(category).Error
}

func (cr *categoryRepo) GetByID(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID) (*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var category types.Category
	if err := transaction.WithContext(ctx).First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (cr *categoryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var categories []*types.Category
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
