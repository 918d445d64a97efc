package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/types"
)

type CartRepo interface {
	Create(ctx context.Context, tx *gorm.DB, cart *types.Cart) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Cart, error)
	AddItem(ctx context.Context, tx *gorm.DB, item *types.CartItem) error
	RemoveItem(ctx context.Context, tx *gorm.DB, item *types.CartItem) error
	ClearItems(ctx context.Context, tx *gorm.DB, cartID uuid.UUID) error
}

type cartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	return &cartRepo{db: db, log: baseLog.With("repo", "CartRepo")}
}

func (cr *cartRepo) Create(ctx context.Context, tx *gorm.DB, cart *types.Cart) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Create(cart).Error
}

// GetByUserID returns the cart with enriched lines, (nil, nil) when the user
// has no cart yet.
func (cr *cartRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Cart, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var cart types.Cart
	if err := transaction.WithContext(ctx).
		Preload("Items").
		Preload("Items.Course").
		Preload("Items.Course.Category").
		First(&cart, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (cr *cartRepo) AddItem(ctx context.Context, tx *gorm.DB, item *types.CartItem) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Create(item).Error
}

func (cr *cartRepo) RemoveItem(ctx context.Context, tx *gorm.DB, item *types.CartItem) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Delete(item).Error
}

func (cr *cartRepo) ClearItems(ctx context.Context, tx *gorm.DB, cartID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&types.CartItem{}).Error
}
