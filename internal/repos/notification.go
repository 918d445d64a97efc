package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/types"
)

type NotificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notification *types.Notification) error
	ListBySeller(ctx context.Context, tx *gorm.DB, sellerID uuid.UUID) ([]*types.Notification, error)
	MarkRead(ctx context.Context, tx *gorm.DB, sellerID, notificationID uuid.UUID) (int64, error)
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return &notificationRepo{db: db, log: baseLog.With("repo", "NotificationRepo")}
}

func (nr *notificationRepo) Create(ctx context.Context, tx *gorm.DB, notification *types.Notification) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	return transaction.WithContext(ctx).Create(notification).Error
}

func (nr *notificationRepo) ListBySeller(ctx context.Context, tx *gorm.DB, sellerID uuid.UUID) ([]*types.Notification, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	var notifications []*types.Notification
	if err := transaction.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead reports how many rows matched so the caller can distinguish a
// missing notification from one owned by another seller.
func (nr *notificationRepo) MarkRead(ctx context.Context, tx *gorm.DB, sellerID, notificationID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	result := transaction.WithContext(ctx).
		Model(&types.Notification{}).
		Where("id = ? AND seller_id = ?", notificationID, sellerID).
		Update("read", true)
	return result.RowsAffected, result.Error
}
