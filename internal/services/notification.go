package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/apperr"
	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/repos"
	"github.com/coursebay/coursebay-backend/internal/types"
)

// NotificationService persists seller notifications and fans them out over a
// Redis channel so connected clients pick them up live. Publishing is best
// effort: a Redis failure never fails the business operation.
type NotificationService interface {
	NotifySeller(ctx context.Context, tx *gorm.DB, sellerID uuid.UUID, message string, data map[string]any) error
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*types.Notification, error)
	MarkRead(ctx context.Context, sellerID, notificationID uuid.UUID) error
	Close() error
}

type notificationService struct {
	db               *gorm.DB
	log              *logger.Logger
	notificationRepo repos.NotificationRepo
	rdb              *goredis.Client
	channel          string
}

// NewNotificationService connects to Redis when REDIS_ADDR is set; without it
// notifications are persisted only.
func NewNotificationService(db *gorm.DB, log *logger.Logger, notificationRepo repos.NotificationRepo) (NotificationService, error) {
	serviceLog := log.With("service", "NotificationService")

	var rdb *goredis.Client
	channel := strings.TrimSpace(os.Getenv("REDIS_NOTIFICATION_CHANNEL"))
	if channel == "" {
		channel = "notifications"
	}
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:        addr,
			DialTimeout: 5 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
	} else {
		serviceLog.Warn("REDIS_ADDR not set, notifications will not be published live")
	}

	return &notificationService{
		db:               db,
		log:              serviceLog,
		notificationRepo: notificationRepo,
		rdb:              rdb,
		channel:          channel,
	}, nil
}

func (ns *notificationService) NotifySeller(ctx context.Context, tx *gorm.DB, sellerID uuid.UUID, message string, data map[string]any) error {
	var payload datatypes.JSON
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode notification data: %w", err)
		}
		payload = datatypes.JSON(raw)
	}
	notification := &types.Notification{
		ID:       uuid.New(),
		SellerID: sellerID,
		Message:  message,
		Data:     payload,
	}
	if err := ns.notificationRepo.Create(ctx, tx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	ns.publish(ctx, notification)
	return nil
}

func (ns *notificationService) publish(ctx context.Context, notification *types.Notification) {
	if ns.rdb == nil {
		return
	}
	raw, err := json.Marshal(notification)
	if err != nil {
		ns.log.Warn("failed to encode notification for publish", "error", err)
		return
	}
	if err := ns.rdb.Publish(ctx, ns.channel, raw).Err(); err != nil {
		ns.log.Warn("failed to publish notification", "error", err, "seller_id", notification.SellerID)
	}
}

func (ns *notificationService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*types.Notification, error) {
	return ns.notificationRepo.ListBySeller(ctx, nil, sellerID)
}

// MarkRead only touches the caller's own notifications.
func (ns *notificationService) MarkRead(ctx context.Context, sellerID, notificationID uuid.UUID) error {
	rows, err := ns.notificationRepo.MarkRead(ctx, nil, sellerID, notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}

func (ns *notificationService) Close() error {
	if ns.rdb == nil {
		return nil
	}
	return ns.rdb.Close()
}
