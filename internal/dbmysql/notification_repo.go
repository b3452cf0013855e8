package dbmysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"intrachat/internal/common"
)

// NotificationRepository is the durable store behind the notification
// dispatcher.
type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	ByUserID(ctx context.Context, userID string, limit, offset int) ([]*Notification, error)
	// Unread returns the recipient's unread notifications oldest-first,
	// the order catch-up delivery replays them in.
	Unread(ctx context.Context, userID string) ([]*Notification, error)
	// MarkAsRead flips the monotonic read flag; marking twice is a no-op.
	MarkAsRead(ctx context.Context, id, userID string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, notification *Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return common.Wrap(common.KindUnavailable, err, "failed to create notification")
	}
	return nil
}

func (r *notificationRepo) ByUserID(ctx context.Context, userID string, limit, offset int) ([]*Notification, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var notifications []*Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, common.Wrap(common.KindUnavailable, err, "failed to get user notifications")
	}
	return notifications, nil
}

func (r *notificationRepo) Unread(ctx context.Context, userID string) ([]*Notification, error) {
	var notifications []*Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND `read` = ?", userID, false).
		Order("created_at ASC").
		Find(&notifications).Error
	if err != nil {
		return nil, common.Wrap(common.KindUnavailable, err, "failed to get unread notifications")
	}
	return notifications, nil
}

func (r *notificationRepo) MarkAsRead(ctx context.Context, id, userID string) error {
	var notification Notification
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.Ef(common.KindNotFound, "notification", "notification not found")
		}
		return common.Wrap(common.KindUnavailable, err, "failed to get notification")
	}
	if notification.Read {
		return nil // read is monotonic, re-marking is a no-op
	}

	err = r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
	if err != nil {
		return common.Wrap(common.KindUnavailable, err, "failed to mark notification read")
	}
	return nil
}

func (r *notificationRepo) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, common.Wrap(common.KindUnavailable, err, "failed to count unread notifications")
	}
	return count, nil
}
