package repository

import (
	"context"
	"time"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
	"gorm.io/gorm"
)

// NotificationRepo persists in-app notifications.
type NotificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo constructs a NotificationRepo.
func NewNotificationRepo(db *gorm.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// Create inserts a notification row.
func (r *NotificationRepo) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListForTarget returns a page of notifications for one recipient, newest
// first.
func (r *NotificationRepo) ListForTarget(ctx context.Context, targetType string, targetID uint, offset, limit int) ([]model.Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []model.Notification
	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// MarkRead stamps the notification as read by its recipient.
func (r *NotificationRepo) MarkRead(ctx context.Context, notificationID uint, targetType string, targetID uint) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND target_type = ? AND target_id = ?", notificationID, targetType, targetID).
		Update("read_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
