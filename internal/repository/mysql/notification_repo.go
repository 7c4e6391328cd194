package mysql

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"budgetmate/internal/model"
)

type NotificationRepository struct {
	DB *gorm.DB
}

type OutboxRepository struct {
	DB *gorm.DB
}

// ListByUser returns the user's notifications newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	var list []model.Notification
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&list).Error
	return list, err
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uint64) (*model.Notification, error) {
	var n model.Notification
	err := r.DB.WithContext(ctx).First(&n, id).Error
	return &n, err
}

// insertNotice stores the notification and its outbox row inside tx.
func insertNotice(tx *gorm.DB, event string, postID uint64, n *model.Notification) error {
	if err := tx.Create(n).Error; err != nil {
		return err
	}
	payload, _ := json.Marshal(map[string]any{
		"event_time":      time.Now().UTC().Format(time.RFC3339Nano),
		"notification_id": n.ID,
		"user_id":         n.UserID,
		"post_id":         postID,
		"type":            n.Type,
		"message":         n.Message,
	})
	return tx.Create(&model.ModerationEvent{
		EventType:      event,
		TargetUserID:   n.UserID,
		NotificationID: n.ID,
		Payload:        datatypes.JSON(payload),
		Status:         model.OutboxPending,
	}).Error
}

// ListDue returns pending rows and failed rows still under maxRetry, oldest first.
func (r *OutboxRepository) ListDue(ctx context.Context, batchSize, maxRetry int) ([]model.ModerationEvent, error) {
	var list []model.ModerationEvent
	err := r.DB.WithContext(ctx).
		Where("status = ? OR (status = ? AND retry < ?)", model.OutboxPending, model.OutboxFailed, maxRetry).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error
	return list, err
}

// MarkFailed records a failed delivery attempt.
func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ModerationEvent{}).Where("id = ?", id).
		Updates(map[string]any{"status": model.OutboxFailed, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ModerationEvent{}).Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}
