package model

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const NotificationWarning NotificationType = "warning"

// Notification tells a content owner that an admin removed their content.
type Notification struct {
	ID        uint64           `gorm:"primaryKey" json:"id"`
	UserID    uint64           `gorm:"not null;index" json:"user"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Type      NotificationType `gorm:"size:16;not null" json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
}

const (
	OutboxPending int8 = 0
	OutboxSent    int8 = 1
	OutboxFailed  int8 = 2
)

const (
	EventPostRemoved    = "post_removed"
	EventCommentRemoved = "comment_removed"
)

// ModerationEvent is the outbox row written in the same transaction as a Notification.
type ModerationEvent struct {
	ID             uint64         `gorm:"primaryKey"`
	EventType      string         `gorm:"size:32;not null"`
	TargetUserID   uint64         `gorm:"not null"`
	NotificationID uint64         `gorm:"not null"`
	Payload        datatypes.JSON `gorm:"not null"`
	Status         int8           `gorm:"not null;default:0;index;comment:'0=pending,1=sent,2=failed'"`
	Retry          int            `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ModerationEvent) TableName() string { return "moderation_outbox" }
