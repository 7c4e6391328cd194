package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"budgetmate/internal/model"
	"budgetmate/internal/pkg"
	"budgetmate/internal/repository/mysql"
)

const (
	defaultOutboxBatch    = 200
	defaultOutboxMaxRetry = 5
)

// Sender delivers one moderation event. An error leaves the row for retry.
type Sender func(ctx context.Context, ev *model.ModerationEvent) error

// OutboxRelayer drains the moderation outbox written next to each admin notification.
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	maxRetry  int
	interval  time.Duration
	sender    Sender
	log       *slog.Logger
}

func NewOutboxRelayer(db *gorm.DB, sender Sender, log *slog.Logger) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: defaultOutboxBatch,
		maxRetry:  defaultOutboxMaxRetry,
		interval:  time.Second,
		sender:    sender,
		log:       log,
	}
}

// Run polls until ctx is cancelled.
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.DrainOnce(ctx)
		}
	}
}

// DrainOnce delivers one batch and returns how many rows were marked sent.
func (r *OutboxRelayer) DrainOnce(ctx context.Context) int {
	rows, err := r.repo.ListDue(ctx, r.batchSize, r.maxRetry)
	if err != nil {
		r.log.Error("outbox query", "error", err)
		return 0
	}
	sent := 0
	for i := range rows {
		ev := &rows[i]
		if err := r.sender(ctx, ev); err != nil {
			r.log.Warn("outbox send", "id", ev.ID, "type", ev.EventType, "retry", ev.Retry, "error", err)
			if err := r.repo.MarkFailed(ctx, ev.ID); err != nil {
				r.log.Error("outbox mark failed", "id", ev.ID, "error", err)
			}
			continue
		}
		if err := r.repo.MarkSent(ctx, ev.ID); err != nil {
			r.log.Error("outbox mark sent", "id", ev.ID, "error", err)
			continue
		}
		sent++
	}
	return sent
}

// LogSender only records the event.
func LogSender(log *slog.Logger) Sender {
	return func(ctx context.Context, ev *model.ModerationEvent) error {
		log.Info("moderation event", "id", ev.ID, "type", ev.EventType, "user", ev.TargetUserID, "payload", string(ev.Payload))
		return nil
	}
}

type publisher interface {
	Publish(ctx context.Context, key string, v any) error
}

// moderationMessage is the kafka record for a moderation event.
type moderationMessage struct {
	EventID        uint64         `json:"event_id"`
	EventType      string         `json:"event_type"`
	TargetUserID   uint64         `json:"target_user_id"`
	NotificationID uint64         `json:"notification_id"`
	Payload        map[string]any `json:"payload"`
}

// KafkaSender publishes the event keyed by the target user so one user's events stay ordered.
func KafkaSender(p publisher) Sender {
	return func(ctx context.Context, ev *model.ModerationEvent) error {
		msg := moderationMessage{
			EventID:        ev.ID,
			EventType:      ev.EventType,
			TargetUserID:   ev.TargetUserID,
			NotificationID: ev.NotificationID,
		}
		if len(ev.Payload) > 0 {
			if err := json.Unmarshal(ev.Payload, &msg.Payload); err != nil {
				return fmt.Errorf("decode payload: %w", err)
			}
		}
		return p.Publish(ctx, pkg.KeyFromID(ev.TargetUserID), msg)
	}
}

type mailer interface {
	Send(to, subject, htmlBody string) error
}

// MailSender emails the content owner the notification text.
func MailSender(m mailer, db *gorm.DB) Sender {
	users := &mysql.UserRepository{DB: db}
	notices := &mysql.NotificationRepository{DB: db}
	return func(ctx context.Context, ev *model.ModerationEvent) error {
		u, err := users.FindByID(ctx, ev.TargetUserID)
		if errors.Is(err, mysql.ErrNotFound) {
			// Account gone; nothing to deliver.
			return nil
		}
		if err != nil {
			return err
		}
		n, err := notices.FindByID(ctx, ev.NotificationID)
		if err != nil {
			return err
		}
		return m.Send(u.Email, "Your BudgetMate content was removed", pkg.ModerationNoticeHTML(u.Name, n.Message))
	}
}

// ChainSenders runs every sender in order and stops at the first error.
func ChainSenders(senders ...Sender) Sender {
	return func(ctx context.Context, ev *model.ModerationEvent) error {
		for _, s := range senders {
			if err := s(ctx, ev); err != nil {
				return err
			}
		}
		return nil
	}
}
