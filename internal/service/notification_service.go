package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"budgetmate/internal/model"
	"budgetmate/internal/repository/mysql"
)

type NotificationService struct {
	repo *mysql.NotificationRepository
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{repo: &mysql.NotificationRepository{DB: db}}
}

// List returns the actor's notifications newest first.
func (s *NotificationService) List(ctx context.Context, actor Actor) ([]model.Notification, error) {
	list, err := s.repo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	if list == nil {
		list = []model.Notification{}
	}
	return list, nil
}
