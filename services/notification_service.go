package services

import (
	"context"

	"github.com/brightBediako/farmlink-api/models"
	"github.com/brightBediako/farmlink-api/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService serves a user's in-app notification feed.
type NotificationService struct {
	notificationRepo repository.NotificationRepo
}

func NewNotificationService(notificationRepo repository.NotificationRepo) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, *ServiceError) {
	notifications, err := s.notificationRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch notifications", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, internalError("Failed to fetch notifications")
	}
	return notifications, nil
}

// MarkRead flags a notification as read after an ownership check.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) *ServiceError {
	n, err := s.notificationRepo.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return ErrNotificationNotFound
	}
	if err != nil {
		zap.L().Error("notification lookup failed", zap.Error(err))
		return internalError("Failed to update notification")
	}
	if n.UserID != userID {
		return ErrForbidden
	}

	if err := s.notificationRepo.MarkRead(ctx, id); err != nil {
		zap.L().Error("notification update failed", zap.Error(err))
		return internalError("Failed to update notification")
	}
	return nil
}
