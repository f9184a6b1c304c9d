package services_test

import (
	"context"
	"testing"

	"github.com/brightBediako/farmlink-api/models"
	"github.com/brightBediako/farmlink-api/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkRead_OwnNotification(t *testing.T) {
	userID := uuid.New()
	notificationID := uuid.New()
	marked := false
	notifications := &mockNotificationRepo{
		findByIDFn: func(_ context.Context, id uuid.UUID) (*models.Notification, error) {
			return &models.Notification{ID: id, UserID: userID}, nil
		},
		markReadFn: func(_ context.Context, _ uuid.UUID) error {
			marked = true
			return nil
		},
	}
	svc := services.NewNotificationService(notifications)

	svcErr := svc.MarkRead(context.Background(), notificationID, userID)

	require.Nil(t, svcErr)
	assert.True(t, marked)
}

func TestMarkRead_OtherUsersNotificationForbidden(t *testing.T) {
	notifications := &mockNotificationRepo{
		findByIDFn: func(_ context.Context, id uuid.UUID) (*models.Notification, error) {
			return &models.Notification{ID: id, UserID: uuid.New()}, nil
		},
	}
	svc := services.NewNotificationService(notifications)

	svcErr := svc.MarkRead(context.Background(), uuid.New(), uuid.New())

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrForbidden, svcErr)
}

func TestMarkRead_NotFound(t *testing.T) {
	svc := services.NewNotificationService(&mockNotificationRepo{})

	svcErr := svc.MarkRead(context.Background(), uuid.New(), uuid.New())

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrNotificationNotFound, svcErr)
}

func TestListForUser(t *testing.T) {
	userID := uuid.New()
	notifications := &mockNotificationRepo{
		findByUserFn: func(_ context.Context, id uuid.UUID) ([]models.Notification, error) {
			return []models.Notification{
				{ID: uuid.New(), UserID: id, Message: "Welcome"},
				{ID: uuid.New(), UserID: id, Message: "Order shipped", Read: true},
			}, nil
		},
	}
	svc := services.NewNotificationService(notifications)

	list, svcErr := svc.ListForUser(context.Background(), userID)

	require.Nil(t, svcErr)
	assert.Len(t, list, 2)
}
