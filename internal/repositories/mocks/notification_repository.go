package mocks

import (
	"context"

	"github.com/amazinbookstore/bookstore-platform/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type NotificationRepository struct {
	mock.Mock
}

func NewNotificationRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *NotificationRepository {
	m := &NotificationRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *NotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *NotificationRepository) ListNotificationsByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	args := m.Called(ctx, userID)

	var notifications []models.Notification
	if args.Get(0) != nil {
		notifications = args.Get(0).([]models.Notification)
	}

	return notifications, args.Error(1)
}
