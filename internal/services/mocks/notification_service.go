package mocks

import (
	"context"

	"github.com/amazinbookstore/bookstore-platform/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type NotificationService struct {
	mock.Mock
}

func NewNotificationService(t interface {
	mock.TestingT
	Cleanup(func())
}) *NotificationService {
	m := &NotificationService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *NotificationService) SendOrderConfirmation(ctx context.Context, user *models.User, order *models.Order) {
	m.Called(ctx, user, order)
}

func (m *NotificationService) ListNotificationsByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	args := m.Called(ctx, userID)

	var notifications []models.Notification
	if args.Get(0) != nil {
		notifications = args.Get(0).([]models.Notification)
	}

	return notifications, args.Error(1)
}
