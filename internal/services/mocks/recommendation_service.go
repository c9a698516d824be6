package mocks

import (
	"context"

	"github.com/amazinbookstore/bookstore-platform/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type RecommendationService struct {
	mock.Mock
}

func NewRecommendationService(t interface {
	mock.TestingT
	Cleanup(func())
}) *RecommendationService {
	m := &RecommendationService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *RecommendationService) GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) (*models.RecommendationResult, error) {
	args := m.Called(ctx, userID, limit)

	var result *models.RecommendationResult
	if args.Get(0) != nil {
		result = args.Get(0).(*models.RecommendationResult)
	}

	return result, args.Error(1)
}
