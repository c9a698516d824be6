package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amazinbookstore/bookstore-platform/internal/api/handlers"
	"github.com/amazinbookstore/bookstore-platform/internal/api/middleware"
	"github.com/amazinbookstore/bookstore-platform/internal/models"
	"github.com/amazinbookstore/bookstore-platform/internal/services/mocks"
	"github.com/amazinbookstore/bookstore-platform/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authenticatedRequest builds a request carrying the given user's claims, the
// way the auth middleware would.
func authenticatedRequest(method, target string, userID uuid.UUID, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	claims := &models.Claims{
		UserID: userID,
		Email:  "test@example.com",
		Role:   models.RoleCustomer,
	}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)

	return req.WithContext(ctx)
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) *response.APIResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return &resp
}

func TestGetRecommendations(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Default Limit", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewRecommendationService(t)
		handler := handlers.NewRecommendationHandler(mockService)
		recorder := httptest.NewRecorder()

		result := models.PersonalizedRecommendations([]models.Book{{ID: uuid.New(), Title: "Dune"}})
		mockService.On("GetRecommendations", mock.Anything, userID, 5).Return(result, nil).Once()

		// Act
		handler.GetRecommendations()(recorder, authenticatedRequest("GET", "/api/v1/recommendations", userID, nil))

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		resp := decodeAPIResponse(t, recorder)
		assert.True(t, resp.Success)
		assert.NotNil(t, resp.Data)
	})

	t.Run("Success - Explicit Limit", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewRecommendationService(t)
		handler := handlers.NewRecommendationHandler(mockService)
		recorder := httptest.NewRecorder()

		mockService.On("GetRecommendations", mock.Anything, userID, 12).Return(models.EmptyRecommendations(), nil).Once()

		// Act
		handler.GetRecommendations()(recorder, authenticatedRequest("GET", "/api/v1/recommendations?limit=12", userID, nil))

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Success - Oversized Limit Is Capped", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewRecommendationService(t)
		handler := handlers.NewRecommendationHandler(mockService)
		recorder := httptest.NewRecorder()

		mockService.On("GetRecommendations", mock.Anything, userID, 50).Return(models.EmptyRecommendations(), nil).Once()

		// Act
		handler.GetRecommendations()(recorder, authenticatedRequest("GET", "/api/v1/recommendations?limit=500", userID, nil))

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Failure - Invalid Limit", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewRecommendationService(t)
		handler := handlers.NewRecommendationHandler(mockService)
		recorder := httptest.NewRecorder()

		// Act
		handler.GetRecommendations()(recorder, authenticatedRequest("GET", "/api/v1/recommendations?limit=abc", userID, nil))

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockService.AssertNotCalled(t, "GetRecommendations", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewRecommendationService(t)
		handler := handlers.NewRecommendationHandler(mockService)
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/recommendations", nil)

		// Act
		handler.GetRecommendations()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		resp := decodeAPIResponse(t, recorder)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error.Message, "Authentication required")
	})
}
