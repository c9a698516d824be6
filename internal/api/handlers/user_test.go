package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amazinbookstore/bookstore-platform/internal/api/handlers"
	appErrors "github.com/amazinbookstore/bookstore-platform/internal/errors"
	"github.com/amazinbookstore/bookstore-platform/internal/models"
	"github.com/amazinbookstore/bookstore-platform/internal/services/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// jsonRequest builds an unauthenticated request, for the register/login
// endpoints that sit in front of the auth middleware.
func jsonRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func TestRegisterHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockUserService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(mockUserService)
		recorder := httptest.NewRecorder()

		user := &models.User{ID: uuid.New(), Username: "reader", Email: "reader@example.com", Role: models.RoleCustomer}
		mockUserService.On("Register", mock.Anything, mock.MatchedBy(func(req *models.RegisterRequest) bool {
			return req.Username == "reader" && req.Email == "reader@example.com"
		})).Return(user, nil).Once()

		body := []byte(`{"username":"reader","email":"reader@example.com","password":"hunter22"}`)

		// Act
		handler.Register()(recorder, jsonRequest("POST", "/api/v1/users/register", body))

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		resp := decodeAPIResponse(t, recorder)
		assert.True(t, resp.Success)
	})

	t.Run("Failure - Short Password Fails Validation", func(t *testing.T) {
		// Arrange
		mockUserService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(mockUserService)
		recorder := httptest.NewRecorder()

		body := []byte(`{"username":"reader","email":"reader@example.com","password":"abc"}`)

		// Act
		handler.Register()(recorder, jsonRequest("POST", "/api/v1/users/register", body))

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
		mockUserService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		// Arrange
		mockUserService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(mockUserService)
		recorder := httptest.NewRecorder()

		mockUserService.On("Register", mock.Anything, mock.Anything).
			Return(nil, appErrors.DuplicateEntryError("Email already exists")).Once()

		body := []byte(`{"username":"reader","email":"reader@example.com","password":"hunter22"}`)

		// Act
		handler.Register()(recorder, jsonRequest("POST", "/api/v1/users/register", body))

		// Assert
		assert.Equal(t, http.StatusConflict, recorder.Code)

		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, resp.Error.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockUserService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(mockUserService)
		recorder := httptest.NewRecorder()

		mockUserService.On("Login", mock.Anything, mock.MatchedBy(func(req *models.LoginRequest) bool {
			return req.Email == "reader@example.com"
		})).Return(&models.LoginResponse{Success: true, Token: "signed.jwt.token", ExpiresIn: 86400}, nil).Once()

		body := []byte(`{"email":"reader@example.com","password":"hunter22"}`)

		// Act
		handler.Login()(recorder, jsonRequest("POST", "/api/v1/users/login", body))

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		resp := decodeAPIResponse(t, recorder)
		assert.True(t, resp.Success)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		// Arrange
		mockUserService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(mockUserService)
		recorder := httptest.NewRecorder()

		mockUserService.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{Success: false, Message: "Invalid email or password", RemainingTries: 4}, nil).Once()

		body := []byte(`{"email":"reader@example.com","password":"wrong"}`)

		// Act
		handler.Login()(recorder, jsonRequest("POST", "/api/v1/users/login", body))

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var loginResp models.LoginResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &loginResp))
		assert.False(t, loginResp.Success)
		assert.Equal(t, 4, loginResp.RemainingTries)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		mockUserService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(mockUserService)
		recorder := httptest.NewRecorder()

		mockUserService.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{Success: false, Message: "Too many login attempts. Please try again later.", RetryAfter: 42}, nil).Once()

		body := []byte(`{"email":"reader@example.com","password":"hunter22"}`)

		// Act
		handler.Login()(recorder, jsonRequest("POST", "/api/v1/users/login", body))

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)

		var loginResp models.LoginResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &loginResp))
		assert.Equal(t, 42, loginResp.RetryAfter)
	})
}

func TestProfileHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockUserService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(mockUserService)
		recorder := httptest.NewRecorder()

		user := &models.User{ID: userID, Username: "reader", Email: "test@example.com"}
		mockUserService.On("GetUserByID", mock.Anything, userID).Return(user, nil).Once()

		// Act
		handler.Profile()(recorder, authenticatedRequest("GET", "/api/v1/users/profile", userID, nil))

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		resp := decodeAPIResponse(t, recorder)
		assert.True(t, resp.Success)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockUserService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(mockUserService)
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/users/profile", nil)

		// Act
		handler.Profile()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockUserService.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})
}
