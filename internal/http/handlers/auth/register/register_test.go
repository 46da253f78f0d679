package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bsanthoshbsr/elearning-platform/internal/models"
	"github.com/bsanthoshbsr/elearning-platform/internal/storage/repository"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, user models.User, rawPassword string) (*models.User, bool, error) {
	args := m.Called(ctx, user, rawPassword)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := `{"username":"testuser","name":"Test User","email":"test@example.com","password":"password123","role":"student"}`

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: validBody,
			setupMock: func(m *MockService) {
				created := &models.User{
					Username: "testuser",
					Name:     "Test User",
					Email:    "test@example.com",
					Role:     models.RoleStudent,
				}
				m.On("Register", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Username == "testuser" && u.Role == models.RoleStudent
				}), "password123").Return(created, true, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"username":"testuser"`,
		},
		{
			name: "регистрация с неотправленным письмом",
			body: validBody,
			setupMock: func(m *MockService) {
				created := &models.User{Username: "testuser", Role: models.RoleStudent}
				m.On("Register", mock.Anything, mock.Anything, mock.Anything).Return(created, false, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"warning":"confirmation email could not be sent"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{definitely not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "отсутствует пароль",
			body:           `{"username":"testuser","name":"Test User","email":"test@example.com","role":"student"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Password is a required field`,
		},
		{
			name:           "недопустимая роль",
			body:           `{"username":"testuser","name":"Test User","email":"test@example.com","password":"password123","role":"supervisor"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Role must be one of [student admin]`,
		},
		{
			name: "занятый username",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, false, repository.ErrUsernameTaken)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"kind":"conflict"`,
		},
		{
			name: "занятая почта в той же роли",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, false, repository.ErrEmailTaken)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"email already exists for this role"`,
		},
		{
			name: "ошибка базы данных",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, false, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"kind":"dependency_failure"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
