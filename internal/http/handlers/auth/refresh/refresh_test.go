package refresh

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authservice "github.com/mashagrib/knowledge-base/internal/services/auth"
)

// MockService реализует интерфейс refresh.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func TestRefreshHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		cookie         *http.Cookie
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
		expectCookie   bool
	}{
		{
			name:   "успешное обновление",
			cookie: &http.Cookie{Name: "refresh_token", Value: "valid-refresh"},
			setupMock: func(m *MockService) {
				m.On("Refresh", mock.Anything, "valid-refresh").Return("new-access", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
			expectCookie:   true,
		},
		{
			name:           "нет cookie с refresh-токеном",
			cookie:         nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"detail":"Invalid or expired refresh token"}`,
		},
		{
			name:   "токен отозван или просрочен",
			cookie: &http.Cookie{Name: "refresh_token", Value: "stale-refresh"},
			setupMock: func(m *MockService) {
				m.On("Refresh", mock.Anything, "stale-refresh").
					Return("", authservice.ErrInvalidRefreshToken)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"detail":"Invalid or expired refresh token"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, 15*time.Minute)

			req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			if tt.expectCookie {
				cookies := w.Result().Cookies()
				var found *http.Cookie
				for _, c := range cookies {
					if c.Name == "access_token" {
						found = c
					}
				}
				assert.NotNil(t, found, "access_token cookie must be set")
				assert.Equal(t, "new-access", found.Value)
				assert.True(t, found.HttpOnly)
			}

			mockService.AssertExpectations(t)
		})
	}
}
