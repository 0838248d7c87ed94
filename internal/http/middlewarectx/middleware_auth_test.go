package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	jwtlib "github.com/mashagrib/knowledge-base/internal/lib/jwt"
)

// MockParser реализует интерфейс TokenParser
type MockParser struct {
	mock.Mock
}

func (m *MockParser) ParseToken(tokenStr string) (*jwtlib.CustomClaims, error) {
	args := m.Called(tokenStr)
	if res := args.Get(0); res != nil {
		return res.(*jwtlib.CustomClaims), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestJWTMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	validClaims := &jwtlib.CustomClaims{Role: "editor"}
	validClaims.Subject = "user-uid-1"

	tests := []struct {
		name           string
		cookie         *http.Cookie
		setupMock      func(*MockParser)
		expectedStatus int
		expectedBody   string
		expectNext     bool
	}{
		{
			name:           "нет cookie с токеном",
			cookie:         nil,
			setupMock:      func(_ *MockParser) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"detail":"Not authenticated"}`,
		},
		{
			name:   "невалидный токен",
			cookie: &http.Cookie{Name: AccessTokenCookie, Value: "bad-token"},
			setupMock: func(m *MockParser) {
				m.On("ParseToken", "bad-token").Return(nil, errors.New("parse error"))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"detail":"Invalid token"}`,
		},
		{
			name:   "валидный токен",
			cookie: &http.Cookie{Name: AccessTokenCookie, Value: "good-token"},
			setupMock: func(m *MockParser) {
				m.On("ParseToken", "good-token").Return(validClaims, nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := new(MockParser)
			tt.setupMock(parser)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, "user-uid-1", r.Context().Value(UserUID))
				assert.Equal(t, "editor", r.Context().Value(Role))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()

			JWTMiddleware(parser, logger)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			parser.AssertExpectations(t)
		})
	}
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		name         string
		role         string
		allowedRoles []string
		want         bool
	}{
		{name: "роль из списка", role: "admin", allowedRoles: []string{"admin", "editor"}, want: true},
		{name: "роль вне списка", role: "guest", allowedRoles: []string{"admin", "editor"}, want: false},
		{name: "пустой список пропускает всех", role: "guest", allowedRoles: nil, want: true},
		{name: "регистр важен", role: "Admin", allowedRoles: []string{"admin"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.allowedRoles))
		})
	}
}

func TestRequireRoles(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		ctxRole        any
		allowedRoles   []string
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "роль допустима",
			ctxRole:        "admin",
			allowedRoles:   []string{"admin"},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "роль недопустима",
			ctxRole:        "user",
			allowedRoles:   []string{"admin", "editor"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "роль отсутствует в контексте",
			ctxRole:        nil,
			allowedRoles:   []string{"admin"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodDelete, "/users/some-uid", nil)
			if tt.ctxRole != nil {
				req = req.WithContext(context.WithValue(req.Context(), Role, tt.ctxRole))
			}
			w := httptest.NewRecorder()

			RequireRoles(logger, tt.allowedRoles...)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
		})
	}
}
