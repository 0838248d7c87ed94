package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	jwtlib "github.com/mashagrib/knowledge-base/internal/lib/jwt"
	"github.com/mashagrib/knowledge-base/internal/models"
	authservice "github.com/mashagrib/knowledge-base/internal/services/auth"
	"github.com/mashagrib/knowledge-base/internal/storage"
	"github.com/mashagrib/knowledge-base/internal/yandex"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) SetRefreshToken(ctx context.Context, userUID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, userUID, token, expiresAt)
	return args.Error(0)
}

func (m *UserRepoMock) GetUserByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) ClearRefreshToken(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

// Мок для OAuthClient
type OAuthMock struct {
	mock.Mock
}

func (m *OAuthMock) AuthURL() string {
	return m.Called().String(0)
}

func (m *OAuthMock) ExchangeCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *OAuthMock) FetchProfile(ctx context.Context, providerToken string) (*yandex.Profile, error) {
	args := m.Called(ctx, providerToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*yandex.Profile), args.Error(1)
}

// Мок для Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userUID, role string) (string, error) {
	args := m.Called(userUID, role)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(tokenStr string) (*jwtlib.CustomClaims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwtlib.CustomClaims), args.Error(1)
}

// Мок для RegistrationNotifier
type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) NotifyUserRegistered(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthService_Callback_ExistingUser(t *testing.T) {
	repo := new(UserRepoMock)
	oauth := new(OAuthMock)
	maker := new(JwtMakerMock)
	notifier := new(NotifierMock)

	existing := &models.User{UID: "uid-1", Email: "e@example.com", Role: "user"}

	oauth.On("ExchangeCode", mock.Anything, "code-1").Return("provider-token", nil)
	oauth.On("FetchProfile", mock.Anything, "provider-token").
		Return(&yandex.Profile{DefaultEmail: "e@example.com"}, nil)
	repo.On("GetUserByEmail", mock.Anything, "e@example.com").Return(existing, nil)
	maker.On("GenerateToken", "uid-1", "user").Return("access-token", nil)
	repo.On("SetRefreshToken", mock.Anything, "uid-1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(nil)

	svc := authservice.New(repo, oauth, maker, notifier, time.Hour, newLogger())

	user, access, refresh, err := svc.Callback(context.Background(), "code-1")
	assert.NoError(t, err)
	assert.Equal(t, "uid-1", user.UID)
	assert.Equal(t, "access-token", access)
	assert.NotEmpty(t, refresh)

	// Для существующего пользователя событие регистрации не публикуется
	notifier.AssertNotCalled(t, "NotifyUserRegistered", mock.Anything)
	repo.AssertExpectations(t)
	oauth.AssertExpectations(t)
}

func TestAuthService_Callback_NewUser(t *testing.T) {
	repo := new(UserRepoMock)
	oauth := new(OAuthMock)
	maker := new(JwtMakerMock)
	notifier := new(NotifierMock)

	created := &models.User{UID: "uid-new", Email: "new@example.com", Role: "user", Status: "inactive"}

	oauth.On("ExchangeCode", mock.Anything, "code-2").Return("provider-token", nil)
	oauth.On("FetchProfile", mock.Anything, "provider-token").
		Return(&yandex.Profile{DefaultEmail: "new@example.com", FirstName: "Ivan", LastName: "Petrov"}, nil)
	repo.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, storage.ErrNotFound)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "new@example.com" && u.Role == "user" && u.Status == "inactive"
	})).Return("uid-new", nil)
	repo.On("GetUser", mock.Anything, "uid-new").Return(created, nil)
	maker.On("GenerateToken", "uid-new", "user").Return("access-token", nil)
	repo.On("SetRefreshToken", mock.Anything, "uid-new", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(nil)
	notifier.On("NotifyUserRegistered", created).Return(nil)

	svc := authservice.New(repo, oauth, maker, notifier, time.Hour, newLogger())

	user, _, _, err := svc.Callback(context.Background(), "code-2")
	assert.NoError(t, err)
	assert.Equal(t, "uid-new", user.UID)

	notifier.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestAuthService_Callback_EmailRace(t *testing.T) {
	repo := new(UserRepoMock)
	oauth := new(OAuthMock)
	maker := new(JwtMakerMock)

	winner := &models.User{UID: "uid-winner", Email: "race@example.com", Role: "user"}

	oauth.On("ExchangeCode", mock.Anything, "code-3").Return("provider-token", nil)
	oauth.On("FetchProfile", mock.Anything, "provider-token").
		Return(&yandex.Profile{DefaultEmail: "race@example.com"}, nil)
	// Первая проверка не находит запись, вставка натыкается на уникальный
	// индекс, повторное чтение видит запись победителя гонки.
	repo.On("GetUserByEmail", mock.Anything, "race@example.com").Return(nil, storage.ErrNotFound).Once()
	repo.On("CreateUser", mock.Anything, mock.Anything).Return("", storage.ErrEmailTaken)
	repo.On("GetUserByEmail", mock.Anything, "race@example.com").Return(winner, nil).Once()
	maker.On("GenerateToken", "uid-winner", "user").Return("access-token", nil)
	repo.On("SetRefreshToken", mock.Anything, "uid-winner", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(nil)

	svc := authservice.New(repo, oauth, maker, nil, time.Hour, newLogger())

	user, _, _, err := svc.Callback(context.Background(), "code-3")
	assert.NoError(t, err)
	assert.Equal(t, "uid-winner", user.UID)
	repo.AssertExpectations(t)
}

func TestAuthService_Callback_NoEmail(t *testing.T) {
	repo := new(UserRepoMock)
	oauth := new(OAuthMock)
	maker := new(JwtMakerMock)

	oauth.On("ExchangeCode", mock.Anything, "code-4").Return("provider-token", nil)
	oauth.On("FetchProfile", mock.Anything, "provider-token").
		Return(&yandex.Profile{DefaultEmail: ""}, nil)

	svc := authservice.New(repo, oauth, maker, nil, time.Hour, newLogger())

	_, _, _, err := svc.Callback(context.Background(), "code-4")
	assert.ErrorIs(t, err, yandex.ErrProfileFetchFailed)
}

func TestAuthService_Refresh(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name: "действующий refresh-токен",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByRefreshToken", mock.Anything, "refresh-1").
					Return(&models.User{UID: "uid-1", Role: "editor"}, nil)
				j.On("GenerateToken", "uid-1", "editor").Return("new-access", nil)
			},
		},
		{
			name: "неизвестный или просроченный токен",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByRefreshToken", mock.Anything, "refresh-1").
					Return(nil, storage.ErrNotFound)
			},
			wantErr: authservice.ErrInvalidRefreshToken,
		},
		{
			name: "ошибка хранилища",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByRefreshToken", mock.Anything, "refresh-1").
					Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			maker := new(JwtMakerMock)
			tt.setupMocks(repo, maker)

			svc := authservice.New(repo, new(OAuthMock), maker, nil, time.Hour, newLogger())

			access, err := svc.Refresh(context.Background(), "refresh-1")
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "new-access", access)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("ClearRefreshToken", mock.Anything, "uid-1").Return(nil)

	svc := authservice.New(repo, new(OAuthMock), new(JwtMakerMock), nil, time.Hour, newLogger())

	err := svc.Logout(context.Background(), "uid-1")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
