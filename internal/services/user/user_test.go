package user_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mashagrib/knowledge-base/internal/models"
	userservice "github.com/mashagrib/knowledge-base/internal/services/user"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) UpdateUser(ctx context.Context, userUID string, upd models.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, userUID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) DeleteUser(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func (m *RepoMock) ListUsers(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUserService_Create(t *testing.T) {
	repo := new(RepoMock)

	req := models.DummyUser{
		Name: "Ivan", Surname: "Petrov",
		Email: "ivan@example.com", Role: "user",
	}
	created := &models.User{UID: "uid-1", Email: "ivan@example.com", Status: "inactive"}

	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		// Статус по умолчанию подставляется при конвертации
		return u.Email == "ivan@example.com" && u.Status == "inactive"
	})).Return("uid-1", nil)
	repo.On("GetUser", mock.Anything, "uid-1").Return(created, nil)

	svc := userservice.New(repo, newLogger())

	got, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "uid-1", got.UID)
	repo.AssertExpectations(t)
}

func TestUserService_Create_RepoError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateUser", mock.Anything, mock.Anything).Return("", errors.New("db error"))

	svc := userservice.New(repo, newLogger())

	_, err := svc.Create(context.Background(), models.DummyUser{
		Name: "Ivan", Surname: "Petrov", Email: "ivan@example.com", Role: "user",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestUserService_List_Defaults(t *testing.T) {
	repo := new(RepoMock)

	repo.On("ListUsers", mock.Anything, mock.MatchedBy(func(f models.UserFilter) bool {
		return f.Limit == 100 && f.Offset == 0
	})).Return([]*models.User{}, nil)

	svc := userservice.New(repo, newLogger())

	_, err := svc.List(context.Background(), models.UserFilter{Limit: 0, Offset: -5})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
