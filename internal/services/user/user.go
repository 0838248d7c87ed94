// Package user содержит бизнес-логику управления учётными записями сотрудников.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mashagrib/knowledge-base/internal/models"
)

// defaultLimit применяется, когда клиент не задал размер страницы.
const defaultLimit = 100

// Repository описывает контракт хранилища учётных записей.
type Repository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	UpdateUser(ctx context.Context, userUID string, upd models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, userUID string) error
	ListUsers(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
}

// UserService реализует операции CRUD и поиска по учётным записям.
type UserService struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр UserService.
func New(repo Repository, log *slog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Create регистрирует нового пользователя и возвращает созданную запись.
func (s *UserService) Create(ctx context.Context, req models.DummyUser) (*models.User, error) {
	const op = "services.user.Create"
	uid, err := s.repo.CreateUser(ctx, req.ToUser())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.repo.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Get возвращает пользователя по UID.
func (s *UserService) Get(ctx context.Context, userUID string) (*models.User, error) {
	const op = "services.user.Get"
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Update применяет частичное обновление профиля, последняя запись побеждает.
func (s *UserService) Update(ctx context.Context, userUID string, upd models.UserUpdate) (*models.User, error) {
	const op = "services.user.Update"
	user, err := s.repo.UpdateUser(ctx, userUID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Delete удаляет учётную запись.
func (s *UserService) Delete(ctx context.Context, userUID string) error {
	const op = "services.user.Delete"
	if err := s.repo.DeleteUser(ctx, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// List возвращает пользователей по фильтру с пагинацией.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	const op = "services.user.List"
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	users, err := s.repo.ListUsers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}
