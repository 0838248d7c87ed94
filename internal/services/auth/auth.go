// Package auth содержит бизнес-логику входа через Яндекс OAuth,
// выдачи и обновления токенов сессии.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	jwtlib "github.com/mashagrib/knowledge-base/internal/lib/jwt"
	"github.com/mashagrib/knowledge-base/internal/lib/sl"
	"github.com/mashagrib/knowledge-base/internal/lib/token"
	"github.com/mashagrib/knowledge-base/internal/models"
	"github.com/mashagrib/knowledge-base/internal/storage"
	"github.com/mashagrib/knowledge-base/internal/yandex"
)

// ErrInvalidRefreshToken refresh-токен отозван, заменён или просрочен.
var ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

// UserRepository описывает контракт хранилища, на который опирается авторизация.
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) (string, error)
	SetRefreshToken(ctx context.Context, userUID, token string, expiresAt time.Time) error
	GetUserByRefreshToken(ctx context.Context, token string) (*models.User, error)
	ClearRefreshToken(ctx context.Context, userUID string) error
}

// OAuthClient описывает контракт OAuth-обмена с провайдером.
type OAuthClient interface {
	AuthURL() string
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, providerToken string) (*yandex.Profile, error)
}

// RegistrationNotifier отправляет событие о регистрации нового сотрудника.
type RegistrationNotifier interface {
	NotifyUserRegistered(user *models.User) error
}

// AuthService отвечает за OAuth-вход, выдачу пары токенов и их обновление.
type AuthService struct {
	users      UserRepository
	oauth      OAuthClient
	jwtMaker   jwtlib.Maker
	notifier   RegistrationNotifier // nil, если брокер не настроен
	refreshTTL time.Duration
	log        *slog.Logger
}

// New создает новый экземпляр AuthService.
func New(users UserRepository, oauth OAuthClient, jwtMaker jwtlib.Maker,
	notifier RegistrationNotifier, refreshTTL time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		oauth:      oauth,
		jwtMaker:   jwtMaker,
		notifier:   notifier,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

// LoginURL возвращает ссылку на страницу авторизации провайдера.
func (s *AuthService) LoginURL() string {
	return s.oauth.AuthURL()
}

// Callback завершает OAuth-вход: обменивает код на токен провайдера,
// получает email из профиля, находит или создает учётную запись и
// выдает пару access + refresh токенов.
//
// Гонка двух первых входов с одним email разрешается уникальным
// ограничением на email: проигравший перечитывает запись победителя.
// Выдача нового refresh-токена затирает прежний — параллельные входы
// работают по принципу "последний победил".
func (s *AuthService) Callback(ctx context.Context, code string) (*models.User, string, string, error) {
	const op = "services.auth.Callback"

	providerToken, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, "", "", fmt.Errorf("%s: %w", op, err)
	}

	profile, err := s.oauth.FetchProfile(ctx, providerToken)
	if err != nil {
		return nil, "", "", fmt.Errorf("%s: %w", op, err)
	}
	if profile.DefaultEmail == "" {
		return nil, "", "", fmt.Errorf("%s: %w: profile has no email", op, yandex.ErrProfileFetchFailed)
	}

	user, created, err := s.findOrCreateUser(ctx, profile)
	if err != nil {
		return nil, "", "", fmt.Errorf("%s: %w", op, err)
	}

	access, err := s.jwtMaker.GenerateToken(user.UID, user.Role)
	if err != nil {
		return nil, "", "", fmt.Errorf("%s: %w", op, err)
	}
	refresh, err := token.NewOpaque()
	if err != nil {
		return nil, "", "", fmt.Errorf("%s: %w", op, err)
	}
	if err = s.users.SetRefreshToken(ctx, user.UID, refresh, time.Now().Add(s.refreshTTL)); err != nil {
		return nil, "", "", fmt.Errorf("%s: %w", op, err)
	}

	if created && s.notifier != nil {
		if err := s.notifier.NotifyUserRegistered(user); err != nil {
			s.log.Error("failed to publish registration event", sl.Err(err))
		}
	}

	return user, access, refresh, nil
}

func (s *AuthService) findOrCreateUser(ctx context.Context, profile *yandex.Profile) (*models.User, bool, error) {
	user, err := s.users.GetUserByEmail(ctx, profile.DefaultEmail)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, err
	}

	newUser := models.User{
		Name:    profile.FirstName,
		Surname: profile.LastName,
		Email:   profile.DefaultEmail,
		Role:    models.RoleUser,
		Status:  models.StatusInactive,
	}
	uid, err := s.users.CreateUser(ctx, newUser)
	if errors.Is(err, storage.ErrEmailTaken) {
		// Параллельный первый вход успел создать запись, читаем её.
		user, err = s.users.GetUserByEmail(ctx, profile.DefaultEmail)
		if err != nil {
			return nil, false, err
		}
		return user, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	user, err = s.users.GetUser(ctx, uid)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// Refresh обменивает действующий refresh-токен на новый access-токен.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	const op = "services.auth.Refresh"

	user, err := s.users.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrInvalidRefreshToken)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	access, err := s.jwtMaker.GenerateToken(user.UID, user.Role)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return access, nil
}

// Logout отзывает текущий refresh-токен пользователя.
func (s *AuthService) Logout(ctx context.Context, userUID string) error {
	const op = "services.auth.Logout"
	if err := s.users.ClearRefreshToken(ctx, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
