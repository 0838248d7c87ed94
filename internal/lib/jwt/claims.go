// Package jwt реализует генерацию и парсинг JWT токенов сессии.
//
// Maker определяет интерфейс для создания и проверки access-токенов,
// MakerImpl — конкретная реализация с симметричным ключом (HS256).
package jwt

import (
	"errors"
	"time"
)

// Ошибки разбора access-токена. Обработчики переводят их в HTTP-статусы.
var (
	// ErrExpiredToken срок действия токена истёк
	ErrExpiredToken = errors.New("token is expired")
	// ErrInvalidSignature подпись токена не совпадает с ключом сервера
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrMalformedToken токен повреждён или в нём нет обязательных полей
	ErrMalformedToken = errors.New("malformed token")
)

// Maker описывает интерфейс для генерации и парсинга access-токенов.
type Maker interface {
	// GenerateToken создает подписанный токен с uid пользователя и ролью
	GenerateToken(userUID, role string) (string, error)
	// ParseToken возвращает *CustomClaims с uid пользователя и ролью
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни access-токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
