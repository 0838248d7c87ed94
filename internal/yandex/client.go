// Package yandex оборачивает OAuth-обмен с Яндексом: построение ссылки
// авторизации, обмен кода на токен провайдера и запрос профиля.
//
// Сбой провайдера терминален для запроса — повторных попыток нет.
package yandex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	yandexoauth "golang.org/x/oauth2/yandex"

	"github.com/mashagrib/knowledge-base/internal/config"
)

const userInfoURL = "https://login.yandex.ru/info?format=json"

// Ошибки взаимодействия с провайдером.
var (
	// ErrExchangeFailed провайдер не обменял код на токен
	ErrExchangeFailed = errors.New("code exchange failed")
	// ErrProfileFetchFailed провайдер не вернул профиль пользователя
	ErrProfileFetchFailed = errors.New("profile fetch failed")
)

// Profile данные пользователя, которые возвращает login.yandex.ru.
type Profile struct {
	DefaultEmail string `json:"default_email"`
	Login        string `json:"login"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
}

// Client клиент OAuth-обмена с Яндексом.
type Client struct {
	oauth      *oauth2.Config
	httpClient *http.Client
	infoURL    string
}

// New создаёт клиент по реквизитам OAuth-приложения из конфига.
func New(cfg config.Yandex) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint:     yandexoauth.Endpoint,
			Scopes:       []string{"login:email"},
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
		infoURL:    userInfoURL,
	}
}

// AuthURL возвращает ссылку на страницу авторизации провайдера.
// Ссылка детерминированно строится из статической конфигурации.
func (c *Client) AuthURL() string {
	return c.oauth.AuthCodeURL("")
}

// ExchangeCode обменивает код авторизации на access-токен провайдера.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	const op = "yandex.ExchangeCode"
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, ErrExchangeFailed, err)
	}
	return tok.AccessToken, nil
}

// FetchProfile запрашивает профиль пользователя по токену провайдера.
func (c *Client) FetchProfile(ctx context.Context, providerToken string) (*Profile, error) {
	const op = "yandex.FetchProfile"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.infoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "OAuth "+providerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrProfileFetchFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: status %d", op, ErrProfileFetchFailed, resp.StatusCode)
	}

	var profile Profile
	if err = json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrProfileFetchFailed, err)
	}
	return &profile, nil
}
