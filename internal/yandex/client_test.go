package yandex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/mashagrib/knowledge-base/internal/config"
)

func newTestClient(tokenURL, infoURL string) *Client {
	c := New(config.Yandex{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURI:  "http://localhost/callback",
	})
	c.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:  tokenURL + "/authorize",
		TokenURL: tokenURL + "/token",
	}
	c.infoURL = infoURL
	return c
}

func TestClient_AuthURL(t *testing.T) {
	c := newTestClient("http://provider", "http://provider/info")

	url := c.AuthURL()
	assert.Contains(t, url, "client_id=test-client")
	assert.Contains(t, url, "login%3Aemail")
}

func TestClient_ExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		if r.FormValue("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"provider-token","token_type":"bearer"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL+"/info")

	t.Run("успешный обмен кода", func(t *testing.T) {
		tok, err := c.ExchangeCode(context.Background(), "good-code")
		require.NoError(t, err)
		assert.Equal(t, "provider-token", tok)
	})

	t.Run("провайдер отклоняет код", func(t *testing.T) {
		_, err := c.ExchangeCode(context.Background(), "bad-code")
		assert.ErrorIs(t, err, ErrExchangeFailed)
	})
}

func TestClient_FetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "OAuth provider-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"default_email":"e@example.com","login":"elogin","first_name":"Ivan","last_name":"Petrov"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)

	t.Run("успешный запрос профиля", func(t *testing.T) {
		profile, err := c.FetchProfile(context.Background(), "provider-token")
		require.NoError(t, err)
		assert.Equal(t, "e@example.com", profile.DefaultEmail)
		assert.Equal(t, "Ivan", profile.FirstName)
	})

	t.Run("невалидный токен провайдера", func(t *testing.T) {
		_, err := c.FetchProfile(context.Background(), "wrong-token")
		assert.ErrorIs(t, err, ErrProfileFetchFailed)
	})
}
