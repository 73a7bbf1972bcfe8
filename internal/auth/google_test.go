package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	pkgerrors "github.com/cinefilmes/catalog/pkg/errors"
	"github.com/cinefilmes/catalog/pkg/logger"
)

func TestProfileFromClaims(t *testing.T) {
	profile := ProfileFromClaims(map[string]interface{}{
		"name":    "Maria Silva",
		"email":   "maria@example.com",
		"picture": "https://example.com/maria.png",
	})

	assert.Equal(t, "Maria Silva", profile.Name)
	assert.Equal(t, "maria@example.com", profile.Email)
	assert.Equal(t, "https://example.com/maria.png", profile.PhotoURL)
	assert.Equal(t, DefaultProfileType, profile.ProfileType)
}

func TestProfileFromClaimsMissingFields(t *testing.T) {
	profile := ProfileFromClaims(map[string]interface{}{
		"email": "maria@example.com",
		"name":  42, // wrong type, ignored
	})

	assert.Empty(t, profile.Name)
	assert.Equal(t, "maria@example.com", profile.Email)
	assert.Equal(t, DefaultProfileType, profile.ProfileType)
}

func TestLoginWithoutClientID(t *testing.T) {
	provider := NewGoogleProvider("", "", logger.NewNoop())

	_, err := provider.Login(context.Background())

	assert.True(t, pkgerrors.IsBadRequest(err))
}

func TestLoginFullFlow(t *testing.T) {
	// Fake token endpoint: any code exchanges into a token with an id_token.
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","id_token":"fake-id-token"}`))
	}))
	defer tokenServer.Close()

	provider := NewGoogleProvider("client-id", "client-secret", logger.NewNoop())
	provider.endpoint = oauth2.Endpoint{
		AuthURL:  tokenServer.URL + "/auth",
		TokenURL: tokenServer.URL + "/token",
	}
	provider.verifyToken = func(ctx context.Context, token, audience string) (map[string]interface{}, error) {
		require.Equal(t, "fake-id-token", token)
		require.Equal(t, "client-id", audience)
		return map[string]interface{}{
			"name":    "Maria Silva",
			"email":   "maria@example.com",
			"picture": "https://example.com/maria.png",
		}, nil
	}
	// Simulate the user approving in the browser: follow the redirect back
	// to the loopback callback with the expected state.
	provider.openBrowser = func(authURL string) error {
		go func() {
			parsed, err := url.Parse(authURL)
			if err != nil {
				return
			}
			values := parsed.Query()
			callback := values.Get("redirect_uri") + "?state=" + url.QueryEscape(values.Get("state")) + "&code=auth-code"
			resp, err := http.Get(callback)
			if err == nil {
				resp.Body.Close()
			}
		}()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	profile, err := provider.Login(ctx)

	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", profile.Name)
	assert.Equal(t, "maria@example.com", profile.Email)
	assert.Equal(t, DefaultProfileType, profile.ProfileType)
}

func TestLoginCancelled(t *testing.T) {
	provider := NewGoogleProvider("client-id", "client-secret", logger.NewNoop())
	provider.openBrowser = func(string) error { return nil }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.Login(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoginDenied(t *testing.T) {
	provider := NewGoogleProvider("client-id", "client-secret", logger.NewNoop())
	// The user clicked deny: the provider redirects back with an error.
	provider.openBrowser = func(authURL string) error {
		go func() {
			parsed, err := url.Parse(authURL)
			if err != nil {
				return
			}
			values := parsed.Query()
			callback := values.Get("redirect_uri") + "?state=" + url.QueryEscape(values.Get("state")) + "&error=access_denied"
			resp, err := http.Get(callback)
			if err == nil {
				resp.Body.Close()
			}
		}()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := provider.Login(ctx)

	assert.True(t, pkgerrors.IsUnauthorized(err))
}
