package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	pkgerrors "github.com/cinefilmes/catalog/pkg/errors"
	"github.com/cinefilmes/catalog/pkg/interfaces"
)

// scopes needed to read the user's name, email and photo. "openid" is
// required to receive an ID token at all.
var googleScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

// GoogleProvider implements Provider with the installed-app OAuth flow:
// a loopback listener on an ephemeral port, a browser hand-off, a code
// exchange and ID-token verification against our own client id.
type GoogleProvider struct {
	clientID     string
	clientSecret string
	logger       interfaces.Logger

	// Overridable for tests.
	endpoint    oauth2.Endpoint
	openBrowser func(url string) error
	verifyToken func(ctx context.Context, token, audience string) (map[string]interface{}, error)
}

// NewGoogleProvider creates the Google login adapter.
func NewGoogleProvider(clientID, clientSecret string, logger interfaces.Logger) *GoogleProvider {
	return &GoogleProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		logger:       logger,
		endpoint:     google.Endpoint,
		openBrowser:  openBrowser,
		verifyToken:  verifyIDToken,
	}
}

// Login runs the browser flow and returns the verified profile. It blocks
// until the user finishes in the browser or ctx is cancelled; cancellation
// is recoverable, the caller may retry.
func (p *GoogleProvider) Login(ctx context.Context) (*Profile, error) {
	if p.clientID == "" {
		return nil, pkgerrors.BadRequest("google client id is not configured")
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to open loopback listener: %w", err)
	}
	defer listener.Close()

	config := &oauth2.Config{
		ClientID:     p.clientID,
		ClientSecret: p.clientSecret,
		Endpoint:     p.endpoint,
		RedirectURL:  fmt.Sprintf("http://%s/callback", listener.Addr().String()),
		Scopes:       googleScopes,
	}

	state := uuid.New().String()
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			errCh <- pkgerrors.Unauthorized("oauth state mismatch")
			return
		}
		if errMsg := r.URL.Query().Get("error"); errMsg != "" {
			http.Error(w, "login cancelled", http.StatusBadRequest)
			errCh <- pkgerrors.Unauthorized("login denied: " + errMsg)
			return
		}
		fmt.Fprintln(w, "Login concluído. Pode fechar esta janela e voltar ao Cine Filmes.")
		codeCh <- r.URL.Query().Get("code")
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go server.Serve(listener)
	defer server.Close()

	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOnline)
	p.logger.Info("Waiting for browser login", interfaces.String("url", authURL))
	if err := p.openBrowser(authURL); err != nil {
		p.logger.Warn("Failed to open browser, visit the URL manually",
			interfaces.Error(err))
	}

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrorTypeUnauthorized, "code exchange failed", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, pkgerrors.Unauthorized("token response carried no id token")
	}

	claims, err := p.verifyToken(ctx, rawIDToken, p.clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrorTypeUnauthorized, "id token verification failed", err)
	}

	profile := ProfileFromClaims(claims)
	p.logger.Info("Login succeeded", interfaces.String("email", profile.Email))
	return profile, nil
}

// verifyIDToken validates the token signature and audience against
// Google's published certificates.
func verifyIDToken(ctx context.Context, token, audience string) (map[string]interface{}, error) {
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return nil, err
	}
	return payload.Claims, nil
}

// openBrowser hands the URL to the platform's default browser.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
