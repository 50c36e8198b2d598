package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sonatafm/podium/internal/api"
	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/shared"
	"golang.org/x/oauth2"
)

// Manager owns the operator's authenticated session: it holds the OAuth2
// configuration, persists tokens through a [Store], refreshes them when they
// near expiry, and resolves the logged-in account.
type Manager struct {
	store  *Store
	api    *api.Client
	config *oauth2.Config
	logger *log.Logger

	// clock is swapped in tests to control expiry checks.
	clock func() time.Time
}

// NewManager builds a session manager from the auth section of the config
// file. The api client is used to resolve the current account.
func NewManager(store *Store, client *api.Client, auth shared.AuthConfig, logger *log.Logger) *Manager {
	config := &oauth2.Config{
		ClientID:     auth.ClientID,
		ClientSecret: auth.ClientSecret,
		RedirectURL:  auth.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:  auth.AuthURL,
			TokenURL: auth.TokenURL,
		},
	}

	return &Manager{store: store, api: client, config: config, logger: logger, clock: time.Now}
}

// OAuthConfig exposes the OAuth2 configuration for the callback server.
func (m *Manager) OAuthConfig() *oauth2.Config {
	return m.config
}

// AuthURL returns the authorization URL the operator's browser should visit.
// The state token guards the callback against forgery.
func (m *Manager) AuthURL(state string) string {
	return m.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// AccessToken returns the stored bearer token, or "" when logged out.
// Satisfies [api.TokenProvider].
func (m *Manager) AccessToken() string {
	token, err := m.store.Get(keyAccessToken)
	if err != nil {
		return ""
	}

	return token
}

// Authenticated reports whether a bearer token is on file.
func (m *Manager) Authenticated() bool {
	return m.AccessToken() != ""
}

// SaveToken persists the tokens from a completed authorization flow.
func (m *Manager) SaveToken(token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%w: empty token", shared.ErrAuthFailed)
	}

	if err := m.store.Set(keyAccessToken, token.AccessToken); err != nil {
		return err
	}

	if token.RefreshToken != "" {
		if err := m.store.Set(keyRefreshToken, token.RefreshToken); err != nil {
			return err
		}
	}

	m.logger.Debug("session tokens stored")
	return nil
}

// Exchange trades an authorization code for tokens and persists them.
func (m *Manager) Exchange(ctx context.Context, code string) error {
	token, err := m.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
	}

	return m.SaveToken(token)
}

// TokenExpiry reads the expiry claim from the stored access token. The token
// signature is not verified; only the platform can do that.
func (m *Manager) TokenExpiry() (time.Time, error) {
	raw := m.AccessToken()
	if raw == "" {
		return time.Time{}, shared.ErrNotAuthenticated
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse access token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("access token has no expiry claim")
	}

	return exp.Time, nil
}

// Refresh obtains a fresh access token using the stored refresh token.
func (m *Manager) Refresh(ctx context.Context) error {
	refresh, err := m.store.Get(keyRefreshToken)
	if err != nil || refresh == "" {
		return shared.ErrNoRefreshToken
	}

	source := m.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refresh})
	token, err := source.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrRefreshFailed, err)
	}

	m.logger.Info("access token refreshed")
	return m.SaveToken(token)
}

// EnsureFresh refreshes the access token when it expires within the next
// thirty seconds. Tokens without a readable expiry are left as-is.
func (m *Manager) EnsureFresh(ctx context.Context) error {
	if !m.Authenticated() {
		return shared.ErrNotAuthenticated
	}

	expiry, err := m.TokenExpiry()
	if err != nil {
		return nil
	}

	if m.clock().Add(30 * time.Second).Before(expiry) {
		return nil
	}

	if err := m.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrTokenExpired, err)
	}

	return nil
}

// CurrentUser resolves the logged-in account from the platform. A rejected
// token clears the stored credentials so the operator is prompted to log in
// again.
func (m *Manager) CurrentUser(ctx context.Context) (*models.User, error) {
	if !m.Authenticated() {
		return nil, shared.ErrNotAuthenticated
	}

	user, err := api.GetOne[models.User](ctx, m.api, "/account/me/")
	if err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			m.logger.Warn("stored token rejected, clearing session")

			if clearErr := m.store.Clear(); clearErr != nil {
				m.logger.Error("failed to clear session", "error", clearErr)
			}

			return nil, fmt.Errorf("%w: token rejected", shared.ErrNotAuthenticated)
		}

		return nil, err
	}

	if err := m.store.Set(keyCurrentUserID, user.UserID); err != nil {
		m.logger.Warn("failed to record current user", "error", err)
	}

	return user, nil
}

// CurrentUserID returns the cached account id from the last CurrentUser call.
func (m *Manager) CurrentUserID() string {
	id, err := m.store.Get(keyCurrentUserID)
	if err != nil {
		return ""
	}

	return id
}

// Logout discards all stored credentials.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return err
	}

	m.logger.Info("logged out")
	return nil
}
