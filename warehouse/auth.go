package warehouse

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/simbuah/go-api-http-client/httpclient"
	"github.com/simbuah/go-api-http-client/tokenstore"
	"go.uber.org/zap"
)

// ErrNoAccessToken is returned when a login response carries no access token.
var ErrNoAccessToken = errors.New("login response has no access_token")

// Login exchanges credentials for a session and stores both tokens. It returns the
// user's role. The call carries no credential, so a rejected login is an
// *response.HTTPError and never triggers a token refresh.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}

	resp, err := s.client.Post(ctx, LoginEndpoint, body, &httpclient.RequestOptions{Anonymous: true})
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	var login LoginResponse
	if err := resp.Decode(&login); err != nil {
		return "", fmt.Errorf("decoding login response: %w", err)
	}
	if login.AccessToken == "" {
		return "", ErrNoAccessToken
	}

	if err := tokenstore.SaveSession(ctx, s.client.TokenStore(), login.AccessToken, login.RefreshToken); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}

	s.log.Info("Signed in", zap.String("username", username), zap.String("role", login.UserRole))
	return login.UserRole, nil
}

// Logout tells the server to revoke the session and then removes the stored tokens.
// The local tokens are removed even when the server call fails.
func (s *Service) Logout(ctx context.Context) error {
	if _, err := s.client.Post(ctx, LogoutEndpoint, nil, nil); err != nil {
		s.log.Warn("Server logout failed, clearing local session anyway", zap.Error(err))
	}

	if err := tokenstore.Purge(ctx, s.client.TokenStore()); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Dashboard returns the dashboard sections for the signed-in user's role.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	dashboard := &Dashboard{}
	if _, err := s.client.DoRequest(ctx, http.MethodGet, DashboardEndpoint, nil, dashboard); err != nil {
		return nil, fmt.Errorf("loading dashboard: %w", err)
	}
	return dashboard, nil
}
