// Package authgw talks to the external end-user authentication service. The
// panel never verifies end-user credentials itself; it hands the session
// token over and trusts the gateway's answer. Any failure here means
// "unauthenticated", never a request-fatal error.
package authgw

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/datanest-io/datanest/internal/config"
	"go.uber.org/zap"
)

// Identity is the gateway's view of a signed-in end user.
type Identity struct {
	OpenID   string `json:"open_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
}

// Client is the HTTP client for the auth gateway.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a new auth gateway client.
func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	return &Client{
		BaseURL: cfg.Auth.GatewayURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Logger: log,
	}
}

// Verify resolves a session token into an Identity. It returns (nil, nil)
// when the token is unknown or expired and an error only for transport or
// gateway failures.
func (c *Client) Verify(ctx context.Context, token string) (*Identity, error) {
	if c.BaseURL == "" || token == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/api/v1/me", c.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth gateway returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var id Identity
	if err := sonic.Unmarshal(body, &id); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if id.OpenID == "" {
		return nil, nil
	}
	return &id, nil
}
