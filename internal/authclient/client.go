// Package authclient resolves bearer tokens against the external
// authentication service.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/go-retryablehttp"

	domainerrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
)

// Client asks the authentication service whether a token is valid and who
// it belongs to. Tokens that are not even well-formed JWTs are rejected
// locally without a network round trip.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	logger  *slog.Logger
	parser  *jwt.Parser
}

func New(baseURL string, logger *slog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = time.Second
	rc.HTTPClient.Timeout = 5 * time.Second
	rc.Logger = nil

	return &Client{
		baseURL: baseURL,
		http:    rc,
		logger:  logger,
		parser:  jwt.NewParser(),
	}
}

type introspection struct {
	Active bool   `json:"active"`
	UserID *int64 `json:"user_id"`
}

func (c *Client) Resolve(ctx context.Context, token string) (int64, error) {
	claims, err := c.parseClaims(token)
	if err != nil {
		return 0, c.invalidToken()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/introspect", nil)
	if err != nil {
		return 0, fmt.Errorf("building introspection request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("calling authentication service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return 0, c.invalidToken()
	default:
		return 0, fmt.Errorf("authentication service returned status %d", resp.StatusCode)
	}

	var result introspection
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decoding introspection response: %w", err)
	}
	if !result.Active {
		return 0, c.invalidToken()
	}
	if result.UserID != nil {
		return *result.UserID, nil
	}

	// Older auth service versions omit user_id; fall back to the token's
	// subject, which the service has already verified.
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, c.invalidToken()
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, c.invalidToken()
	}
	return userID, nil
}

func (c *Client) parseClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := c.parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (c *Client) invalidToken() error {
	return domainerrors.NewKind(domainerrors.CodeForbidden, domainerrors.KindNotAuthorized,
		"You must provide a valid token.")
}
