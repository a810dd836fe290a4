// Package identity talks to the external identity provider that owns
// credential storage and password verification. The provider exposes a
// GoTrue-compatible HTTP API authenticated with a service key.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dimitrije/gatekeep-api/internal/config"
	"github.com/google/uuid"
)

// User is the provider's view of an account. Only the fields the service
// consumes are decoded.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Error carries the provider's HTTP status and message so handlers can
// surface them verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("identity provider returned status %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewClient(cfg config.IdentityConfig) *Client {
	return &Client{
		baseURL:    cfg.URL,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateUser registers an account with the provider. Email confirmation is
// forced so accounts are immediately signable-in, bypassing verification mail.
func (c *Client) CreateUser(ctx context.Context, email, password string) (*User, error) {
	payload := map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": true,
	}

	var user User
	if err := c.do(ctx, http.MethodPost, "/admin/users", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignInWithPassword verifies credentials via the provider's password grant.
// The grant response embeds the provider user object next to the token; only
// the user is returned since sessions are signed locally.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*User, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
	}

	var grant struct {
		AccessToken string `json:"access_token"`
		User        User   `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", payload, &grant); err != nil {
		return nil, err
	}
	return &grant.User, nil
}

// UpdateUserEmail changes the login email of an existing provider account.
func (c *Client) UpdateUserEmail(ctx context.Context, id uuid.UUID, email string) (*User, error) {
	payload := map[string]any{
		"email":         email,
		"email_confirm": true,
	}

	var user User
	if err := c.do(ctx, http.MethodPut, "/admin/users/"+id.String(), payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode identity provider response: %w", err)
	}
	return nil
}

// decodeError maps the provider's error body onto an *Error. The provider
// uses different keys depending on the endpoint.
func decodeError(resp *http.Response) error {
	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	message := body.Msg
	if message == "" {
		message = body.Message
	}
	if message == "" {
		message = body.ErrorDescription
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return &Error{Status: resp.StatusCode, Message: message}
}

// ProviderMessage extracts the provider-reported message from an error, or
// falls back to the plain error text for transport-level failures.
func ProviderMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
