package escrow

import (
	"context"
	"fmt"
	"net/http"
)

// Login exchanges an email and password for a bearer token and user profile.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthSession, error) {
	payload := map[string]string{"email": email, "password": password}

	var session AuthSession
	err := c.do(ctx, Credentials{}, http.MethodPost, "/api/login", nil, payload, &session)
	if err != nil {
		return nil, fmt.Errorf("Login: %w", err)
	}
	return &session, nil
}

// Register creates a new account and returns the same token/user exchange as
// Login.
func (c *Client) Register(ctx context.Context, payload RegisterPayload) (*AuthSession, error) {
	var session AuthSession
	err := c.do(ctx, Credentials{}, http.MethodPost, "/api/register", nil, payload, &session)
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	return &session, nil
}
