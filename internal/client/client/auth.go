package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
)

// Login exchanges credentials for a token and saves token and user in the
// session store.
func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login-json", nil, creds, &out); err != nil {
		return nil, err
	}
	if err := c.store.Save(ctx, out.AccessToken, out.User); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	c.log.Info(ctx, "logged in", "username", out.User.Username)
	return &out, nil
}

// Register creates an account. It does not log in.
func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout is local only: the service keeps no server-side session.
func (c *HTTPClient) Logout(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateEmail(ctx context.Context, email string) (*models.ProfileResponse, error) {
	body := struct {
		Email string `json:"email"`
	}{email}
	return c.updateProfile(ctx, "/auth/profile/email", body)
}

func (c *HTTPClient) UpdatePassword(ctx context.Context, change models.PasswordChange) (*models.ProfileResponse, error) {
	return c.updateProfile(ctx, "/auth/profile/password", change)
}

func (c *HTTPClient) UpdateCompanyProfile(ctx context.Context, profile models.CompanyProfile) (*models.ProfileResponse, error) {
	return c.updateProfile(ctx, "/auth/profile/company", profile)
}

// updateProfile stores the user returned by a profile endpoint so the
// cached copy never lags behind the server.
func (c *HTTPClient) updateProfile(ctx context.Context, path string, body any) (*models.ProfileResponse, error) {
	var out models.ProfileResponse
	if err := c.doJSON(ctx, http.MethodPut, path, nil, body, &out); err != nil {
		return nil, err
	}
	if err := c.store.SetUser(ctx, out.User); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &out, nil
}
