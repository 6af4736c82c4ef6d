// Package services contains the application services of the catalog
// client. They sit between the CLI and the remote facade: validating input
// locally, keeping the session in step with the server, and caching what is
// safe to cache.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/client"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/session"
	"github.com/dmitrijs2005/dessertcatalog/internal/common"
	"github.com/dmitrijs2005/dessertcatalog/internal/logging"
)

// AuthService defines authentication and profile operations for the CLI.
//
// Contract:
//   - Login: authenticate and persist the session.
//   - Register: create the account, then log in with the same credentials.
//   - Logout: forget the local session.
//   - CurrentUser: ask the server who we are; when the server is unreachable
//     fall back to the cached user.
//   - Update*: change the profile and refresh the cached user.
//
// Password arguments are wiped once sent.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (*models.User, error)
	Register(ctx context.Context, username, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	StoredUser(ctx context.Context) (*models.User, error)
	IsAuthenticated(ctx context.Context) (bool, error)
	TokenInfo(ctx context.Context) (session.TokenInfo, error)
	UpdateEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, current, next []byte) (*models.User, error)
	UpdateCompany(ctx context.Context, profile models.CompanyProfile) (*models.User, error)
}

var ErrNotLoggedIn = errors.New("not logged in")

type authService struct {
	client client.Client
	store  session.Store
	log    logging.Logger
}

func NewAuthService(c client.Client, store session.Store, log logging.Logger) AuthService {
	return &authService{client: c, store: store, log: log}
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)

	creds := models.Credentials{Username: username, Password: string(password)}
	if err := models.Validate(creds); err != nil {
		return nil, err
	}

	resp, err := a.client.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &resp.User, nil
}

func (a *authService) Register(ctx context.Context, username, email string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)

	reg := models.Registration{Username: username, Email: email, Password: string(password)}
	if err := models.Validate(reg); err != nil {
		return nil, err
	}

	if _, err := a.client.Register(ctx, reg); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	a.log.Info(ctx, "registered", "username", username)

	resp, err := a.client.Login(ctx, models.Credentials{Username: username, Password: reg.Password})
	if err != nil {
		return nil, fmt.Errorf("login after register: %w", err)
	}
	return &resp.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.client.Logout(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	ok, err := a.IsAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotLoggedIn
	}

	u, err := a.client.Me(ctx)
	switch {
	case err == nil:
		if err := a.store.SetUser(ctx, *u); err != nil {
			a.log.Warn(ctx, "failed to cache user", "error", err)
		}
		return u, nil
	case errors.Is(err, client.ErrUnavailable):
		stored, serr := a.store.User(ctx)
		if serr != nil || stored == nil {
			return nil, err
		}
		a.log.Warn(ctx, "server unreachable, using cached user", "error", err)
		return stored, nil
	case errors.Is(err, client.ErrUnauthorized):
		return nil, err
	default:
		// the server answered but rejected the token in some other way
		if lerr := a.client.Logout(ctx); lerr != nil {
			a.log.Warn(ctx, "failed to clear session", "error", lerr)
		}
		return nil, err
	}
}

func (a *authService) StoredUser(ctx context.Context) (*models.User, error) {
	return a.store.User(ctx)
}

func (a *authService) IsAuthenticated(ctx context.Context) (bool, error) {
	tok, err := a.store.Token(ctx)
	if err != nil {
		return false, err
	}
	return tok != "", nil
}

func (a *authService) TokenInfo(ctx context.Context) (session.TokenInfo, error) {
	tok, err := a.store.Token(ctx)
	if err != nil {
		return session.TokenInfo{}, err
	}
	if tok == "" {
		return session.TokenInfo{}, ErrNotLoggedIn
	}
	return session.ParseTokenInfo(tok)
}

func (a *authService) UpdateEmail(ctx context.Context, email string) (*models.User, error) {
	upd := models.UserUpdate{Email: &email}
	if err := models.Validate(upd); err != nil {
		return nil, err
	}

	resp, err := a.client.UpdateEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("update email: %w", err)
	}
	return &resp.User, nil
}

func (a *authService) UpdatePassword(ctx context.Context, current, next []byte) (*models.User, error) {
	defer common.WipeByteArray(current)
	defer common.WipeByteArray(next)

	change := models.PasswordChange{CurrentPassword: string(current), NewPassword: string(next)}
	if err := models.Validate(change); err != nil {
		return nil, err
	}

	resp, err := a.client.UpdatePassword(ctx, change)
	if err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}
	return &resp.User, nil
}

func (a *authService) UpdateCompany(ctx context.Context, profile models.CompanyProfile) (*models.User, error) {
	resp, err := a.client.UpdateCompanyProfile(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("update company profile: %w", err)
	}
	return &resp.User, nil
}
