package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/client"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
	"github.com/dmitrijs2005/dessertcatalog/internal/common"
	"github.com/spf13/cobra"
)

// Login prompts for whatever is missing and opens a session.
func (a *App) Login(ctx context.Context, username string) error {
	if username == "" {
		u, err := GetSimpleText(a.reader, "Username:", a.out)
		if err != nil {
			return err
		}
		username = u
	}

	pw, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, username, pw)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errBadCredentials
		}
		return err
	}
	a.success("Logged in as %s", user.Username)
	return nil
}

func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username:", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email:", a.out)
	if err != nil {
		return err
	}
	pw, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	user, err := a.auth.Register(ctx, username, email, pw)
	if err != nil {
		return err
	}
	a.success("Registered and logged in as %s", user.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.success("Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.printUser(user)

	info, err := a.auth.TokenInfo(ctx)
	if err != nil {
		a.log.Warn(ctx, "cannot decode access token", "error", err)
		return nil
	}
	if !info.ExpiresAt.IsZero() {
		a.printf("Session expires: %s\n", info.ExpiresAt.Local().Format(time.DateTime))
		if info.Expired(time.Now()) {
			a.warn("The access token has expired; login again")
		}
	}
	return nil
}

func (a *App) printUser(u *models.User) {
	var roles []string
	if u.IsAdmin {
		roles = append(roles, "admin")
	}
	if u.IsModerator {
		roles = append(roles, "moderator")
	}
	if len(roles) == 0 {
		roles = append(roles, "user")
	}

	created := "-"
	if u.CreatedAt != nil {
		created = u.CreatedAt.Local().Format(time.DateTime)
	}

	a.fields([][2]string{
		{"ID", fmt.Sprint(u.ID)},
		{"Username", u.Username},
		{"Email", u.Email},
		{"Roles", strings.Join(roles, ", ")},
		{"Active", yesNo(u.IsActive)},
		{"Company", str(u.CompanyName)},
		{"Manager contact", str(u.ManagerContact)},
		{"Logo", str(u.LogoURL)},
		{"Catalog description", str(u.CatalogDescription)},
		{"Created", created},
	})
}

func newLoginCmd(rt *runtime) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.app.Login(cmd.Context(), username)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "n", "", "account name (prompted when empty)")
	return cmd
}

func newRegisterCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.app.Register(cmd.Context())
		},
	}
}

func newLogoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.app.Logout(cmd.Context())
		},
	}
}

func newWhoamiCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.app.Whoami(cmd.Context())
		},
	}
}

func newProfileCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Change your email, password or company details",
	}

	email := &cobra.Command{
		Use:   "email <address>",
		Short: "Change the account email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := rt.app
			if _, err := a.auth.UpdateEmail(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.success("Email updated")
			return nil
		},
	}

	password := &cobra.Command{
		Use:   "password",
		Short: "Change the account password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := rt.app
			current, err := GetPassword(a.reader, "Current password", a.out)
			if err != nil {
				return err
			}
			next, err := GetPassword(a.reader, "New password", a.out)
			if err != nil {
				common.WipeByteArray(current)
				return err
			}
			if _, err := a.auth.UpdatePassword(cmd.Context(), current, next); err != nil {
				return err
			}
			a.success("Password updated")
			return nil
		},
	}

	var name, contact, logo, description string
	company := &cobra.Command{
		Use:   "company",
		Short: "Change the title-page defaults used by exports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := rt.app
			var p models.CompanyProfile
			fs := cmd.Flags()
			if fs.Changed("name") {
				p.CompanyName = &name
			}
			if fs.Changed("contact") {
				p.ManagerContact = &contact
			}
			if fs.Changed("logo") {
				p.LogoURL = &logo
			}
			if fs.Changed("description") {
				p.CatalogDescription = &description
			}
			if p == (models.CompanyProfile{}) {
				return errors.New("nothing to change; pass at least one of --name, --contact, --logo, --description")
			}

			user, err := a.auth.UpdateCompany(cmd.Context(), p)
			if err != nil {
				return err
			}
			a.success("Company profile updated")
			a.printUser(user)
			return nil
		},
	}
	company.Flags().StringVar(&name, "name", "", "company name")
	company.Flags().StringVar(&contact, "contact", "", "manager contact")
	company.Flags().StringVar(&logo, "logo", "", "logo URL")
	company.Flags().StringVar(&description, "description", "", "catalog description")

	cmd.AddCommand(email, password, company)
	return cmd
}
