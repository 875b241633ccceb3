package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	apperrors "github.com/a11ysutra/a11ysutra-cli/internal/errors"
	"github.com/a11ysutra/a11ysutra-cli/internal/session"
	"github.com/a11ysutra/a11ysutra-cli/pkg/sutra"
)

var (
	loginEmail    string
	loginPassword string

	signupEmail        string
	signupPassword     string
	signupName         string
	signupOrganization string
	signupPhone        string

	forgotEmail string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := credentials(loginEmail, loginPassword)
		if err != nil {
			return err
		}

		resp, err := apiClient.Login(cmd.Context(), sutra.LoginRequest{
			Email:    email,
			Password: password,
		})
		if err != nil {
			if apperrors.IsAuthError(err) {
				return fmt.Errorf("invalid email or password")
			}
			return err
		}

		if err := sessionStore.SetOnLogin(resp.AccessToken, profileOf(resp.User)); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}

		ui.Success("Signed in as %s", resp.User.Email)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := credentials(signupEmail, signupPassword)
		if err != nil {
			return err
		}

		resp, err := apiClient.Register(cmd.Context(), sutra.RegisterRequest{
			Email:        email,
			Password:     password,
			Name:         signupName,
			Organization: signupOrganization,
			Phone:        signupPhone,
		})
		if err != nil {
			return err
		}

		if err := sessionStore.SetOnLogin(resp.AccessToken, profileOf(resp.User)); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}

		ui.Success("Account created for %s", resp.User.Email)
		return nil
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password-reset email",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.TrimSpace(forgotEmail)
		if email == "" {
			return fmt.Errorf("--email is required")
		}

		if err := apiClient.ForgotPassword(cmd.Context(), email); err != nil {
			return err
		}

		ui.Info("If an account exists for this email, a reset link will be sent.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sessionStore.ClearOnLogout(); err != nil {
			return err
		}
		ui.Success("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		user, err := apiClient.Me(cmd.Context())
		if err != nil {
			if apperrors.IsAuthError(err) {
				return fmt.Errorf("session expired - run 'a11ysutra login' again")
			}
			return err
		}

		// Refresh the cached profile alongside the lookup
		if err := sessionStore.UpdateUser(profileOf(*user)); err != nil {
			return fmt.Errorf("update cached profile: %w", err)
		}

		if user.Name != "" {
			ui.Info("%s <%s>", user.Name, user.Email)
		} else {
			ui.Info("%s", user.Email)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")

	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Account email")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Account password (prompted when omitted)")
	signupCmd.Flags().StringVar(&signupName, "name", "", "Full name")
	signupCmd.Flags().StringVar(&signupOrganization, "organization", "", "Organization")
	signupCmd.Flags().StringVar(&signupPhone, "phone", "", "Phone number")

	forgotPasswordCmd.Flags().StringVar(&forgotEmail, "email", "", "Account email")
}

// credentials resolves email and password from flags, prompting for the
// password on a terminal when it was not supplied.
func credentials(email, password string) (string, string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", "", fmt.Errorf("--email is required")
	}

	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		password = string(raw)
	}
	if password == "" {
		return "", "", fmt.Errorf("password must not be empty")
	}

	return email, password, nil
}

func profileOf(user sutra.User) *session.User {
	return &session.User{
		Name:         user.Name,
		Email:        user.Email,
		Organization: user.Organization,
		Phone:        user.Phone,
	}
}
