package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/coffeecloud/internal/client/storage"
	"github.com/iudanet/coffeecloud/internal/validation"
)

func (c *Cli) registerCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runRegister(cmd.Context(), email)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address (optional)")

	return cmd
}

func (c *Cli) runRegister(ctx context.Context, email string) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.readNewPassword("Password: ")
	if err != nil {
		return err
	}

	resp, err := c.auth.Register(ctx, username, password, email)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Printf("✓ %s\n", resp.Message)
	c.io.Println("You are now logged in.")

	return nil
}

// readNewPassword запрашивает пароль с подтверждением
func (c *Cli) readNewPassword(prompt string) (string, error) {
	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}

	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if confirm != password {
		return "", errors.New("passwords do not match")
	}

	return password, nil
}

func (c *Cli) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Login to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runLogin(cmd.Context())
		},
	}
}

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	resp, err := c.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", username)
	c.io.Printf("Access token expires in: %d seconds\n", resp.ExpiresIn)

	return nil
}

func (c *Cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke tokens and forget the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runLogout(cmd.Context())
		},
	}
}

func (c *Cli) runLogout(ctx context.Context) error {
	result, err := c.auth.Logout(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			c.io.Println("Not logged in.")
			return nil
		}
		return err
	}

	for _, revokeErr := range result.RevokeErrors {
		c.io.Printf("Warning: %v\n", revokeErr)
	}

	c.io.Printf("✓ Logged out %s\n", result.Username)
	return nil
}

func (c *Cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runStatus(cmd.Context())
		},
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	authData, err := c.authStore.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			c.io.Println("Not authenticated.")
			return nil
		}
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	now := c.now()
	c.io.Printf("Username:      %s\n", authData.Username)
	c.io.Printf("Server:        %s\n", authData.ServerURL)
	c.io.Printf("Access token:  %s\n", expiryState(authData.AccessExpiresAt, now))
	c.io.Printf("Refresh token: %s\n", expiryState(authData.RefreshExpiresAt, now))

	if authData.RefreshExpired(now) {
		c.io.Println("Session expired. Please run 'coffeectl login'.")
	}

	return nil
}

func expiryState(expiresAt int64, now time.Time) string {
	if expiresAt == 0 {
		return "expiry unknown"
	}
	t := time.Unix(expiresAt, 0)
	if !now.Before(t) {
		return "expired at " + t.Format(time.RFC3339)
	}
	return "valid until " + t.Format(time.RFC3339)
}

func (c *Cli) resetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password",
		Short: "Change the password of the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runResetPassword(cmd.Context())
		},
	}
}

func (c *Cli) runResetPassword(ctx context.Context) error {
	if _, err := c.auth.Session(ctx); err != nil {
		return err
	}

	current, err := c.io.ReadPassword("Current password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	newPassword, err := c.readNewPassword("New password: ")
	if err != nil {
		return err
	}

	resp, err := c.auth.ResetPassword(ctx, current, newPassword)
	if err != nil {
		return err
	}

	c.io.Printf("✓ %s\n", resp.Message)
	return nil
}

func (c *Cli) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := c.apiClient.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("server unavailable: %w", err)
			}
			c.io.Printf("Server:   %s (version %s)\n", resp.Status, resp.Version)
			c.io.Printf("Database: %s\n", resp.Database)
			return nil
		},
	}
}
