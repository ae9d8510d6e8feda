package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pkgapi "github.com/iudanet/coffeecloud/pkg/api"
)

func (c *Cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runProfileShow(cmd.Context())
		},
	}
	cmd.AddCommand(c.profileUpdateCmd())

	return cmd
}

func (c *Cli) runProfileShow(ctx context.Context) error {
	var profile *pkgapi.ProfileResponse
	_, err := c.auth.WithAccess(ctx, func(token string) error {
		var err error
		profile, err = c.apiClient.GetProfile(ctx, token)
		return err
	})
	if err != nil {
		return err
	}

	c.printProfile(profile)
	return nil
}

func (c *Cli) profileUpdateCmd() *cobra.Command {
	var req pkgapi.ProfileUpdateRequest

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update gender, phone or birthday",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("gender") && !flags.Changed("phone") && !flags.Changed("birthday") {
				return fmt.Errorf("nothing to update: set --gender, --phone or --birthday")
			}
			return c.runProfileUpdate(cmd.Context(), req, flags.Changed)
		},
	}
	cmd.Flags().StringVar(&req.Gender, "gender", "", "Gender: none, male or female")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&req.Birthday, "birthday", "", "Birthday in YYYY-MM-DD format, empty to clear")

	return cmd
}

// runProfileUpdate отправляет профиль целиком: незаданные флаги
// берутся из текущего профиля
func (c *Cli) runProfileUpdate(ctx context.Context, req pkgapi.ProfileUpdateRequest, changed func(string) bool) error {
	var msg *pkgapi.MessageResponse
	_, err := c.auth.WithAccess(ctx, func(token string) error {
		current, err := c.apiClient.GetProfile(ctx, token)
		if err != nil {
			return err
		}

		update := pkgapi.ProfileUpdateRequest{
			Gender:   current.Gender,
			Phone:    current.Phone,
			Birthday: current.Birthday,
		}
		if changed("gender") {
			update.Gender = req.Gender
		}
		if changed("phone") {
			update.Phone = req.Phone
		}
		if changed("birthday") {
			update.Birthday = req.Birthday
		}

		msg, err = c.apiClient.UpdateProfile(ctx, token, update)
		return err
	})
	if err != nil {
		return err
	}

	c.io.Printf("✓ %s\n", msg.Message)
	return nil
}

func (c *Cli) userCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user <id>",
		Short: "Show the profile of a user by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			userID, err := parseID(args[0], "user id")
			if err != nil {
				return err
			}

			var profile *pkgapi.ProfileResponse
			_, err = c.auth.WithAccess(ctx, func(token string) error {
				profile, err = c.apiClient.GetUser(ctx, token, userID)
				return err
			})
			if err != nil {
				return err
			}

			c.printProfile(profile)
			return nil
		},
	}
}
