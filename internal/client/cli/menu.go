package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/iudanet/coffeecloud/internal/client/api"
	"github.com/iudanet/coffeecloud/internal/client/auth"
	pkgapi "github.com/iudanet/coffeecloud/pkg/api"
)

func (c *Cli) menuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Manage drink menus",
	}
	cmd.AddCommand(c.menuListCmd(), c.menuCreateCmd(), c.menuUpdateCmd())

	return cmd
}

func (c *Cli) menuListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your menus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runMenuList(cmd.Context())
		},
	}
}

// runMenuList показывает меню с сервера и обновляет локальный кэш.
// Если сервер недоступен, показывается кэш.
func (c *Cli) runMenuList(ctx context.Context) error {
	authData, err := c.auth.Session(ctx)
	if err != nil {
		return err
	}

	var menus []pkgapi.MenuResponse
	_, err = c.auth.WithAccess(ctx, func(token string) error {
		menus, err = c.apiClient.ListMenus(ctx, token)
		return err
	})

	var apiErr *api.APIError
	switch {
	case err == nil:
		if err := c.menuCache.SaveMenus(ctx, authData.Username, menus); err != nil {
			c.io.Printf("Warning: failed to cache menus: %v\n", err)
		}
	case errors.As(err, &apiErr), errors.Is(err, auth.ErrNotAuthenticated), errors.Is(err, context.Canceled):
		return err
	default:
		cached, cacheErr := c.menuCache.GetMenus(ctx, authData.Username)
		if cacheErr != nil {
			return errors.Join(err, cacheErr)
		}
		c.io.Printf("Server unreachable (%v), showing cached menus.\n", err)
		menus = cached
	}

	return c.printMenus(menus)
}

// menuFlags регистрирует флаги конфигурации напитка
func menuFlags(fs *pflag.FlagSet, req *pkgapi.MenuRequest) {
	fs.StringVar(&req.Name, "name", "", "Menu name")
	fs.StringVar(&req.MenuType, "type", "customized", "Menu type: customized or general")
	fs.StringVar(&req.TasteLevel, "taste", "standard", "Taste level: mild, standard or strong")
	fs.StringVar(&req.WaterLevel, "water", "standard", "Water level: long, standard or small")
	fs.StringVar(&req.FoamLevel, "foam", "standard", "Foam level: none, standard or thick")
	fs.StringVar(&req.GrindSize, "grind", "medium", "Grind size: fine, medium or coarse")
	fs.StringVar(&req.CoffeeOption, "coffee-option", "", "Coffee option: coffee_one or coffee_two")
}

func (c *Cli) menuCreateCmd() *cobra.Command {
	var req pkgapi.MenuRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var resp *pkgapi.MenuCreatedResponse
			_, err := c.auth.WithAccess(ctx, func(token string) error {
				var err error
				resp, err = c.apiClient.CreateMenu(ctx, token, req)
				return err
			})
			if err != nil {
				return err
			}

			c.io.Printf("✓ %s (menu_id %d)\n", resp.Message, resp.MenuID)
			return nil
		},
	}
	menuFlags(cmd.Flags(), &req)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func (c *Cli) menuUpdateCmd() *cobra.Command {
	var req pkgapi.MenuRequest

	cmd := &cobra.Command{
		Use:   "update <menu_id>",
		Short: "Update a menu you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			menuID, err := parseID(args[0], "menu_id")
			if err != nil {
				return err
			}
			return c.runMenuUpdate(cmd.Context(), menuID, req, cmd.Flags().Changed)
		},
	}
	menuFlags(cmd.Flags(), &req)

	return cmd
}

// runMenuUpdate накладывает заданные флаги на текущую конфигурацию меню
func (c *Cli) runMenuUpdate(ctx context.Context, menuID int64, req pkgapi.MenuRequest, changed func(string) bool) error {
	_, err := c.auth.WithAccess(ctx, func(token string) error {
		menus, err := c.apiClient.ListMenus(ctx, token)
		if err != nil {
			return err
		}

		var current *pkgapi.MenuResponse
		for i := range menus {
			if menus[i].MenuID == menuID {
				current = &menus[i]
				break
			}
		}
		if current == nil {
			return fmt.Errorf("menu %d not found", menuID)
		}

		update := pkgapi.MenuRequest{
			MenuID:       menuID,
			Name:         pick(changed("name"), req.Name, current.Name),
			MenuType:     pick(changed("type"), req.MenuType, current.MenuType),
			TasteLevel:   pick(changed("taste"), req.TasteLevel, current.TasteLevel),
			WaterLevel:   pick(changed("water"), req.WaterLevel, current.WaterLevel),
			FoamLevel:    pick(changed("foam"), req.FoamLevel, current.FoamLevel),
			GrindSize:    pick(changed("grind"), req.GrindSize, current.GrindSize),
			CoffeeOption: pick(changed("coffee-option"), req.CoffeeOption, current.CoffeeOption),
		}

		return c.apiClient.UpdateMenu(ctx, token, update)
	})
	if err != nil {
		return err
	}

	c.io.Printf("✓ Menu %d updated\n", menuID)
	return nil
}

func pick(useNew bool, newValue, current string) string {
	if useNew {
		return newValue
	}
	return current
}
