package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgapi "github.com/iudanet/coffeecloud/pkg/api"
)

func (c *Cli) serialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serial",
		Short: "Link cup serial numbers to orders",
	}
	cmd.AddCommand(c.serialLinkCmd(), c.serialListCmd(), c.serialFindCmd())

	return cmd
}

func (c *Cli) serialLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <order_id> <menu_id> <serial_number>",
		Short: "Link a serial number to an order line",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			orderID, err := parseID(args[0], "order_id")
			if err != nil {
				return err
			}
			menuID, err := parseID(args[1], "menu_id")
			if err != nil {
				return err
			}

			req := pkgapi.SerialLinkRequest{OrderID: orderID, MenuID: menuID, SerialNumber: args[2]}
			_, err = c.auth.WithAccess(ctx, func(token string) error {
				return c.apiClient.LinkSerial(ctx, token, req)
			})
			if err != nil {
				return err
			}

			c.io.Printf("✓ Serial %s linked to order %d, menu %d\n", req.SerialNumber, orderID, menuID)
			return nil
		},
	}
}

func (c *Cli) serialListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <order_id>",
		Short: "List serial numbers linked to an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			orderID, err := parseID(args[0], "order_id")
			if err != nil {
				return err
			}

			var links []pkgapi.SerialLinkResponse
			_, err = c.auth.WithAccess(ctx, func(token string) error {
				links, err = c.apiClient.SerialsByOrder(ctx, token, orderID)
				return err
			})
			if err != nil {
				return err
			}

			if len(links) == 0 {
				c.io.Println("No serial numbers linked.")
				return nil
			}

			tw := c.newTable()
			_, _ = fmt.Fprintln(tw, "SERIAL\tMENU")
			for _, l := range links {
				_, _ = fmt.Fprintf(tw, "%s\t%d\n", l.SerialNumber, l.MenuID)
			}
			return tw.Flush()
		},
	}
}

func (c *Cli) serialFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <serial_number>",
		Short: "Find the order a serial number was last linked to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var lookup *pkgapi.SerialLookupResponse
			_, err := c.auth.WithAccess(ctx, func(token string) error {
				var err error
				lookup, err = c.apiClient.FindSerial(ctx, token, args[0])
				return err
			})
			if err != nil {
				return err
			}

			c.io.Printf("Order:   %d\n", lookup.OrderID)
			c.io.Printf("Menu:    %d\n", lookup.MenuID)
			c.io.Printf("Message: %s\n", lookup.CustomizedMessage)
			return nil
		},
	}
}
