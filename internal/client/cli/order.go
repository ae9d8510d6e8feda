package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	pkgapi "github.com/iudanet/coffeecloud/pkg/api"
)

func (c *Cli) orderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place and track orders",
	}
	cmd.AddCommand(c.orderListCmd(), c.orderPlaceCmd(), c.orderShowCmd(), c.orderInvalidateCmd())

	return cmd
}

func (c *Cli) orderListCmd() *cobra.Command {
	var history bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active orders, or served ones with --history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var orders []pkgapi.OrderResponse
			_, err := c.auth.WithAccess(ctx, func(token string) error {
				var err error
				orders, err = c.apiClient.ListOrders(ctx, token, history)
				return err
			})
			if err != nil {
				return err
			}

			return c.printOrders(orders)
		},
	}
	cmd.Flags().BoolVar(&history, "history", false, "Show obsolete orders")

	return cmd
}

func (c *Cli) orderPlaceCmd() *cobra.Command {
	var (
		items   []string
		message string
	)

	cmd := &cobra.Command{
		Use:     "place",
		Short:   "Place an order",
		Example: `  coffeectl order place --item 3 --item 5:2 --message "no sugar"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runOrderPlace(cmd.Context(), items, message)
		},
	}
	cmd.Flags().StringArrayVar(&items, "item", nil, "Order line as menu_id or menu_id:counts, repeatable")
	cmd.Flags().StringVar(&message, "message", "", "Customized message for the order")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

func (c *Cli) runOrderPlace(ctx context.Context, items []string, message string) error {
	if len(items) == 0 {
		return errors.New("at least one --item is required")
	}

	req := pkgapi.OrderRequest{Message: message}
	for _, item := range items {
		line, err := parseOrderLine(item)
		if err != nil {
			return err
		}
		req.Order = append(req.Order, line)
	}

	var resp *pkgapi.OrderCreatedResponse
	_, err := c.auth.WithAccess(ctx, func(token string) error {
		var err error
		resp, err = c.apiClient.PlaceOrder(ctx, token, req)
		return err
	})
	if err != nil {
		return err
	}

	c.io.Printf("✓ %s (order_id %d)\n", resp.Message, resp.OrderID)
	return nil
}

func (c *Cli) orderShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <order_id>",
		Short: "Show an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			orderID, err := parseID(args[0], "order_id")
			if err != nil {
				return err
			}

			var order *pkgapi.OrderResponse
			_, err = c.auth.WithAccess(ctx, func(token string) error {
				order, err = c.apiClient.GetOrder(ctx, token, orderID)
				return err
			})
			if err != nil {
				return err
			}

			return c.printOrders([]pkgapi.OrderResponse{*order})
		},
	}
}

// orderInvalidateCmd повторяет вызов устройства выдачи, токен не нужен
func (c *Cli) orderInvalidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate <order_id>",
		Short: "Mark an order as served",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseID(args[0], "order_id")
			if err != nil {
				return err
			}

			resp, err := c.apiClient.InvalidateOrder(cmd.Context(), orderID)
			if err != nil {
				return err
			}

			c.io.Printf("✓ %s\n", resp.Message)
			return nil
		},
	}
}
