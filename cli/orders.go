package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"stocktrack/domain"
)

func printOrderLine(o domain.Order) {
	fmt.Printf("#%d | %s | %s | %s | %d lines | total %s | paid %s\n",
		o.Code, o.Status, o.PaymentStatus, o.DeliveryStatus,
		len(o.Lines), o.TotalAmount().StringFixed(2), o.PaidAmount.StringFixed(2))
}

func newOrderCmd() *cobra.Command {
	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "Manage orders",
	}

	// create
	var productCode, quantity int
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a draft order with one line",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := mgr.CreateOrder(productCode, quantity)
			if err := renderBusinessErr(err); err != nil {
				return err
			}
			if err == nil {
				printJSON(o)
			}
			return nil
		},
	}
	createCmd.Flags().IntVar(&productCode, "product", 0, "product code")
	createCmd.Flags().IntVar(&quantity, "quantity", 1, "quantity")
	orderCmd.AddCommand(createCmd)

	// add-line
	var lineProduct, lineQuantity int
	addLineCmd := &cobra.Command{
		Use:   "add-line <order>",
		Short: "Add a line to a draft order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0], "order")
			if err != nil {
				return err
			}
			return renderBusinessErr(mgr.AddLine(code, lineProduct, lineQuantity))
		},
	}
	addLineCmd.Flags().IntVar(&lineProduct, "product", 0, "product code")
	addLineCmd.Flags().IntVar(&lineQuantity, "quantity", 1, "quantity")
	orderCmd.AddCommand(addLineCmd)

	// confirm
	confirmCmd := &cobra.Command{
		Use:   "confirm <order>",
		Short: "Confirm a draft or pending order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0], "order")
			if err != nil {
				return err
			}
			return renderBusinessErr(mgr.ConfirmOrder(code))
		},
	}
	orderCmd.AddCommand(confirmCmd)

	// pay
	var amount string
	payCmd := &cobra.Command{
		Use:   "pay <order>",
		Short: "Record a payment; omit --amount to pay the remaining balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0], "order")
			if err != nil {
				return err
			}
			var amt *decimal.Decimal
			if cmd.Flags().Changed("amount") {
				parsed, err := decimal.NewFromString(amount)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amount, err)
				}
				amt = &parsed
			}
			return renderBusinessErr(mgr.PayOrder(code, amt))
		},
	}
	payCmd.Flags().StringVar(&amount, "amount", "", "payment amount")
	orderCmd.AddCommand(payCmd)

	// deliver
	deliverCmd := &cobra.Command{
		Use:   "deliver <order>",
		Short: "Mark a confirmed, paid order as delivered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0], "order")
			if err != nil {
				return err
			}
			return renderBusinessErr(mgr.DeliverOrder(code))
		},
	}
	orderCmd.AddCommand(deliverCmd)

	// cancel
	cancelCmd := &cobra.Command{
		Use:   "cancel <order>",
		Short: "Cancel an order, restoring stock if it was deducted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0], "order")
			if err != nil {
				return err
			}
			return renderBusinessErr(mgr.CancelOrder(code))
		},
	}
	orderCmd.AddCommand(cancelCmd)

	// archive / unarchive
	archiveCmd := &cobra.Command{
		Use:   "archive <order>",
		Short: "Archive an order (soft delete, no stock effect)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0], "order")
			if err != nil {
				return err
			}
			return renderBusinessErr(mgr.ArchiveOrder(code))
		},
	}
	orderCmd.AddCommand(archiveCmd)

	var restore bool
	unarchiveCmd := &cobra.Command{
		Use:   "unarchive <order>",
		Short: "Restore an archived order to draft, or its prior status with --restore",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0], "order")
			if err != nil {
				return err
			}
			return renderBusinessErr(mgr.UnarchiveOrder(code, restore))
		},
	}
	unarchiveCmd.Flags().BoolVar(&restore, "restore", false, "reinstate the status recorded at archive time")
	orderCmd.AddCommand(unarchiveCmd)

	// list
	var archived, all bool
	var output string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			var orders []domain.Order
			switch {
			case all:
				orders = mgr.OrderHistory()
			case archived:
				orders = mgr.ArchivedOrders()
			default:
				orders = mgr.ActiveOrders()
			}
			if output == "json" {
				printJSON(orders)
				return nil
			}
			for _, o := range orders {
				printOrderLine(o)
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&archived, "archived", false, "list archived orders")
	listCmd.Flags().BoolVar(&all, "all", false, "list every order regardless of status")
	listCmd.Flags().StringVar(&output, "output", "", "output format")
	orderCmd.AddCommand(listCmd)

	// show
	showCmd := &cobra.Command{
		Use:   "show <order>",
		Short: "Show an order with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0], "order")
			if err != nil {
				return err
			}
			o, err := mgr.Order(code)
			if err := renderBusinessErr(err); err != nil {
				return err
			}
			if err == nil {
				printJSON(o)
			}
			return nil
		},
	}
	orderCmd.AddCommand(showCmd)

	return orderCmd
}
