package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stocktrack/domain"
)

func newReportCmd() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Read-only aggregates over the current state",
	}

	reportCmd.AddCommand(&cobra.Command{
		Use:   "top-products",
		Short: "Most ordered products across non-cancelled orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, row := range mgr.MostOrderedProducts() {
				fmt.Printf("%s | %d ordered\n", row.Name, row.Quantity)
			}
			return nil
		},
	})

	reportCmd.AddCommand(&cobra.Command{
		Use:   "revenue",
		Short: "Revenue per product across paid orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, row := range mgr.RevenueByProduct() {
				fmt.Printf("%s | %s\n", row.Name, row.Revenue.StringFixed(2))
			}
			return nil
		},
	})

	reportCmd.AddCommand(&cobra.Command{
		Use:   "daily-revenue",
		Short: "Revenue per day, by payment date",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, row := range mgr.RevenueOverTime() {
				fmt.Printf("%s | %s\n", row.Date, row.Revenue.StringFixed(2))
			}
			return nil
		},
	})

	reportCmd.AddCommand(&cobra.Command{
		Use:   "stock-levels",
		Short: "Stock classification of active products",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, row := range mgr.StockLevels() {
				fmt.Printf("%d | %s | %d in stock | %s\n", row.Code, row.Name, row.Quantity, row.Band)
			}
			return nil
		},
	})

	reportCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Order count per lifecycle status",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts := mgr.StatusCounts()
			for _, status := range []domain.OrderStatus{
				domain.OrderDraft, domain.OrderPending, domain.OrderConfirmed,
				domain.OrderCancelled, domain.OrderArchived,
			} {
				if n := counts[status]; n > 0 {
					fmt.Printf("%s | %d\n", status, n)
				}
			}
			return nil
		},
	})

	var limit int
	activityCmd := &cobra.Command{
		Use:   "activity",
		Short: "Recent order events, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, ev := range mgr.RecentActivity(limit) {
				fmt.Printf("%s | %s | order #%d | %s\n",
					ev.At.Format("2006-01-02 15:04:05"), ev.Kind, ev.OrderCode, ev.Amount.StringFixed(2))
			}
			return nil
		},
	}
	activityCmd.Flags().IntVar(&limit, "limit", 10, "maximum events")
	reportCmd.AddCommand(activityCmd)

	return reportCmd
}
