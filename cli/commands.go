// Package cli provides the Cobra-based CLI for stocktrack.
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stocktrack/domain"
	"stocktrack/manager"
	"stocktrack/store"
)

var (
	rootCmd = &cobra.Command{
		Use:   "stocktrack",
		Short: "Inventory and order management",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests to inject manager
			if mgr != nil {
				return nil
			}

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			lvlStr := strings.ToLower(viper.GetString("log-level"))
			lvl := slog.LevelInfo
			switch lvlStr {
			case "debug":
				lvl = slog.LevelDebug
			case "warn", "warning":
				lvl = slog.LevelWarn
			case "error":
				lvl = slog.LevelError
			}
			slog.SetDefault(slog.New(
				slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
			))

			st, err := store.NewStore(
				viper.GetString("store"),
				viper.GetString("products-file"),
				viper.GetString("orders-file"),
			)
			if err != nil {
				return err
			}
			mgr, err = manager.New(st)
			return err
		},
	}

	mgr *manager.Manager
)

// renderBusinessErr prints expected rule violations and swallows them so the
// command exits cleanly after explaining which precondition failed.
// Unexpected errors propagate.
func renderBusinessErr(err error) error {
	if err == nil {
		return nil
	}
	if domain.IsBusinessError(err) {
		fmt.Fprintln(os.Stderr, err)
		return nil
	}
	return err
}

func parseCode(arg, what string) (int, error) {
	code, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s code: %q", what, arg)
	}
	return code, nil
}

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func init() {
	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(os.Stdin)
			for {
				fmt.Print("stocktrack> ")
				line, err := r.ReadString('\n')
				if err != nil {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				rootCmd.SetArgs(strings.Fields(line))
				if err := rootCmd.Execute(); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				rootCmd.SetArgs(nil)
			}
		},
	}
	rootCmd.AddCommand(shellCmd)

	rootCmd.PersistentFlags().String("store", "file", "store backend: memory|file")
	rootCmd.PersistentFlags().String("products-file", "data/products.json", "products snapshot path")
	rootCmd.PersistentFlags().String("orders-file", "data/orders.json", "orders snapshot path")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("products-file", rootCmd.PersistentFlags().Lookup("products-file"))
	viper.BindPFlag("orders-file", rootCmd.PersistentFlags().Lookup("orders-file"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("STOCKTRACK")
	viper.AutomaticEnv()

	rootCmd.AddCommand(newProductCmd())
	rootCmd.AddCommand(newOrderCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newSyncCmd())
}

func newProductCmd() *cobra.Command {
	productCmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products",
	}

	// add
	var name, description, price string
	var quantity int
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			unitPrice, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", price, err)
			}
			p, err := mgr.AddProduct(name, description, quantity, unitPrice)
			if err := renderBusinessErr(err); err != nil {
				return err
			}
			if err == nil {
				printJSON(p)
			}
			return nil
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "name")
	addCmd.Flags().StringVar(&description, "description", "", "description")
	addCmd.Flags().IntVar(&quantity, "quantity", 0, "initial stock quantity")
	addCmd.Flags().StringVar(&price, "price", "0", "unit price")
	productCmd.AddCommand(addCmd)

	// update
	var uName, uDescription, uPrice string
	var uQuantity int
	updateCmd := &cobra.Command{
		Use:   "update <code>",
		Short: "Update a product (only the flags you pass change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0], "product")
			if err != nil {
				return err
			}

			var upd manager.ProductUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &uName
			}
			if cmd.Flags().Changed("description") {
				upd.Description = &uDescription
			}
			if cmd.Flags().Changed("quantity") {
				upd.Quantity = &uQuantity
			}
			if cmd.Flags().Changed("price") {
				unitPrice, err := decimal.NewFromString(uPrice)
				if err != nil {
					return fmt.Errorf("invalid price %q: %w", uPrice, err)
				}
				upd.UnitPrice = &unitPrice
			}

			if err := renderBusinessErr(mgr.UpdateProduct(code, upd)); err != nil {
				return err
			}
			return nil
		},
	}
	updateCmd.Flags().StringVar(&uName, "name", "", "name")
	updateCmd.Flags().StringVar(&uDescription, "description", "", "description")
	updateCmd.Flags().IntVar(&uQuantity, "quantity", 0, "stock quantity")
	updateCmd.Flags().StringVar(&uPrice, "price", "", "unit price")
	productCmd.AddCommand(updateCmd)

	// archive / unarchive
	archiveCmd := &cobra.Command{
		Use:   "archive <code>",
		Short: "Archive a product (soft delete)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0], "product")
			if err != nil {
				return err
			}
			return renderBusinessErr(mgr.ArchiveProduct(code))
		},
	}
	productCmd.AddCommand(archiveCmd)

	unarchiveCmd := &cobra.Command{
		Use:   "unarchive <code>",
		Short: "Restore an archived product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0], "product")
			if err != nil {
				return err
			}
			return renderBusinessErr(mgr.UnarchiveProduct(code))
		},
	}
	productCmd.AddCommand(unarchiveCmd)

	// list
	var archived bool
	var output string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products sorted by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			products := mgr.ActiveProducts()
			if archived {
				products = mgr.ArchivedProducts()
			}
			if output == "json" {
				printJSON(products)
				return nil
			}
			for _, p := range products {
				fmt.Printf("%d | %s | %s | %d in stock | %s\n",
					p.Code, p.Name, p.UnitPrice.StringFixed(2), p.Quantity, p.Status)
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&archived, "archived", false, "list archived products")
	listCmd.Flags().StringVar(&output, "output", "", "output format")
	productCmd.AddCommand(listCmd)

	// show
	showCmd := &cobra.Command{
		Use:   "show <code>",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0], "product")
			if err != nil {
				return err
			}
			p, err := mgr.Product(code)
			if err := renderBusinessErr(err); err != nil {
				return err
			}
			if err == nil {
				printJSON(p)
			}
			return nil
		},
	}
	productCmd.AddCommand(showCmd)

	return productCmd
}

func Execute() error {
	return rootCmd.Execute()
}
