package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stocktrack/syncdb"
)

func newSyncCmd() *cobra.Command {
	var dsn string

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the snapshot with a relational database",
	}
	syncCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Postgres DSN (defaults to DATABASE_URL)")

	syncCmd.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Write the full local snapshot to the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, err := syncdb.Open(dsn)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := syncdb.EnsureSchema(ctx, db); err != nil {
				return err
			}
			products, orders := mgr.ExportSnapshot()
			if err := syncdb.Push(ctx, db, products, orders); err != nil {
				return err
			}
			fmt.Printf("pushed %d products, %d orders\n", len(products), len(orders))
			return nil
		},
	})

	syncCmd.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Replace the local snapshot with the database contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, err := syncdb.Open(dsn)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := syncdb.EnsureSchema(ctx, db); err != nil {
				return err
			}
			products, orders, err := syncdb.Pull(ctx, db)
			if err != nil {
				return err
			}
			if err := mgr.ReplaceSnapshot(products, orders); err != nil {
				return err
			}
			fmt.Printf("pulled %d products, %d orders\n", len(products), len(orders))
			return nil
		},
	})

	syncCmd.AddCommand(&cobra.Command{
		Use:   "merge",
		Short: "Merge database and local state; the database wins on conflicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, err := syncdb.Open(dsn)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := syncdb.EnsureSchema(ctx, db); err != nil {
				return err
			}
			remoteProducts, remoteOrders, err := syncdb.Pull(ctx, db)
			if err != nil {
				return err
			}
			localProducts, localOrders := mgr.ExportSnapshot()
			products := syncdb.MergeProducts(localProducts, remoteProducts)
			orders := syncdb.MergeOrders(localOrders, remoteOrders)
			if err := mgr.ReplaceSnapshot(products, orders); err != nil {
				return err
			}
			if err := syncdb.Push(ctx, db, products, orders); err != nil {
				return err
			}
			fmt.Printf("merged to %d products, %d orders\n", len(products), len(orders))
			return nil
		},
	})

	return syncCmd
}
