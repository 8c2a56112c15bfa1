package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/openpol/registry/pkg/composables"
	"github.com/openpol/registry/pkg/configuration"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Officeholder registry import and export tools",
	}
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newExportCmd())
	return cmd
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// poolContext connects to the configured database and binds the pool and the
// configured logger to the context the way repositories expect.
func poolContext(ctx context.Context) (context.Context, *pgxpool.Pool, error) {
	conf := configuration.Use()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		return nil, nil, err
	}
	ctx = composables.WithPool(ctx, pool)
	ctx = composables.WithLogger(ctx, conf.Logger())
	return ctx, pool, nil
}
