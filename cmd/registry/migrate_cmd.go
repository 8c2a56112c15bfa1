package main

import (
	"github.com/spf13/cobra"

	"github.com/openpol/registry/modules/registry/infrastructure/persistence"
	"github.com/openpol/registry/pkg/composables"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the registry schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, pool, err := poolContext(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := persistence.ApplySchema(ctx); err != nil {
				return err
			}
			composables.UseLogger(ctx).Info("registry schema applied")
			return nil
		},
	}
}
