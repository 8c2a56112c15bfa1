package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openpol/registry/modules/importer/report"
	"github.com/openpol/registry/modules/registry/infrastructure/persistence"
	registryservices "github.com/openpol/registry/modules/registry/services"
	"github.com/openpol/registry/pkg/configuration"
	"github.com/openpol/registry/pkg/eventbus"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <out.xlsx>",
		Short: "Export current officeholders to a re-importable spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := configuration.Use().Logger()

			ctx, pool, err := poolContext(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := registryservices.NewRegistryService(
				persistence.NewAssignmentRepository(),
				eventbus.NewEventPublisher(logger),
			)
			rows, err := svc.CurrentOfficeholders(ctx)
			if err != nil {
				return err
			}

			wb, err := report.NewRegistryExport(rows)
			if err != nil {
				return err
			}
			if err := wb.SaveAs(args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d current officeholders to %s\n", len(rows), args[0])
			return nil
		},
	}
}
