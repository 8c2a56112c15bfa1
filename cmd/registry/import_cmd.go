package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openpol/registry/modules/importer/domain/importrun"
	"github.com/openpol/registry/modules/importer/reconcile"
	"github.com/openpol/registry/modules/importer/report"
	importservices "github.com/openpol/registry/modules/importer/services"
	"github.com/openpol/registry/modules/importer/validate"
	"github.com/openpol/registry/modules/registry/infrastructure/persistence"
	"github.com/openpol/registry/pkg/composables"
	"github.com/openpol/registry/pkg/configuration"
	"github.com/openpol/registry/pkg/eventbus"
)

func newImportCmd() *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import an officeholder spreadsheet into the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := configuration.Use()
			logger := conf.Logger()

			ctx, pool, err := poolContext(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			engine := reconcile.New(
				persistence.NewAssignmentRepository(),
				persistence.NewPoliticianRepository(),
				composables.InTx,
				logger,
			)
			publisher := eventbus.NewEventPublisher(logger)
			publisher.Subscribe(func(event string, rep *importrun.Report) {
				if event != "import.completed" {
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rows: %d valid: %d invalid: %d created: %d updated: %d archived: %d\n",
					rep.TotalRows, rep.ValidRows, rep.InvalidRows, rep.Created, rep.Updated, rep.Archived)
			})
			svc := importservices.NewImportService(importservices.ImportServiceOptions{
				Positions:     persistence.NewPositionRepository(),
				Parties:       persistence.NewPartyRepository(),
				Directory:     persistence.NewJurisdictionDirectory(),
				Engine:        engine,
				Validator:     validate.New(validate.WithSuggestionLimit(conf.Import.SuggestionLimit)),
				Publisher:     publisher,
				Logger:        logger,
				LookupTimeout: conf.Import.LookupTimeout,
			})

			rep, err := svc.Run(ctx, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}

			if rep.Failed() && reportPath != "" {
				wb, err := report.NewErrorReport(rep)
				if err != nil {
					return err
				}
				if err := wb.SaveAs(reportPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "error report written to %s\n", reportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "import-errors.xlsx", "where to write the error report when rows fail")
	return cmd
}
