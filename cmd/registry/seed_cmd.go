package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openpol/registry/modules/registry/domain/entities/party"
	"github.com/openpol/registry/modules/registry/domain/entities/position"
	"github.com/openpol/registry/modules/registry/infrastructure/persistence"
	registryservices "github.com/openpol/registry/modules/registry/services"
	"github.com/openpol/registry/pkg/composables"
	"github.com/openpol/registry/pkg/eventbus"
)

type seedCounts struct {
	positions int
	parties   int
}

func newSeedCmd() *cobra.Command {
	var positions, parties []string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed reference positions and parties",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, pool, err := poolContext(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			logger := composables.UseLogger(ctx)
			publisher := eventbus.NewEventPublisher(logger)
			publisher.Subscribe(func(event string, created position.Position) {
				logger.WithField("name", created.Name()).Info(event)
			})
			publisher.Subscribe(func(event string, created party.Party) {
				logger.WithField("name", created.Name()).Info(event)
			})
			positionService := registryservices.NewPositionService(persistence.NewPositionRepository(), publisher)
			partyService := registryservices.NewPartyService(persistence.NewPartyRepository(), publisher)

			counts, err := composables.InTxResult(ctx, func(txCtx context.Context) (seedCounts, error) {
				var c seedCounts
				for _, name := range positions {
					_, err := positionService.FindByName(txCtx, name)
					if errors.Is(err, position.ErrNotFound) {
						if _, err := positionService.Create(txCtx, position.New(name)); err != nil {
							return c, err
						}
						c.positions++
						continue
					}
					if err != nil {
						return c, err
					}
				}
				for _, name := range parties {
					_, err := partyService.FindByName(txCtx, name)
					if errors.Is(err, party.ErrNotFound) {
						if _, err := partyService.Create(txCtx, party.New(name)); err != nil {
							return c, err
						}
						c.parties++
						continue
					}
					if err != nil {
						return c, err
					}
				}
				return c, nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d positions and %d parties\n", counts.positions, counts.parties)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&positions, "position", nil, "position name to seed (repeatable)")
	cmd.Flags().StringSliceVar(&parties, "party", nil, "party name to seed (repeatable)")
	return cmd
}
