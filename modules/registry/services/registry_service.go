package services

import (
	"context"

	"github.com/openpol/registry/modules/registry/domain/aggregates/assignment"
	"github.com/openpol/registry/pkg/eventbus"
)

// RegistryService is the read surface over officeholder assignments used by
// exports and dashboards. Mutations go through the reconciliation engine.
type RegistryService struct {
	assignments assignment.Repository
	publisher   eventbus.EventBus
}

func NewRegistryService(assignments assignment.Repository, publisher eventbus.EventBus) *RegistryService {
	return &RegistryService{
		assignments: assignments,
		publisher:   publisher,
	}
}

func (s *RegistryService) CurrentOfficeholders(ctx context.Context) ([]assignment.CurrentRow, error) {
	return s.assignments.CurrentWithNames(ctx)
}
