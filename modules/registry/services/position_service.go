package services

import (
	"context"

	"github.com/openpol/registry/modules/registry/domain/entities/position"
	"github.com/openpol/registry/pkg/eventbus"
)

type PositionService struct {
	repo      position.Repository
	publisher eventbus.EventBus
}

func NewPositionService(repo position.Repository, publisher eventbus.EventBus) *PositionService {
	return &PositionService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *PositionService) GetAll(ctx context.Context) ([]position.Position, error) {
	return s.repo.GetAll(ctx)
}

func (s *PositionService) FindByName(ctx context.Context, name string) (position.Position, error) {
	return s.repo.FindByName(ctx, name)
}

func (s *PositionService) Create(ctx context.Context, data position.Position) (position.Position, error) {
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return position.Position{}, err
	}
	s.publisher.Publish("position.created", created)
	return created, nil
}
