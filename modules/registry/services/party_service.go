package services

import (
	"context"

	"github.com/openpol/registry/modules/registry/domain/entities/party"
	"github.com/openpol/registry/pkg/eventbus"
)

type PartyService struct {
	repo      party.Repository
	publisher eventbus.EventBus
}

func NewPartyService(repo party.Repository, publisher eventbus.EventBus) *PartyService {
	return &PartyService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *PartyService) GetAll(ctx context.Context) ([]party.Party, error) {
	return s.repo.GetAll(ctx)
}

func (s *PartyService) FindByName(ctx context.Context, name string) (party.Party, error) {
	return s.repo.FindByName(ctx, name)
}

func (s *PartyService) Create(ctx context.Context, data party.Party) (party.Party, error) {
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return party.Party{}, err
	}
	s.publisher.Publish("party.created", created)
	return created, nil
}
