package persistence

import (
	"context"
	"errors"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/openpol/registry/modules/registry/domain/entities/party"
	"github.com/openpol/registry/pkg/composables"
)

type PartyRepository struct{}

func NewPartyRepository() party.Repository {
	return &PartyRepository{}
}

func (r *PartyRepository) GetAll(ctx context.Context) ([]party.Party, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT id, name, created_at
FROM parties
ORDER BY name
`)
	if err != nil {
		return nil, gerrors.Wrap(err, "list parties")
	}
	defer rows.Close()

	var out []party.Party
	for rows.Next() {
		var (
			id        pgtype.UUID
			name      string
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &name, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, party.Hydrate(uuidFromPg(id), name, createdAt.Time))
	}
	return out, rows.Err()
}

func (r *PartyRepository) FindByName(ctx context.Context, name string) (party.Party, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return party.Party{}, err
	}

	var (
		id        pgtype.UUID
		dbName    string
		createdAt pgtype.Timestamptz
	)
	err = tx.QueryRow(ctx, `
SELECT id, name, created_at
FROM parties
WHERE lower(name) = lower($1)
`, strings.TrimSpace(name)).Scan(&id, &dbName, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return party.Party{}, party.ErrNotFound
		}
		return party.Party{}, err
	}
	return party.Hydrate(uuidFromPg(id), dbName, createdAt.Time), nil
}

func (r *PartyRepository) Create(ctx context.Context, p party.Party) (party.Party, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return party.Party{}, err
	}

	var (
		id        pgtype.UUID
		createdAt pgtype.Timestamptz
	)
	err = tx.QueryRow(ctx, `
INSERT INTO parties (name)
VALUES ($1)
RETURNING id, created_at
`, p.Name()).Scan(&id, &createdAt)
	if err != nil {
		return party.Party{}, gerrors.Wrap(err, "create party")
	}
	return party.Hydrate(uuidFromPg(id), p.Name(), createdAt.Time), nil
}
