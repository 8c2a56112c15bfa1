package persistence

import (
	"context"
	"errors"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/openpol/registry/modules/registry/domain/entities/position"
	"github.com/openpol/registry/pkg/composables"
)

type PositionRepository struct{}

func NewPositionRepository() position.Repository {
	return &PositionRepository{}
}

func (r *PositionRepository) GetAll(ctx context.Context) ([]position.Position, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT id, name, created_at
FROM positions
ORDER BY name
`)
	if err != nil {
		return nil, gerrors.Wrap(err, "list positions")
	}
	defer rows.Close()

	var out []position.Position
	for rows.Next() {
		var (
			id        pgtype.UUID
			name      string
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &name, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, position.Hydrate(uuidFromPg(id), name, createdAt.Time))
	}
	return out, rows.Err()
}

func (r *PositionRepository) FindByName(ctx context.Context, name string) (position.Position, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return position.Position{}, err
	}

	var (
		id        pgtype.UUID
		dbName    string
		createdAt pgtype.Timestamptz
	)
	err = tx.QueryRow(ctx, `
SELECT id, name, created_at
FROM positions
WHERE lower(name) = lower($1)
`, strings.TrimSpace(name)).Scan(&id, &dbName, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrNotFound
		}
		return position.Position{}, err
	}
	return position.Hydrate(uuidFromPg(id), dbName, createdAt.Time), nil
}

func (r *PositionRepository) Create(ctx context.Context, p position.Position) (position.Position, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return position.Position{}, err
	}

	var (
		id        pgtype.UUID
		createdAt pgtype.Timestamptz
	)
	err = tx.QueryRow(ctx, `
INSERT INTO positions (name)
VALUES ($1)
RETURNING id, created_at
`, p.Name()).Scan(&id, &createdAt)
	if err != nil {
		return position.Position{}, gerrors.Wrap(err, "create position")
	}
	return position.Hydrate(uuidFromPg(id), p.Name(), createdAt.Time), nil
}
