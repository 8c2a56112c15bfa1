package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/openpol/registry/modules/registry/domain/aggregates/politician"
	"github.com/openpol/registry/pkg/composables"
)

type PoliticianRepository struct{}

func NewPoliticianRepository() politician.Repository {
	return &PoliticianRepository{}
}

func (r *PoliticianRepository) GetByID(ctx context.Context, id uuid.UUID) (politician.Politician, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return politician.Politician{}, err
	}

	row := tx.QueryRow(ctx, `
SELECT id, name, birth_date, photo_url, short_bio, created_at, updated_at
FROM politicians
WHERE id = $1
`, pgUUID(id))
	out, err := scanPolitician(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return politician.Politician{}, politician.ErrNotFound
		}
		return politician.Politician{}, err
	}
	return out, nil
}

func (r *PoliticianRepository) FindByIdentity(ctx context.Context, name string, birthDate *time.Time) (politician.Politician, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return politician.Politician{}, err
	}

	// Birth date disambiguates politicians sharing a name; imports without
	// one still have to resolve existing people, so a NULL probe matches on
	// name alone.
	row := tx.QueryRow(ctx, `
SELECT id, name, birth_date, photo_url, short_bio, created_at, updated_at
FROM politicians
WHERE lower(name) = lower($1)
  AND ($2::date IS NULL OR birth_date = $2)
ORDER BY birth_date NULLS FIRST
LIMIT 1
`, strings.TrimSpace(name), pgNullableDate(birthDate))
	out, err := scanPolitician(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return politician.Politician{}, politician.ErrNotFound
		}
		return politician.Politician{}, err
	}
	return out, nil
}

func (r *PoliticianRepository) Create(ctx context.Context, p politician.Politician) (politician.Politician, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return politician.Politician{}, err
	}

	row := tx.QueryRow(ctx, `
INSERT INTO politicians (name, birth_date, photo_url, short_bio)
VALUES ($1, $2, $3, $4)
RETURNING id, name, birth_date, photo_url, short_bio, created_at, updated_at
`, p.Name(), pgNullableDate(p.BirthDate()), p.PhotoURL(), p.ShortBio())
	out, err := scanPolitician(row)
	if err != nil {
		return politician.Politician{}, gerrors.Wrap(err, "create politician")
	}
	return out, nil
}

func (r *PoliticianRepository) Update(ctx context.Context, p politician.Politician) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
UPDATE politicians
SET name = $2, birth_date = $3, photo_url = $4, short_bio = $5, updated_at = now()
WHERE id = $1
`, pgUUID(p.ID()), p.Name(), pgNullableDate(p.BirthDate()), p.PhotoURL(), p.ShortBio())
	if err != nil {
		return gerrors.Wrap(err, "update politician")
	}
	return nil
}

func scanPolitician(row pgx.Row) (politician.Politician, error) {
	var (
		id        pgtype.UUID
		name      string
		birthDate pgtype.Date
		photoURL  string
		shortBio  string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &name, &birthDate, &photoURL, &shortBio, &createdAt, &updatedAt); err != nil {
		return politician.Politician{}, err
	}
	return politician.Hydrate(
		uuidFromPg(id),
		name,
		timePtrFromPgDate(birthDate),
		photoURL,
		shortBio,
		createdAt.Time,
		updatedAt.Time,
	), nil
}
