package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/openpol/registry/modules/registry/domain/aggregates/assignment"
	"github.com/openpol/registry/modules/registry/domain/entities/jurisdiction"
	"github.com/openpol/registry/pkg/composables"
)

type AssignmentRepository struct{}

func NewAssignmentRepository() assignment.Repository {
	return &AssignmentRepository{}
}

func (r *AssignmentRepository) GetCurrent(ctx context.Context, positionID uuid.UUID, ref jurisdiction.Ref) (assignment.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return assignment.Assignment{}, err
	}

	// FOR UPDATE OF a serializes concurrent reconciliations of the same key.
	row := tx.QueryRow(ctx, `
SELECT a.id, a.politician_id, a.position_id, a.jurisdiction_type, a.jurisdiction_id,
       COALESCE(j.name, ''), a.party_id, a.term_start, a.term_end, a.is_current,
       a.created_at, a.updated_at
FROM assignments a
LEFT JOIN jurisdictions j ON j.id = a.jurisdiction_id
WHERE a.position_id = $1
  AND a.jurisdiction_type = $2
  AND COALESCE(a.jurisdiction_id, '00000000-0000-0000-0000-000000000000'::uuid) = $3
  AND a.is_current
FOR UPDATE OF a
`, pgUUID(positionID), string(ref.Type), pgUUID(ref.ID))
	out, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, err
	}
	return out, nil
}

func (r *AssignmentRepository) Create(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return assignment.Assignment{}, err
	}

	var (
		id        pgtype.UUID
		createdAt pgtype.Timestamptz
	)
	err = tx.QueryRow(ctx, `
INSERT INTO assignments (politician_id, position_id, jurisdiction_type, jurisdiction_id, party_id, term_start, term_end, is_current)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at
`,
		pgUUID(a.PoliticianID()),
		pgUUID(a.PositionID()),
		string(a.Jurisdiction().Type),
		pgNullableUUID(a.Jurisdiction().ID),
		pgUUID(a.PartyID()),
		a.TermStart(),
		pgNullableDate(a.TermEnd()),
		a.IsCurrent(),
	).Scan(&id, &createdAt)
	if err != nil {
		return assignment.Assignment{}, gerrors.Wrap(err, "create assignment")
	}

	return assignment.Hydrate(
		uuidFromPg(id),
		a.PoliticianID(),
		a.PositionID(),
		a.Jurisdiction(),
		a.PartyID(),
		a.TermStart(),
		a.TermEnd(),
		a.IsCurrent(),
		createdAt.Time,
		createdAt.Time,
	), nil
}

func (r *AssignmentRepository) Update(ctx context.Context, a assignment.Assignment) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
UPDATE assignments
SET party_id = $2, term_start = $3, term_end = $4, updated_at = now()
WHERE id = $1
`, pgUUID(a.ID()), pgUUID(a.PartyID()), a.TermStart(), pgNullableDate(a.TermEnd()))
	if err != nil {
		return gerrors.Wrap(err, "update assignment")
	}
	return nil
}

func (r *AssignmentRepository) Close(ctx context.Context, id uuid.UUID, termEnd time.Time) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
UPDATE assignments
SET is_current = false,
    term_end = COALESCE(term_end, $2),
    updated_at = now()
WHERE id = $1
`, pgUUID(id), termEnd)
	if err != nil {
		return gerrors.Wrap(err, "close assignment")
	}
	return nil
}

func (r *AssignmentRepository) CurrentWithNames(ctx context.Context) ([]assignment.CurrentRow, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT pol.name, pos.name, a.jurisdiction_type, COALESCE(j.name, ''),
       pty.name, a.term_start, a.term_end, pol.photo_url, pol.short_bio
FROM assignments a
JOIN politicians pol ON pol.id = a.politician_id
JOIN positions pos ON pos.id = a.position_id
JOIN parties pty ON pty.id = a.party_id
LEFT JOIN jurisdictions j ON j.id = a.jurisdiction_id
WHERE a.is_current
ORDER BY pos.name, a.jurisdiction_type, j.name NULLS FIRST
`)
	if err != nil {
		return nil, gerrors.Wrap(err, "list current assignments")
	}
	defer rows.Close()

	var out []assignment.CurrentRow
	for rows.Next() {
		var (
			row     assignment.CurrentRow
			jType   string
			termEnd pgtype.Date
		)
		if err := rows.Scan(
			&row.PoliticianName,
			&row.PositionName,
			&jType,
			&row.JurisdictionName,
			&row.PartyName,
			&row.TermStart,
			&termEnd,
			&row.PhotoURL,
			&row.ShortBio,
		); err != nil {
			return nil, err
		}
		row.JurisdictionType = jurisdiction.Type(jType)
		row.TermEnd = timePtrFromPgDate(termEnd)
		out = append(out, row)
	}
	return out, rows.Err()
}

func scanAssignment(row pgx.Row) (assignment.Assignment, error) {
	var (
		id             pgtype.UUID
		politicianID   pgtype.UUID
		positionID     pgtype.UUID
		jType          string
		jurisdictionID pgtype.UUID
		jName          string
		partyID        pgtype.UUID
		termStart      pgtype.Date
		termEnd        pgtype.Date
		isCurrent      bool
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
	)
	if err := row.Scan(
		&id, &politicianID, &positionID, &jType, &jurisdictionID, &jName,
		&partyID, &termStart, &termEnd, &isCurrent, &createdAt, &updatedAt,
	); err != nil {
		return assignment.Assignment{}, err
	}
	return assignment.Hydrate(
		uuidFromPg(id),
		uuidFromPg(politicianID),
		uuidFromPg(positionID),
		jurisdiction.Ref{
			Type: jurisdiction.Type(jType),
			ID:   uuidFromPg(jurisdictionID),
			Name: jName,
		},
		uuidFromPg(partyID),
		termStart.Time,
		timePtrFromPgDate(termEnd),
		isCurrent,
		createdAt.Time,
		updatedAt.Time,
	), nil
}
