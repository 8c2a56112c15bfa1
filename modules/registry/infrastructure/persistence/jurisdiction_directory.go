package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/openpol/registry/modules/registry/domain/entities/jurisdiction"
	"github.com/openpol/registry/pkg/composables"
)

// PgJurisdictionDirectory resolves jurisdiction names against the
// jurisdictions table. National never reaches the directory; callers resolve
// it before looking anything up.
type PgJurisdictionDirectory struct{}

func NewJurisdictionDirectory() jurisdiction.Directory {
	return &PgJurisdictionDirectory{}
}

func (d *PgJurisdictionDirectory) Lookup(ctx context.Context, t jurisdiction.Type, name string) (jurisdiction.Ref, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return jurisdiction.Ref{}, err
	}

	var (
		id     pgtype.UUID
		dbName string
	)
	err = tx.QueryRow(ctx, `
SELECT id, name
FROM jurisdictions
WHERE type = $1 AND lower(name) = lower($2)
`, string(t), strings.TrimSpace(name)).Scan(&id, &dbName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return jurisdiction.Ref{}, jurisdiction.ErrNotFound
		}
		return jurisdiction.Ref{}, err
	}

	return jurisdiction.Ref{Type: t, ID: uuidFromPg(id), Name: dbName}, nil
}
