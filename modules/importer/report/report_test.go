package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/openpol/registry/modules/importer/catalog"
	"github.com/openpol/registry/modules/importer/domain/importrun"
	"github.com/openpol/registry/modules/importer/tabular"
	"github.com/openpol/registry/modules/importer/validate"
	"github.com/openpol/registry/modules/registry/domain/aggregates/assignment"
	"github.com/openpol/registry/modules/registry/domain/entities/jurisdiction"
	"github.com/openpol/registry/modules/registry/domain/entities/party"
	"github.com/openpol/registry/modules/registry/domain/entities/position"
)

func TestNewErrorReport(t *testing.T) {
	started := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	rep := &importrun.Report{
		Filename:    "officials.xlsx",
		StartedAt:   started,
		TotalRows:   3,
		ValidRows:   1,
		InvalidRows: 2,
		Errors: []importrun.ValidationError{
			{Row: 2, Field: "position", Message: "Position 'Govenor' not found", Value: "Govenor", Suggestions: []string{"Governor"}},
			{Row: 4, Field: "term start", Message: "Term start is required (expected YYYY-MM-DD)", Value: ""},
		},
		Failures: []importrun.ReconciliationFailure{
			{Row: 3, Message: "registry unavailable"},
		},
	}

	f, err := NewErrorReport(rep)
	require.NoError(t, err)

	get := func(cell string) string {
		v, err := f.GetCellValue("Errors", cell)
		require.NoError(t, err)
		return v
	}

	require.Equal(t, "officials.xlsx", get("B1"))
	require.Equal(t, started.Format(time.RFC3339), get("B2"))
	require.Equal(t, "3", get("B3"))
	require.Equal(t, "1", get("B4"))
	require.Equal(t, "2", get("B5"))

	require.Equal(t, "Row", get("A7"))
	require.Equal(t, "Suggestions", get("E7"))

	require.Equal(t, "2", get("A8"))
	require.Equal(t, "position", get("B8"))
	require.Equal(t, "Position 'Govenor' not found", get("C8"))
	require.Equal(t, "Govenor", get("D8"))
	require.Equal(t, "Governor", get("E8"))

	require.Equal(t, "4", get("A9"))
	require.Equal(t, "", get("E9"))

	require.Equal(t, "3", get("A10"))
	require.Equal(t, "reconciliation", get("B10"))
	require.Equal(t, "Registry update failed: registry unavailable", get("C10"))
}

type fixedPositionRepo struct{ items []position.Position }

func (r *fixedPositionRepo) GetAll(ctx context.Context) ([]position.Position, error) {
	return r.items, nil
}
func (r *fixedPositionRepo) FindByName(ctx context.Context, name string) (position.Position, error) {
	return position.Position{}, position.ErrNotFound
}
func (r *fixedPositionRepo) Create(ctx context.Context, p position.Position) (position.Position, error) {
	return p, nil
}

type fixedPartyRepo struct{ items []party.Party }

func (r *fixedPartyRepo) GetAll(ctx context.Context) ([]party.Party, error) { return r.items, nil }
func (r *fixedPartyRepo) FindByName(ctx context.Context, name string) (party.Party, error) {
	return party.Party{}, party.ErrNotFound
}
func (r *fixedPartyRepo) Create(ctx context.Context, p party.Party) (party.Party, error) {
	return p, nil
}

type mapDirectory struct{ refs map[string]jurisdiction.Ref }

func (d *mapDirectory) Lookup(ctx context.Context, t jurisdiction.Type, name string) (jurisdiction.Ref, error) {
	ref, ok := d.refs[string(t)+"/"+name]
	if !ok {
		return jurisdiction.Ref{}, jurisdiction.ErrNotFound
	}
	return ref, nil
}

// The registry export must re-import cleanly: same reader, same validator,
// zero errors, when reference data has not changed.
func TestNewRegistryExport_RoundTrips(t *testing.T) {
	termEnd := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	rows := []assignment.CurrentRow{
		{
			PoliticianName:   "Juan Dela Cruz",
			PositionName:     "Governor",
			JurisdictionType: jurisdiction.TypeProvince,
			JurisdictionName: "Cebu",
			PartyName:        "Liberal",
			TermStart:        time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC),
			TermEnd:          &termEnd,
			ShortBio:         "Three-term governor.",
		},
		{
			PoliticianName:   "Maria Clara",
			PositionName:     "President",
			JurisdictionType: jurisdiction.TypeNational,
			PartyName:        "Nacionalista",
			TermStart:        time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	f, err := NewRegistryExport(rows)
	require.NoError(t, err)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	raws, err := tabular.Read(buf)
	require.NoError(t, err)
	require.Len(t, raws, 2)

	cat, err := catalog.Load(
		context.Background(),
		&fixedPositionRepo{items: []position.Position{
			position.Hydrate(uuid.New(), "Governor", time.Now()),
			position.Hydrate(uuid.New(), "President", time.Now()),
		}},
		&fixedPartyRepo{items: []party.Party{
			party.Hydrate(uuid.New(), "Liberal", time.Now()),
			party.Hydrate(uuid.New(), "Nacionalista", time.Now()),
		}},
		&mapDirectory{refs: map[string]jurisdiction.Ref{
			"province/Cebu": {Type: jurisdiction.TypeProvince, ID: uuid.New(), Name: "Cebu"},
		}},
	)
	require.NoError(t, err)

	v := validate.New()
	for _, raw := range raws {
		out, errs := v.Validate(context.Background(), importrun.FromRaw(raw), cat)
		require.Empty(t, errs, "row %d", raw.Number)
		require.NotEmpty(t, out.Name)
	}
}
