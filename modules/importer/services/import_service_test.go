package services_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/openpol/registry/modules/importer/domain/importrun"
	"github.com/openpol/registry/modules/importer/reconcile"
	"github.com/openpol/registry/modules/importer/report"
	importservices "github.com/openpol/registry/modules/importer/services"
	"github.com/openpol/registry/modules/importer/tabular"
	"github.com/openpol/registry/modules/registry/domain/aggregates/assignment"
	"github.com/openpol/registry/modules/registry/domain/aggregates/politician"
	"github.com/openpol/registry/modules/registry/domain/entities/jurisdiction"
	"github.com/openpol/registry/modules/registry/domain/entities/party"
	"github.com/openpol/registry/modules/registry/domain/entities/position"
	"github.com/openpol/registry/pkg/eventbus"
)

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

type memPoliticianRepo struct {
	items map[uuid.UUID]politician.Politician
}

func (r *memPoliticianRepo) GetByID(ctx context.Context, id uuid.UUID) (politician.Politician, error) {
	p, ok := r.items[id]
	if !ok {
		return politician.Politician{}, politician.ErrNotFound
	}
	return p, nil
}

func (r *memPoliticianRepo) FindByIdentity(ctx context.Context, name string, birthDate *time.Time) (politician.Politician, error) {
	for _, p := range r.items {
		if p.Name() != name {
			continue
		}
		if birthDate != nil && (p.BirthDate() == nil || !p.BirthDate().Equal(*birthDate)) {
			continue
		}
		return p, nil
	}
	return politician.Politician{}, politician.ErrNotFound
}

func (r *memPoliticianRepo) Create(ctx context.Context, p politician.Politician) (politician.Politician, error) {
	created := politician.Hydrate(uuid.New(), p.Name(), p.BirthDate(), p.PhotoURL(), p.ShortBio(), time.Now(), time.Now())
	r.items[created.ID()] = created
	return created, nil
}

func (r *memPoliticianRepo) Update(ctx context.Context, p politician.Politician) error {
	r.items[p.ID()] = p
	return nil
}

type memAssignmentRepo struct {
	items       map[uuid.UUID]assignment.Assignment
	politicians *memPoliticianRepo
	positions   *fixedPositionRepo
	parties     *fixedPartyRepo
}

func (r *memAssignmentRepo) GetCurrent(ctx context.Context, positionID uuid.UUID, ref jurisdiction.Ref) (assignment.Assignment, error) {
	for _, a := range r.items {
		j := a.Jurisdiction()
		if a.IsCurrent() && a.PositionID() == positionID && j.Type == ref.Type && j.ID == ref.ID {
			return a, nil
		}
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (r *memAssignmentRepo) Create(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	created := assignment.Hydrate(
		uuid.New(), a.PoliticianID(), a.PositionID(), a.Jurisdiction(), a.PartyID(),
		a.TermStart(), a.TermEnd(), a.IsCurrent(), time.Now(), time.Now(),
	)
	r.items[created.ID()] = created
	return created, nil
}

func (r *memAssignmentRepo) Update(ctx context.Context, a assignment.Assignment) error {
	r.items[a.ID()] = a
	return nil
}

func (r *memAssignmentRepo) Close(ctx context.Context, id uuid.UUID, termEnd time.Time) error {
	a, ok := r.items[id]
	if !ok {
		return assignment.ErrNotFound
	}
	if a.TermEnd() == nil {
		a = a.Closed(termEnd)
	} else {
		a = a.Closed(*a.TermEnd())
	}
	r.items[id] = a
	return nil
}

func (r *memAssignmentRepo) CurrentWithNames(ctx context.Context) ([]assignment.CurrentRow, error) {
	nameOf := func(items []position.Position, id uuid.UUID) string {
		for _, p := range items {
			if p.ID() == id {
				return p.Name()
			}
		}
		return ""
	}
	var out []assignment.CurrentRow
	for _, a := range r.items {
		if !a.IsCurrent() {
			continue
		}
		pol := r.politicians.items[a.PoliticianID()]
		partyName := ""
		for _, p := range r.parties.items {
			if p.ID() == a.PartyID() {
				partyName = p.Name()
			}
		}
		out = append(out, assignment.CurrentRow{
			PoliticianName:   pol.Name(),
			PositionName:     nameOf(r.positions.items, a.PositionID()),
			JurisdictionType: a.Jurisdiction().Type,
			JurisdictionName: a.Jurisdiction().Name,
			PartyName:        partyName,
			TermStart:        a.TermStart(),
			TermEnd:          a.TermEnd(),
			PhotoURL:         pol.PhotoURL(),
			ShortBio:         pol.ShortBio(),
		})
	}
	return out, nil
}

func passThroughTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type harness struct {
	svc         *importservices.ImportService
	assignments *memAssignmentRepo
	politicians *memPoliticianRepo
	publisher   eventbus.EventBus
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	positions := &fixedPositionRepo{items: []position.Position{
		position.Hydrate(uuid.New(), "Governor", time.Now()),
		position.Hydrate(uuid.New(), "Mayor", time.Now()),
	}}
	parties := &fixedPartyRepo{items: []party.Party{
		party.Hydrate(uuid.New(), "Liberal", time.Now()),
		party.Hydrate(uuid.New(), "Nacionalista", time.Now()),
	}}
	directory := &mapDirectory{refs: map[string]jurisdiction.Ref{
		"province/Cebu": {Type: jurisdiction.TypeProvince, ID: uuid.New(), Name: "Cebu"},
		"city/Manila":   {Type: jurisdiction.TypeCity, ID: uuid.New(), Name: "Manila"},
	}}

	politicians := &memPoliticianRepo{items: map[uuid.UUID]politician.Politician{}}
	assignments := &memAssignmentRepo{
		items:       map[uuid.UUID]assignment.Assignment{},
		politicians: politicians,
		positions:   positions,
		parties:     parties,
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	engine := reconcile.New(assignments, politicians, passThroughTx, log)
	publisher := eventbus.NewEventPublisher(log)

	svc := importservices.NewImportService(importservices.ImportServiceOptions{
		Positions: positions,
		Parties:   parties,
		Directory: directory,
		Engine:    engine,
		Publisher: publisher,
		Logger:    log,
	})
	return &harness{svc: svc, assignments: assignments, politicians: politicians, publisher: publisher}
}

func workbook(t *testing.T, rows [][]interface{}) io.Reader {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{
		"Name", "Position", "Jurisdiction Type", "Jurisdiction Name", "Party",
		"Term Start", "Term End", "Photo URL", "Short Bio", "Birth Date",
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportService_MixedBatch(t *testing.T) {
	h := newHarness(t)

	src := workbook(t, [][]interface{}{
		{"Juan Dela Cruz", "Governor", "province", "Cebu", "Liberal", "2022-06-30", "", "", "", ""},
		{"Maria Clara", "Myor", "city", "Manila", "Liberal", "2022-06-30", "", "", "", ""},
		{"Jose Rizal", "Mayor", "city", "Manila", "Nacionalista", "2022-06-30", "", "", "", ""},
	})

	rep, err := h.svc.Run(context.Background(), "officials.xlsx", src)
	require.NoError(t, err)

	require.Equal(t, 3, rep.TotalRows)
	require.Equal(t, 2, rep.ValidRows)
	require.Equal(t, 1, rep.InvalidRows)
	require.Equal(t, rep.TotalRows, rep.ValidRows+rep.InvalidRows)
	require.Equal(t, 2, rep.Created)
	require.Zero(t, rep.Updated)
	require.Zero(t, rep.Archived)
	require.False(t, rep.Failed())

	require.Len(t, rep.Errors, 1)
	require.Equal(t, 3, rep.Errors[0].Row)
	require.Contains(t, rep.Errors[0].Suggestions, "Mayor")
}

func TestImportService_PublishesCompletionEvent(t *testing.T) {
	h := newHarness(t)

	var (
		gotEvent  string
		gotReport *importrun.Report
	)
	h.publisher.Subscribe(func(event string, rep *importrun.Report) {
		gotEvent = event
		gotReport = rep
	})

	src := workbook(t, [][]interface{}{
		{"Juan Dela Cruz", "Governor", "province", "Cebu", "Liberal", "2022-06-30", "", "", "", ""},
	})
	rep, err := h.svc.Run(context.Background(), "officials.xlsx", src)
	require.NoError(t, err)

	require.Equal(t, "import.completed", gotEvent)
	require.Same(t, rep, gotReport)
}

func TestImportService_StructuralErrorReturnsNoReport(t *testing.T) {
	h := newHarness(t)

	rep, err := h.svc.Run(context.Background(), "bad.xlsx", bytes.NewReader([]byte("not a workbook")))
	require.Error(t, err)
	require.Nil(t, rep)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"Name", "Position"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{"Juan Dela Cruz", "Governor"}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rep, err = h.svc.Run(context.Background(), "partial.xlsx", buf)
	var missing *tabular.MissingColumnError
	require.ErrorAs(t, err, &missing)
	require.Nil(t, rep)
	require.Empty(t, h.assignments.items, "no rows touched on structural failure")
}

// Re-importing the registry's own export must be a no-op: every row resolves
// to the same politician and the same current assignment.
func TestImportService_ReimportOfExportIsIdempotent(t *testing.T) {
	h := newHarness(t)

	src := workbook(t, [][]interface{}{
		{"Juan Dela Cruz", "Governor", "province", "Cebu", "Liberal", "2022-06-30", "2025-06-30", "https://example.org/juan.jpg", "Three-term governor.", "1970-01-15"},
		{"Maria Clara", "Mayor", "city", "Manila", "Nacionalista", "2022-06-30", "", "", "", ""},
	})
	rep, err := h.svc.Run(context.Background(), "officials.xlsx", src)
	require.NoError(t, err)
	require.Equal(t, 2, rep.Created)

	current, err := h.assignments.CurrentWithNames(context.Background())
	require.NoError(t, err)
	require.Len(t, current, 2)

	f, err := report.NewRegistryExport(current)
	require.NoError(t, err)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rep, err = h.svc.Run(context.Background(), "export.xlsx", buf)
	require.NoError(t, err)
	require.Equal(t, 2, rep.ValidRows)
	require.Zero(t, rep.InvalidRows)
	require.Zero(t, rep.Created, "re-import creates nothing")
	require.Zero(t, rep.Archived, "re-import archives nothing")
	require.Equal(t, 2, rep.Updated)
	require.Len(t, h.politicians.items, 2, "no duplicate politicians")
	require.Len(t, h.assignments.items, 2, "no duplicate assignments")
}

func TestImportService_SuccessionArchivesPredecessor(t *testing.T) {
	h := newHarness(t)

	first := workbook(t, [][]interface{}{
		{"Juan Dela Cruz", "Governor", "province", "Cebu", "Liberal", "2019-06-30", "", "", "", ""},
	})
	_, err := h.svc.Run(context.Background(), "2019.xlsx", first)
	require.NoError(t, err)

	second := workbook(t, [][]interface{}{
		{"Maria Clara", "Governor", "province", "Cebu", "Nacionalista", "2022-06-30", "", "", "", ""},
	})
	rep, err := h.svc.Run(context.Background(), "2022.xlsx", second)
	require.NoError(t, err)
	require.Equal(t, 1, rep.Created)
	require.Equal(t, 1, rep.Archived)

	current, err := h.assignments.CurrentWithNames(context.Background())
	require.NoError(t, err)
	require.Len(t, current, 1)
	require.Equal(t, "Maria Clara", current[0].PoliticianName)
}
