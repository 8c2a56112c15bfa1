package reconcile

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/openpol/registry/modules/importer/domain/importrun"
	"github.com/openpol/registry/modules/registry/domain/aggregates/assignment"
	"github.com/openpol/registry/modules/registry/domain/aggregates/politician"
)

// Outcome counts the registry mutations an import batch produced.
type Outcome struct {
	Created  int
	Updated  int
	Archived int
}

// TxRunner runs fn atomically. In production this is composables.InTx; tests
// substitute a pass-through.
type TxRunner func(ctx context.Context, fn func(context.Context) error) error

// Engine applies validated import rows to the officeholder registry while
// preserving the one-current-holder-per-(position, jurisdiction) invariant.
type Engine struct {
	assignments assignment.Repository
	politicians politician.Repository
	inTx        TxRunner
	log         *logrus.Logger
}

func New(
	assignments assignment.Repository,
	politicians politician.Repository,
	inTx TxRunner,
	log *logrus.Logger,
) *Engine {
	return &Engine{
		assignments: assignments,
		politicians: politicians,
		inTx:        inTx,
		log:         log,
	}
}

// Reconcile processes rows in input order, one transaction per row, so a
// later row observes the committed effects of an earlier one: two rows
// assigning different politicians to the same key within one batch produce
// exactly one archive and leave the second politician current. A failed row
// rolls back wholesale (no partial archive-without-create) and is reported
// as a retryable failure; the rest of the batch proceeds.
func (e *Engine) Reconcile(ctx context.Context, rows []importrun.ValidatedRow) (Outcome, []importrun.ReconciliationFailure) {
	var (
		outcome  Outcome
		failures []importrun.ReconciliationFailure
	)

	for _, row := range rows {
		err := e.inTx(ctx, func(txCtx context.Context) error {
			return e.reconcileRow(txCtx, row, &outcome)
		})
		if err != nil {
			if e.log != nil {
				e.log.WithError(err).WithField("row", row.Number).Warn("reconciliation failed")
			}
			failures = append(failures, importrun.ReconciliationFailure{
				Row:     row.Number,
				Message: err.Error(),
			})
		}
	}

	return outcome, failures
}

func (e *Engine) reconcileRow(ctx context.Context, row importrun.ValidatedRow, outcome *Outcome) error {
	pol, err := e.resolvePolitician(ctx, row)
	if err != nil {
		return err
	}

	current, err := e.assignments.GetCurrent(ctx, row.PositionID, row.Jurisdiction)
	switch {
	case errors.Is(err, assignment.ErrNotFound):
		// No sitting holder: fresh assignment.
		if _, err := e.assignments.Create(ctx, assignment.New(
			pol.ID(), row.PositionID, row.Jurisdiction, row.PartyID, row.TermStart, row.TermEnd,
		)); err != nil {
			return err
		}
		outcome.Created++
		return nil

	case err != nil:
		return err

	case current.PoliticianID() == pol.ID():
		// Same politician: update in place, never a second history row.
		if err := e.assignments.Update(ctx, current.WithTerms(row.PartyID, row.TermStart, row.TermEnd)); err != nil {
			return err
		}
		outcome.Updated++
		return nil

	default:
		// Different politician: close the sitting holder's record before the
		// new one becomes current. Both writes share this row's transaction.
		termEnd := row.TermStart.AddDate(0, 0, -1)
		if err := e.assignments.Close(ctx, current.ID(), termEnd); err != nil {
			return err
		}
		if _, err := e.assignments.Create(ctx, assignment.New(
			pol.ID(), row.PositionID, row.Jurisdiction, row.PartyID, row.TermStart, row.TermEnd,
		)); err != nil {
			return err
		}
		outcome.Archived++
		outcome.Created++
		return nil
	}
}

func (e *Engine) resolvePolitician(ctx context.Context, row importrun.ValidatedRow) (politician.Politician, error) {
	pol, err := e.politicians.FindByIdentity(ctx, row.Name, row.BirthDate)
	if errors.Is(err, politician.ErrNotFound) {
		return e.politicians.Create(ctx, politician.New(row.Name, row.BirthDate).WithProfile(row.PhotoURL, row.ShortBio))
	}
	if err != nil {
		return politician.Politician{}, err
	}

	if row.PhotoURL != pol.PhotoURL() || row.ShortBio != pol.ShortBio() {
		updated := pol.WithProfile(row.PhotoURL, row.ShortBio)
		if err := e.politicians.Update(ctx, updated); err != nil {
			return politician.Politician{}, err
		}
		return updated, nil
	}
	return pol, nil
}
