package assignment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/openpol/registry/modules/registry/domain/entities/jurisdiction"
)

var ErrNotFound = errors.New("assignment not found")

// CurrentRow is a current assignment joined with human-readable names,
// shaped for the registry export.
type CurrentRow struct {
	PoliticianName   string
	PositionName     string
	JurisdictionType jurisdiction.Type
	JurisdictionName string
	PartyName        string
	TermStart        time.Time
	TermEnd          *time.Time
	PhotoURL         string
	ShortBio         string
}

type Repository interface {
	// GetCurrent returns the current holder for a (position, jurisdiction)
	// key. Inside a transaction the row is locked for update.
	GetCurrent(ctx context.Context, positionID uuid.UUID, ref jurisdiction.Ref) (Assignment, error)
	Create(ctx context.Context, a Assignment) (Assignment, error)
	Update(ctx context.Context, a Assignment) error
	// Close archives an assignment: is_current=false, term_end backfilled.
	Close(ctx context.Context, id uuid.UUID, termEnd time.Time) error
	// CurrentWithNames lists every current assignment with resolved names,
	// ordered by position then jurisdiction.
	CurrentWithNames(ctx context.Context) ([]CurrentRow, error)
}
