package assignment

import (
	"time"

	"github.com/google/uuid"

	"github.com/openpol/registry/modules/registry/domain/entities/jurisdiction"
)

// Assignment links a politician to a position within a jurisdiction for a
// bounded time range. For a given (position, jurisdiction) key at most one
// assignment is current at any time.
type Assignment struct {
	id           uuid.UUID
	politicianID uuid.UUID
	positionID   uuid.UUID
	jurisdiction jurisdiction.Ref
	partyID      uuid.UUID
	termStart    time.Time
	termEnd      *time.Time
	isCurrent    bool
	createdAt    time.Time
	updatedAt    time.Time
}

func New(
	politicianID uuid.UUID,
	positionID uuid.UUID,
	ref jurisdiction.Ref,
	partyID uuid.UUID,
	termStart time.Time,
	termEnd *time.Time,
) Assignment {
	return Assignment{
		politicianID: politicianID,
		positionID:   positionID,
		jurisdiction: ref,
		partyID:      partyID,
		termStart:    termStart,
		termEnd:      termEnd,
		isCurrent:    true,
	}
}

func Hydrate(
	id uuid.UUID,
	politicianID uuid.UUID,
	positionID uuid.UUID,
	ref jurisdiction.Ref,
	partyID uuid.UUID,
	termStart time.Time,
	termEnd *time.Time,
	isCurrent bool,
	createdAt time.Time,
	updatedAt time.Time,
) Assignment {
	return Assignment{
		id:           id,
		politicianID: politicianID,
		positionID:   positionID,
		jurisdiction: ref,
		partyID:      partyID,
		termStart:    termStart,
		termEnd:      termEnd,
		isCurrent:    isCurrent,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (a Assignment) ID() uuid.UUID { return a.id }

func (a Assignment) PoliticianID() uuid.UUID { return a.politicianID }

func (a Assignment) PositionID() uuid.UUID { return a.positionID }

func (a Assignment) Jurisdiction() jurisdiction.Ref { return a.jurisdiction }

func (a Assignment) PartyID() uuid.UUID { return a.partyID }

func (a Assignment) TermStart() time.Time { return a.termStart }

func (a Assignment) TermEnd() *time.Time { return a.termEnd }

func (a Assignment) IsCurrent() bool { return a.isCurrent }

func (a Assignment) CreatedAt() time.Time { return a.createdAt }

func (a Assignment) UpdatedAt() time.Time { return a.updatedAt }

func (a Assignment) IsZero() bool { return a.id == uuid.Nil }

// WithTerms returns a copy with the mutable fields replaced. Used when an
// import row updates the sitting holder in place.
func (a Assignment) WithTerms(partyID uuid.UUID, termStart time.Time, termEnd *time.Time) Assignment {
	out := a
	out.partyID = partyID
	out.termStart = termStart
	out.termEnd = termEnd
	return out
}

// Closed returns a copy archived with the given term end.
func (a Assignment) Closed(termEnd time.Time) Assignment {
	out := a
	out.isCurrent = false
	out.termEnd = &termEnd
	return out
}
