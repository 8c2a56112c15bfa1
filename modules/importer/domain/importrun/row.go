package importrun

import (
	"time"

	"github.com/google/uuid"

	"github.com/openpol/registry/modules/registry/domain/entities/jurisdiction"
)

// Normalized header names of the import sheet.
const (
	FieldName             = "name"
	FieldPosition         = "position"
	FieldJurisdictionType = "jurisdiction type"
	FieldJurisdictionName = "jurisdiction name"
	FieldParty            = "party"
	FieldTermStart        = "term start"
	FieldTermEnd          = "term end"
	FieldPhotoURL         = "photo url"
	FieldShortBio         = "short bio"
	FieldBirthDate        = "birth date"
)

// RawRow is one spreadsheet line keyed by normalized header name. Number is
// the 1-based source row (the header is row 1, so data rows start at 2).
type RawRow struct {
	Number int
	Values map[string]string
}

func (r RawRow) Get(field string) string {
	return r.Values[field]
}

// ImportRow is the typed but still unvalidated view of a RawRow.
type ImportRow struct {
	Number           int
	Name             string
	Position         string
	JurisdictionType string
	JurisdictionName string
	Party            string
	TermStart        string
	TermEnd          string
	PhotoURL         string
	ShortBio         string
	BirthDate        string
}

func FromRaw(r RawRow) ImportRow {
	return ImportRow{
		Number:           r.Number,
		Name:             r.Get(FieldName),
		Position:         r.Get(FieldPosition),
		JurisdictionType: r.Get(FieldJurisdictionType),
		JurisdictionName: r.Get(FieldJurisdictionName),
		Party:            r.Get(FieldParty),
		TermStart:        r.Get(FieldTermStart),
		TermEnd:          r.Get(FieldTermEnd),
		PhotoURL:         r.Get(FieldPhotoURL),
		ShortBio:         r.Get(FieldShortBio),
		BirthDate:        r.Get(FieldBirthDate),
	}
}

// ValidationError describes one field-level problem on one row.
type ValidationError struct {
	Row         int
	Field       string
	Message     string
	Value       string
	Suggestions []string
}

// ValidatedRow is an ImportRow resolved against the reference catalog.
type ValidatedRow struct {
	Number       int
	Name         string
	PositionID   uuid.UUID
	PartyID      uuid.UUID
	Jurisdiction jurisdiction.Ref
	TermStart    time.Time
	TermEnd      *time.Time
	BirthDate    *time.Time
	PhotoURL     string
	ShortBio     string
}
