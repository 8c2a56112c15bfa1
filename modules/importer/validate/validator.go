package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openpol/registry/modules/importer/catalog"
	"github.com/openpol/registry/modules/importer/domain/importrun"
	"github.com/openpol/registry/modules/registry/domain/entities/jurisdiction"
)

// DateLayout is the only accepted calendar date form.
const DateLayout = "2006-01-02"

const defaultSuggestionLimit = 3

type Validator struct {
	suggestionLimit int
}

type Option func(*Validator)

func WithSuggestionLimit(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.suggestionLimit = n
		}
	}
}

func New(opts ...Option) *Validator {
	v := &Validator{suggestionLimit: defaultSuggestionLimit}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks one row against the catalog. It never fails outright:
// every field is checked independently so a single pass surfaces every
// problem the row has, and the row is valid iff the returned error list is
// empty.
func (v *Validator) Validate(ctx context.Context, row importrun.ImportRow, cat *catalog.Catalog) (importrun.ValidatedRow, []importrun.ValidationError) {
	var errs []importrun.ValidationError
	fail := func(field, message, value string, suggestions []string) {
		errs = append(errs, importrun.ValidationError{
			Row:         row.Number,
			Field:       field,
			Message:     message,
			Value:       value,
			Suggestions: suggestions,
		})
	}

	out := importrun.ValidatedRow{
		Number:   row.Number,
		PhotoURL: strings.TrimSpace(row.PhotoURL),
		ShortBio: strings.TrimSpace(row.ShortBio),
	}

	name := strings.TrimSpace(row.Name)
	if name == "" {
		fail(importrun.FieldName, "Name is required", row.Name, nil)
	}
	out.Name = name

	if pos := strings.TrimSpace(row.Position); pos == "" {
		fail(importrun.FieldPosition, "Position is required", row.Position, nil)
	} else if match, ok := cat.FindPosition(pos); ok {
		out.PositionID = match.ID()
	} else {
		fail(
			importrun.FieldPosition,
			fmt.Sprintf("Position '%s' not found", pos),
			pos,
			Suggest(pos, cat.PositionNames(), v.suggestionLimit),
		)
	}

	v.validateJurisdiction(ctx, row, cat, &out, fail)

	if pty := strings.TrimSpace(row.Party); pty == "" {
		fail(importrun.FieldParty, "Party is required", row.Party, nil)
	} else if match, ok := cat.FindParty(pty); ok {
		out.PartyID = match.ID()
	} else {
		fail(
			importrun.FieldParty,
			fmt.Sprintf("Party '%s' not found", pty),
			pty,
			Suggest(pty, cat.PartyNames(), v.suggestionLimit),
		)
	}

	termStart, ok := v.validateDate(importrun.FieldTermStart, row.TermStart, true, fail)
	if ok && termStart != nil {
		out.TermStart = *termStart
	}
	termEnd, ok := v.validateDate(importrun.FieldTermEnd, row.TermEnd, false, fail)
	if ok && termEnd != nil {
		if termStart != nil && termEnd.Before(*termStart) {
			fail(
				importrun.FieldTermEnd,
				"Term end must not be before term start",
				strings.TrimSpace(row.TermEnd),
				nil,
			)
		} else {
			out.TermEnd = termEnd
		}
	}
	if birthDate, ok := v.validateDate(importrun.FieldBirthDate, row.BirthDate, false, fail); ok {
		out.BirthDate = birthDate
	}

	return out, errs
}

func (v *Validator) validateJurisdiction(
	ctx context.Context,
	row importrun.ImportRow,
	cat *catalog.Catalog,
	out *importrun.ValidatedRow,
	fail func(field, message, value string, suggestions []string),
) {
	rawType := strings.TrimSpace(row.JurisdictionType)
	if rawType == "" {
		fail(importrun.FieldJurisdictionType, "Jurisdiction type is required", row.JurisdictionType, jurisdiction.TypeNames())
		return
	}

	t, ok := jurisdiction.ParseType(rawType)
	if !ok {
		fail(
			importrun.FieldJurisdictionType,
			fmt.Sprintf("Jurisdiction type '%s' is not valid", rawType),
			rawType,
			jurisdiction.TypeNames(),
		)
		return
	}

	if t == jurisdiction.TypeNational {
		out.Jurisdiction = jurisdiction.NationalRef()
		return
	}

	name := strings.TrimSpace(row.JurisdictionName)
	if name == "" {
		fail(
			importrun.FieldJurisdictionName,
			fmt.Sprintf("Jurisdiction name is required for type '%s'", t),
			row.JurisdictionName,
			nil,
		)
		return
	}

	ref, err := cat.LookupJurisdiction(ctx, t, name)
	switch {
	case errors.Is(err, jurisdiction.ErrNotFound):
		// The directory has no fuzzy matching, so no suggestions here.
		fail(
			importrun.FieldJurisdictionName,
			fmt.Sprintf("Jurisdiction '%s' not found for type '%s'", name, t),
			name,
			nil,
		)
	case err != nil:
		fail(
			importrun.FieldJurisdictionName,
			fmt.Sprintf("Jurisdiction lookup failed: %v", err),
			name,
			nil,
		)
	default:
		out.Jurisdiction = ref
	}
}

// validateDate parses a YYYY-MM-DD field. The bool result is false when a
// validation error was recorded; a nil time with true means the optional
// field was simply absent.
func (v *Validator) validateDate(
	field, raw string,
	required bool,
	fail func(field, message, value string, suggestions []string),
) (*time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		if required {
			fail(field, fmt.Sprintf("%s is required (expected YYYY-MM-DD)", fieldLabel(field)), raw, nil)
			return nil, false
		}
		return nil, true
	}

	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		fail(field, fmt.Sprintf("Invalid date '%s' (expected YYYY-MM-DD)", value), value, nil)
		return nil, false
	}
	return &parsed, true
}

func fieldLabel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
