package tabular

import (
	"errors"
	"fmt"
	"io"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/openpol/registry/modules/importer/domain/importrun"
)

var (
	ErrNoSheets   = errors.New("workbook has no sheets")
	ErrNoDataRows = errors.New("workbook has no data rows")
)

// MissingColumnError reports a required header absent from the sheet.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q is missing", e.Column)
}

// RequiredColumns are the headers every import sheet must carry, after
// trimming and lower-casing. Order of columns in the sheet is irrelevant.
var RequiredColumns = []string{
	importrun.FieldName,
	importrun.FieldPosition,
	importrun.FieldJurisdictionType,
	importrun.FieldJurisdictionName,
	importrun.FieldParty,
	importrun.FieldTermStart,
}

var OptionalColumns = []string{
	importrun.FieldTermEnd,
	importrun.FieldPhotoURL,
	importrun.FieldShortBio,
	importrun.FieldBirthDate,
}

// Read parses the first sheet of an XLSX workbook into ordered raw rows.
// Header matching is case- and whitespace-insensitive but exact. Rows whose
// first cell is blank are skipped as separators. Performs no semantic
// validation of cell values.
func Read(r io.Reader) ([]importrun.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, gerrors.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, gerrors.Wrap(err, "read sheet")
	}
	if len(rows) < 2 {
		return nil, ErrNoDataRows
	}

	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(header))
		if name == "" {
			continue
		}
		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}
	for _, required := range RequiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, &MissingColumnError{Column: required}
		}
	}

	known := append(append([]string{}, RequiredColumns...), OptionalColumns...)

	out := make([]importrun.RawRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		values := make(map[string]string, len(known))
		for _, field := range known {
			idx, ok := columns[field]
			if !ok || idx >= len(row) {
				continue
			}
			values[field] = strings.TrimSpace(row[idx])
		}
		out = append(out, importrun.RawRow{Number: i + 2, Values: values})
	}

	if len(out) == 0 {
		return nil, ErrNoDataRows
	}
	return out, nil
}
