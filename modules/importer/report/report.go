package report

import (
	"fmt"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/openpol/registry/modules/importer/domain/importrun"
	"github.com/openpol/registry/modules/importer/validate"
	"github.com/openpol/registry/modules/registry/domain/aggregates/assignment"
)

const (
	errorSheet  = "Errors"
	exportSheet = "Officeholders"

	// Summary block occupies rows 1-6; the error table starts below it.
	errorHeaderRow = 7
)

// NewErrorReport renders an import run into a workbook: a summary block
// followed by one row per validation error and reconciliation failure.
func NewErrorReport(rep *importrun.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, errorSheet); err != nil {
		return nil, gerrors.Wrap(err, "rename sheet")
	}

	summary := [][]interface{}{
		{"File", rep.Filename},
		{"Imported At", rep.StartedAt.Format(time.RFC3339)},
		{"Total Rows", rep.TotalRows},
		{"Valid Rows", rep.ValidRows},
		{"Invalid Rows", rep.InvalidRows},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(errorSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	header := []interface{}{"Row", "Field", "Error", "Value", "Suggestions"}
	cell, err := excelize.CoordinatesToCellName(1, errorHeaderRow)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(errorSheet, cell, &header); err != nil {
		return nil, err
	}

	line := errorHeaderRow
	for _, e := range rep.Errors {
		line++
		row := []interface{}{e.Row, e.Field, e.Message, e.Value, strings.Join(e.Suggestions, ", ")}
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(errorSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	for _, fl := range rep.Failures {
		line++
		row := []interface{}{fl.Row, "reconciliation", fmt.Sprintf("Registry update failed: %s", fl.Message), "", ""}
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(errorSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// ExportColumns is the header of the registry export, matching the import
// sheet so an unchanged export re-imports as a no-op.
var ExportColumns = []interface{}{
	"Name", "Position", "Jurisdiction Type", "Jurisdiction Name", "Party",
	"Term Start", "Term End", "Photo URL", "Short Bio",
}

// NewRegistryExport renders the current officeholders into a workbook that
// round-trips through the tabular reader and row validator without changes.
func NewRegistryExport(rows []assignment.CurrentRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, exportSheet); err != nil {
		return nil, gerrors.Wrap(err, "rename sheet")
	}

	if err := f.SetSheetRow(exportSheet, "A1", &ExportColumns); err != nil {
		return nil, err
	}

	for i, r := range rows {
		termEnd := ""
		if r.TermEnd != nil {
			termEnd = r.TermEnd.Format(validate.DateLayout)
		}
		row := []interface{}{
			r.PoliticianName,
			r.PositionName,
			string(r.JurisdictionType),
			r.JurisdictionName,
			r.PartyName,
			r.TermStart.Format(validate.DateLayout),
			termEnd,
			r.PhotoURL,
			r.ShortBio,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
