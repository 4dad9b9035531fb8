// Package ingest reads the two source workbooks into long-format records.
// Sheets are located by name, the header row is discovered dynamically and
// columns are mapped by header text, so modest layout drift in the working
// files does not break the pipeline.
package ingest

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"cspspay/internal/cleaning"
	"cspspay/internal/dataset"
	ierrors "cspspay/internal/errors"
)

// ParseSurveyWorkbook reads the survey organisation sheet into records.
// Blank values parse to missing; rows with an unparseable year are skipped
// with a warning.
func ParseSurveyWorkbook(path, sheet string, logger *slog.Logger) ([]dataset.SurveyRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, ierrors.Newf(ierrors.CodeSourceUnavailable, "open workbook %s: %v", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	headerRow, columns, err := mapColumns(rows, []string{
		"organisation", "departmental group", "organisation type", "year", "section", "label", "value",
	})
	if err != nil {
		return nil, err
	}

	var records []dataset.SurveyRecord
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}

		year, err := cleaning.ParseYear(cell(row, columns["year"]))
		if err != nil {
			logger.Warn("skipping survey row with unparseable year",
				"row", i+1,
				"year", cell(row, columns["year"]),
			)
			continue
		}

		value, err := cleaning.ParseNumeric(cell(row, columns["value"]), nil)
		if err != nil {
			logger.Warn("skipping survey row with unparseable value",
				"row", i+1,
				"value", cell(row, columns["value"]),
			)
			continue
		}

		records = append(records, dataset.SurveyRecord{
			Organisation: cell(row, columns["organisation"]),
			DeptGroup:    cell(row, columns["departmental group"]),
			OrgType:      cell(row, columns["organisation type"]),
			Year:         year,
			Section:      cell(row, columns["section"]),
			Label:        cell(row, columns["label"]),
			Value:        value,
		})
	}

	logger.Info("parsed survey workbook",
		"path", path,
		"sheet", sheet,
		"records", len(records),
	)
	return records, nil
}
