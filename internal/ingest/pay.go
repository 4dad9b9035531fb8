package ingest

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"cspspay/internal/cleaning"
	"cspspay/internal/dataset"
	ierrors "cspspay/internal/errors"
)

// ParsePayWorkbook reads the organisation-by-grade pay sheet into records.
// The naSentinels tokens mark suppressed or unavailable salaries and parse
// to missing.
func ParsePayWorkbook(path, sheet string, naSentinels []string, logger *slog.Logger) ([]dataset.PayRecord, error) {
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
		"organisation", "departmental group", "organisation type", "year", "grade", "median salary",
	})
	if err != nil {
		return nil, err
	}

	var records []dataset.PayRecord
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}

		year, err := cleaning.ParseYear(cell(row, columns["year"]))
		if err != nil {
			logger.Warn("skipping pay row with unparseable year",
				"row", i+1,
				"year", cell(row, columns["year"]),
			)
			continue
		}

		salary, err := cleaning.ParseNumeric(cell(row, columns["median salary"]), naSentinels)
		if err != nil {
			logger.Warn("skipping pay row with unparseable salary",
				"row", i+1,
				"salary", cell(row, columns["median salary"]),
			)
			continue
		}

		records = append(records, dataset.PayRecord{
			Organisation: cell(row, columns["organisation"]),
			DeptGroup:    cell(row, columns["departmental group"]),
			OrgType:      cell(row, columns["organisation type"]),
			Year:         year,
			Grade:        cell(row, columns["grade"]),
			MedianSalary: salary,
		})
	}

	logger.Info("parsed pay workbook",
		"path", path,
		"sheet", sheet,
		"records", len(records),
	)
	return records, nil
}

// mapColumns finds the header row containing every wanted column name
// (case-insensitive) and returns its index and the column positions.
func mapColumns(rows [][]string, wanted []string) (int, map[string]int, error) {
	for i, row := range rows {
		if len(row) < len(wanted) {
			continue
		}
		columns := make(map[string]int, len(wanted))
		for j, header := range row {
			key := strings.ToLower(strings.TrimSpace(header))
			if _, taken := columns[key]; !taken {
				columns[key] = j
			}
		}
		found := true
		for _, w := range wanted {
			if _, ok := columns[w]; !ok {
				found = false
				break
			}
		}
		if found {
			return i, columns, nil
		}
	}
	return 0, nil, ierrors.Newf(ierrors.CodePrecondition,
		"no header row containing columns %s", strings.Join(wanted, ", "))
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
