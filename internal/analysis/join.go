// Package analysis drives the full pipeline for each analysis variant:
// validate, clean, reconcile, pivot, deflate, join, regress, report.
package analysis

import (
	"fmt"
	"sort"

	ierrors "cspspay/internal/errors"
	"cspspay/internal/pivot"
	"cspspay/internal/regression"
)

// Join inner-joins two wide tables on the key of their shared axis,
// merging the metric columns of both sides into one row. Both tables must
// have the same axis; a metric label present on both sides is a
// precondition violation rather than a silent overwrite. Row attributes
// (organisation type) are taken from the left side.
func Join(left, right *pivot.WideTable, axis pivot.Axis) (*pivot.WideTable, error) {
	if left.Axis != axis || right.Axis != axis {
		return nil, ierrors.Newf(ierrors.CodeUsage,
			"join axis %s requires both tables on that axis (got %s and %s)",
			axis, left.Axis, right.Axis)
	}
	for _, label := range left.Labels {
		for _, other := range right.Labels {
			if label == other {
				return nil, ierrors.Newf(ierrors.CodePrecondition,
					"metric label %q present on both sides of join", label)
			}
		}
	}

	type key struct {
		org  string
		year int
	}
	keyOf := func(r pivot.Row) key {
		k := key{}
		switch axis {
		case pivot.AxisByOrganisation:
			k.year = r.Year
		case pivot.AxisByYear:
			k.org = r.Organisation
		default:
			k.org = r.Organisation
			k.year = r.Year
		}
		return k
	}

	rightByKey := make(map[key]pivot.Row, len(right.Rows))
	for _, r := range right.Rows {
		rightByKey[keyOf(r)] = r
	}

	joined := &pivot.WideTable{Axis: axis}
	for _, l := range left.Rows {
		r, ok := rightByKey[keyOf(l)]
		if !ok {
			continue
		}
		values := make(map[string]float64, len(l.Values)+len(r.Values))
		for label, v := range l.Values {
			values[label] = v
		}
		for label, v := range r.Values {
			values[label] = v
		}
		joined.Rows = append(joined.Rows, pivot.Row{
			Organisation: l.Organisation,
			Year:         l.Year,
			OrgType:      l.OrgType,
			Values:       values,
		})
	}

	if len(joined.Rows) == 0 {
		return nil, ierrors.New(ierrors.CodeEmptyResult, "join produced no rows")
	}

	labels := append(append([]string{}, left.Labels...), right.Labels...)
	sort.Strings(labels)
	joined.Labels = labels
	return joined, nil
}

// PanelObservations extracts (entity, period, x, y) tuples from a
// panel-axis table for fixed-effects estimation.
func PanelObservations(t *pivot.WideTable, xLabel, yLabel string) ([]regression.PanelObservation, error) {
	if t.Axis != pivot.AxisPanel {
		return nil, ierrors.Newf(ierrors.CodeUsage,
			"panel observations require a panel-axis table, got %s", t.Axis)
	}
	obs := make([]regression.PanelObservation, len(t.Rows))
	for i, row := range t.Rows {
		obs[i] = regression.PanelObservation{
			Entity: row.Organisation,
			Period: row.Year,
			X:      row.Value(xLabel),
			Y:      row.Value(yLabel),
		}
	}
	return obs, nil
}

// FilterYear returns a copy of the table keeping only rows for the given
// year. Used to restrict a time-series table to one cross-section before a
// regression.
func FilterYear(t *pivot.WideTable, year int) *pivot.WideTable {
	out := &pivot.WideTable{Axis: t.Axis, Labels: t.Labels}
	for _, row := range t.Rows {
		if row.Year == year {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

func describeRows(t *pivot.WideTable) string {
	return fmt.Sprintf("%d rows x %d labels", len(t.Rows), len(t.Labels))
}
