// Package plot renders scatter plots of wide-table columns to PNG files.
// It is a presentation collaborator: the analysis supplies exactly the
// columns to draw and is not concerned with rendering details.
package plot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"cspspay/internal/dataset"
	"cspspay/internal/pivot"
	"cspspay/internal/regression"
)

// HueMode selects how points are grouped into colours.
type HueMode int

const (
	// HueNone draws all points in one colour.
	HueNone HueMode = iota
	// HueOrgType colours points by the preserved organisation type column.
	HueOrgType
	// HueYear colours points by year.
	HueYear
)

// ScatterOptions configures a single scatter plot.
type ScatterOptions struct {
	Title   string
	Hue     HueMode
	BestFit bool
}

// Scatter draws the (xLabel, yLabel) columns of t as a scatter plot and
// saves it as a PNG at path. Rows with a missing value in either column are
// skipped.
func Scatter(t *pivot.WideTable, xLabel, yLabel, path string, opts ScatterOptions) error {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	groups := groupPoints(t, xLabel, yLabel, opts.Hue)
	if len(groups) == 0 {
		return fmt.Errorf("no plottable points for %s vs %s", yLabel, xLabel)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		sc, err := plotter.NewScatter(groups[name])
		if err != nil {
			return fmt.Errorf("build scatter for group %q: %w", name, err)
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(sc)
		if opts.Hue != HueNone {
			p.Legend.Add(name, sc)
		}
	}

	if opts.BestFit {
		if err := addBestFit(p, t, xLabel, yLabel); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create plot directory: %w", err)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}

// PairPlot draws one scatter per x label against a common y label, saved
// under dir with the given file prefix.
func PairPlot(t *pivot.WideTable, yLabel string, xLabels []string, dir, prefix string, opts ScatterOptions) error {
	for _, xLabel := range xLabels {
		name := fmt.Sprintf("%s_%s.png", prefix, slug(xLabel))
		o := opts
		if o.Title == "" {
			o.Title = fmt.Sprintf("%s vs %s", yLabel, xLabel)
		}
		if err := Scatter(t, xLabel, yLabel, filepath.Join(dir, name), o); err != nil {
			return err
		}
	}
	return nil
}

func groupPoints(t *pivot.WideTable, xLabel, yLabel string, hue HueMode) map[string]plotter.XYs {
	groups := make(map[string]plotter.XYs)
	for _, row := range t.Rows {
		x := row.Value(xLabel)
		y := row.Value(yLabel)
		if dataset.IsMissing(x) || dataset.IsMissing(y) {
			continue
		}
		var name string
		switch hue {
		case HueOrgType:
			name = row.OrgType
		case HueYear:
			name = strconv.Itoa(row.Year)
		}
		groups[name] = append(groups[name], plotter.XY{X: x, Y: y})
	}
	return groups
}

func addBestFit(p *plot.Plot, t *pivot.WideTable, xLabel, yLabel string) error {
	xs := t.Column(xLabel)
	res := regression.SimpleOLS(xs, t.Column(yLabel))
	x0, y0, x1, y1, ok := regression.BestFitLine(xs, res)
	if !ok {
		return nil
	}
	line, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y1}})
	if err != nil {
		return fmt.Errorf("build best-fit line: %w", err)
	}
	line.LineStyle.Width = vg.Points(1)
	p.Add(line)
	return nil
}

// slug turns a metric label into a file-name-safe fragment.
func slug(label string) string {
	out := make([]rune, 0, len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ' || r == '/' || r == '-':
			out = append(out, '_')
		}
	}
	return string(out)
}
