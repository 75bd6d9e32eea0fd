// Package report renders evaluation curves as CSV tables and PNG charts.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/multierr"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var ErrSeriesLength = errors.New("series length differs from x")

type Series struct {
	Name   string
	Values []float64
}

// Curve is a set of named series sharing one x axis, such as accuracy by
// training size or by pruning threshold.
type Curve struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Series []Series
}

func (c Curve) validate() error {
	for _, s := range c.Series {
		if len(s.Values) != len(c.X) {
			return fmt.Errorf("%s: %d values, %d x: %w", s.Name, len(s.Values), len(c.X), ErrSeriesLength)
		}
	}
	return nil
}

// WriteCSV writes one row per x value; the header is XLabel then the series
// names.
func (c Curve) WriteCSV(path string) (err error) {
	if err := c.validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	w := csv.NewWriter(f)
	header := []string{c.XLabel}
	for _, s := range c.Series {
		header = append(header, s.Name)
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, x := range c.X {
		rec := []string{strconv.FormatFloat(x, 'g', -1, 64)}
		for _, s := range c.Series {
			rec = append(rec, strconv.FormatFloat(s.Values[i], 'f', 6, 64))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// SavePNG draws every series as a line with points. Metrics are plotted on
// a fixed [0, 1] y axis.
func (c Curve) SavePNG(path string) error {
	if err := c.validate(); err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Y.Min = 0
	p.Y.Max = 1

	var lines []any
	for _, s := range c.Series {
		pts := make(plotter.XYs, len(c.X))
		for i := range c.X {
			pts[i].X, pts[i].Y = c.X[i], s.Values[i]
		}
		lines = append(lines, s.Name, pts)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// CurveSizes returns at most points strictly increasing training sizes from
// lo up to total, spaced linearly or geometrically. The last size is total.
func CurveSizes(total, points, lo int, logScale bool) []int {
	if total <= 0 {
		return nil
	}
	points = max(points, 2)
	lo = max(lo, 1)
	if lo > total {
		lo = max(1, total/2)
	}
	var sizes []int
	last := 0
	for i := range points {
		frac := float64(i) / float64(points-1)
		s := float64(lo) + frac*float64(total-lo)
		if logScale {
			s = float64(lo) * math.Pow(float64(total)/float64(lo), frac)
		}
		n := min(int(math.Round(s)), total)
		if n > last {
			sizes = append(sizes, n)
			last = n
		}
	}
	if last != total {
		sizes = append(sizes, total)
	}
	return sizes
}
