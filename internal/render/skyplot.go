// Package render draws static sky plots of converted coordinates.
package render

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/skylink/internal/fsutil"
)

// ErrNoSeries is returned when there is nothing to draw.
var ErrNoSeries = errors.New("render: no points to plot")

// Series is one named set of longitude/latitude points in degrees.
type Series struct {
	Name string
	Lon  []float64
	Lat  []float64
}

// Options controls the plot size in inches.
type Options struct {
	Title  string
	Width  float64
	Height float64
}

func (o Options) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 8
	}
	if h <= 0 {
		h = 4
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

// newSkyPlot builds the plot with longitude on [0, 360] and latitude on [-90, 90].
func newSkyPlot(opts Options, series []Series) (*plot.Plot, error) {
	total := 0
	for _, s := range series {
		if len(s.Lon) != len(s.Lat) {
			return nil, fmt.Errorf("render: series %q has %d longitudes and %d latitudes", s.Name, len(s.Lon), len(s.Lat))
		}
		total += len(s.Lon)
	}
	if total == 0 {
		return nil, ErrNoSeries
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Longitude (deg)"
	p.Y.Label.Text = "Latitude (deg)"
	p.X.Min, p.X.Max = 0, 360
	p.Y.Min, p.Y.Max = -90, 90
	p.Add(plotter.NewGrid())

	for i, s := range series {
		if len(s.Lon) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(s.Lon))
		for j := range s.Lon {
			pts[j] = plotter.XY{X: s.Lon[j], Y: s.Lat[j]}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("render: series %q: %w", s.Name, err)
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Shape = plotutil.Shape(i)
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
		p.Legend.Add(s.Name, sc)
	}
	p.Legend.Top = true
	p.Legend.XOffs = -vg.Points(4)
	return p, nil
}

// SkyPlot saves series to path on the local filesystem. The format follows
// the file extension (png, svg, pdf, ...).
func SkyPlot(path string, opts Options, series ...Series) error {
	return SaveSkyPlot(fsutil.OSFileSystem{}, path, opts, series...)
}

// SaveSkyPlot is SkyPlot on fsys. Missing parent directories are created.
func SaveSkyPlot(fsys fsutil.FileSystem, path string, opts Options, series ...Series) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	wt, err := skyPlotWriter(format, opts, series)
	if err != nil {
		return err
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("render: save %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// WriteSkyPlot writes series to out in the given format (e.g. "png", "svg").
func WriteSkyPlot(out io.Writer, format string, opts Options, series ...Series) error {
	wt, err := skyPlotWriter(format, opts, series)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(out)
	return err
}

func skyPlotWriter(format string, opts Options, series []Series) (io.WriterTo, error) {
	p, err := newSkyPlot(opts, series)
	if err != nil {
		return nil, err
	}
	w, h := opts.size()
	wt, err := p.WriterTo(w, h, strings.ToLower(format))
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return wt, nil
}
