package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/skylink/internal/fsutil"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestSkyPlot_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sky.png")
	err := SkyPlot(path, Options{Title: "ICRS -> Galactic"},
		Series{Name: "ra/dec", Lon: []float64{45, 90}, Lat: []float64{50, -10}},
		Series{Name: "l/b", Lon: []float64{143.1, 210.0}, Lat: []float64{-7.8, -12.3}},
	)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestSaveSkyPlot_MemoryFS(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	err := SaveSkyPlot(mfs, "/plots/icrs/sky.svg", Options{Title: "memory"},
		Series{Name: "ra/dec", Lon: []float64{10, 20}, Lat: []float64{0, 5}},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"/plots/icrs/sky.svg"}, mfs.Files())

	data, err := mfs.ReadFile("/plots/icrs/sky.svg")
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	err = SaveSkyPlot(mfs, "/plots/sky.nope", Options{}, Series{Name: "p", Lon: []float64{1}, Lat: []float64{1}})
	assert.Error(t, err)
	assert.False(t, mfs.Exists("/plots/sky.nope"), "no file is created for an unknown format")
}

func TestWriteSkyPlot_SVG(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSkyPlot(&buf, "SVG", Options{Title: "grid", Width: 4, Height: 2},
		Series{Name: "points", Lon: []float64{0, 180, 359}, Lat: []float64{-45, 0, 45}},
	)
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "<svg"))
}

func TestSkyPlot_Errors(t *testing.T) {
	dir := t.TempDir()

	err := SkyPlot(filepath.Join(dir, "empty.png"), Options{})
	assert.ErrorIs(t, err, ErrNoSeries)

	err = SkyPlot(filepath.Join(dir, "empty.png"), Options{}, Series{Name: "none"})
	assert.ErrorIs(t, err, ErrNoSeries)

	err = SkyPlot(filepath.Join(dir, "bad.png"), Options{}, Series{Name: "ragged", Lon: []float64{1, 2}, Lat: []float64{1}})
	assert.Error(t, err)

	var buf bytes.Buffer
	err = WriteSkyPlot(&buf, "bmp-ish", Options{}, Series{Name: "p", Lon: []float64{1}, Lat: []float64{1}})
	assert.Error(t, err)
}

func TestOptionsSize(t *testing.T) {
	w, h := Options{}.size()
	assert.Greater(t, float64(w), float64(h))

	w2, h2 := Options{Width: 2, Height: 2}.size()
	assert.Equal(t, w2, h2)
}
