package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/skylink/internal/httputil"
	"github.com/banshee-data/skylink/internal/plugin"
)

// defaultGrid returns a coarse lon/lat grid used when no points are given.
func defaultGrid() (lon, lat []float64) {
	for b := -60.0; b <= 60; b += 30 {
		for l := 0.0; l < 360; l += 30 {
			lon = append(lon, l)
			lat = append(lat, b)
		}
	}
	return lon, lat
}

func parseFloats(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		out[i] = v
	}
	return out, nil
}

func scatterData(lon, lat []float64) []opts.ScatterData {
	data := make([]opts.ScatterData, len(lon))
	for i := range lon {
		data[i] = opts.ScatterData{Value: []interface{}{lon[i], lat[i]}}
	}
	return data
}

// handleSkyChart renders input points and their converted positions (HTML)
// for a two-component celestial helper.
// Query: helper, direction, lon and lat as comma-separated degrees.
func (s *Server) handleSkyChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	q := r.URL.Query()

	name := q.Get("helper")
	if name == "" {
		name = "ICRS_to_Galactic"
	}
	h, err := s.registry.Helper(name)
	if err != nil {
		writeError(w, err)
		return
	}
	if h.Arity() != 2 {
		httputil.BadRequest(w, fmt.Sprintf("helper %s is not a two-component sky helper", name))
		return
	}
	dir, err := plugin.ParseDirection(q.Get("direction"))
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	lon, err := parseFloats(q.Get("lon"))
	if err != nil {
		httputil.BadRequest(w, "Invalid 'lon' parameter: "+err.Error())
		return
	}
	lat, err := parseFloats(q.Get("lat"))
	if err != nil {
		httputil.BadRequest(w, "Invalid 'lat' parameter: "+err.Error())
		return
	}
	if lon == nil && lat == nil {
		lon, lat = defaultGrid()
	}

	out, err := s.registry.Apply(name, dir, [][]float64{lon, lat})
	if err != nil {
		writeError(w, err)
		return
	}

	inLabels, outLabels := h.Labels()
	if dir == plugin.Backwards {
		inLabels, outLabels = outLabels, inLabels
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Sky conversion", Width: "1000px", Height: "560px"}),
		charts.WithTitleOpts(opts.Title{Title: h.Display(), Subtitle: fmt.Sprintf("direction=%s points=%d", dir, len(lon))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: 360, Name: "longitude (deg)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -90, Max: 90, Name: "latitude (deg)", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries(strings.Join(inLabels, "/"), scatterData(lon, lat), charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	scatter.AddSeries(strings.Join(outLabels, "/"), scatterData(out[0], out[1]), charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
