package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/banshee-data/skylink/internal/api"
	"github.com/banshee-data/skylink/internal/db"
	"github.com/banshee-data/skylink/internal/link"
	"github.com/banshee-data/skylink/internal/plugin"
	"github.com/banshee-data/skylink/internal/render"
	"github.com/banshee-data/skylink/internal/rpc"
	"github.com/banshee-data/skylink/internal/security"
	"github.com/banshee-data/skylink/internal/version"
)

const remoteTimeout = 10 * time.Second

func cmdHelpers(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("helpers", stderr)
	configPath := fs.String("config", "", "Path to a JSON config file")
	category := fs.String("category", "", "Only list helpers in this category")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := loadEnv(*configPath)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tINPUTS\tOUTPUTS\tDESCRIPTION")
	for _, h := range e.registry.Helpers() {
		if *category != "" && h.Category() != *category {
			continue
		}
		in, out := h.Labels()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", h.Name(), strings.Join(in, ", "), strings.Join(out, ", "), h.Display())
	}
	return tw.Flush()
}

func cmdLinks(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("links", stderr)
	configPath := fs.String("config", "", "Path to a JSON config file")
	helper := fs.String("helper", "", "Helper name (see 'skylink helpers')")
	in := fs.String("in", "", "Comma-separated input component labels (default: helper labels)")
	out := fs.String("out", "", "Comma-separated output component labels (default: helper labels)")
	save := fs.String("save", "", "Save the links as a named session in the configured database")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := loadEnv(*configPath)
	if err != nil {
		return err
	}
	h, err := e.registry.Helper(*helper)
	if err != nil {
		return err
	}

	inLabels, outLabels := h.Labels()
	if l := splitLabels(*in); l != nil {
		inLabels = l
	}
	if l := splitLabels(*out); l != nil {
		outLabels = l
	}
	links, err := h.Links(link.NewComponentIDs(inLabels...), link.NewComponentIDs(outLabels...))
	if err != nil {
		return err
	}
	for _, l := range links {
		fmt.Fprintln(stdout, l)
	}

	if *save == "" {
		return nil
	}
	database, err := db.NewDB(e.cfg.GetDBPath())
	if err != nil {
		return err
	}
	defer database.Close()
	session, err := db.NewSessionStore(database).SaveSession(*save, links)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "saved session %s (%d links)\n", session.SessionID, session.LinkCount)
	return nil
}

func cmdConvert(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("convert", stderr)
	configPath := fs.String("config", "", "Path to a JSON config file")
	helper := fs.String("helper", "", "Helper name (see 'skylink helpers')")
	backwards := fs.Bool("backwards", false, "Convert from the helper's outputs to its inputs")
	values := fs.String("values", "", `Points as "a,b;c,d" (one component per helper input)`)
	remote := fs.String("remote", "", "Base URL of a skylink HTTP server to convert with")
	grpcAddr := fs.String("grpc", "", "Address of a skylink gRPC server to convert with")
	verbose := fs.Bool("v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := loadEnv(*configPath)
	if err != nil {
		return err
	}
	setVerbose(*verbose, e.cfg.GetVerbose())

	columns, err := parsePoints(*values)
	if err != nil {
		return err
	}
	dir := plugin.Forwards
	if *backwards {
		dir = plugin.Backwards
	}

	var out [][]float64
	switch {
	case *remote != "":
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		resp, err := api.NewClient(*remote, nil).Convert(ctx, api.ConvertRequest{Helper: *helper, Direction: string(dir), Values: columns})
		if err != nil {
			return err
		}
		out = resp.Values
	case *grpcAddr != "":
		conn, err := grpc.NewClient(*grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return fmt.Errorf("connect to %s: %w", *grpcAddr, err)
		}
		defer conn.Close()
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		if out, err = rpc.NewClient(conn).Convert(ctx, *helper, dir, columns); err != nil {
			return err
		}
	default:
		if out, err = e.registry.Apply(*helper, dir, columns); err != nil {
			return err
		}
	}

	var labels []string
	if h, err := e.registry.Helper(*helper); err == nil {
		in, outLabels := h.Labels()
		labels = outLabels
		if dir == plugin.Backwards {
			labels = in
		}
	}
	return writeColumns(stdout, labels, out)
}

func writeColumns(w io.Writer, labels []string, columns [][]float64) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(labels) == len(columns) {
		fmt.Fprintln(tw, strings.Join(labels, "\t"))
	}
	if len(columns) > 0 {
		for i := range columns[0] {
			row := make([]string, len(columns))
			for j := range columns {
				row[j] = fmt.Sprintf("%.8f", columns[j][i])
			}
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	}
	return tw.Flush()
}

func cmdPlot(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("plot", stderr)
	configPath := fs.String("config", "", "Path to a JSON config file")
	helper := fs.String("helper", "ICRS_to_Galactic", "Two-component helper name")
	backwards := fs.Bool("backwards", false, "Convert from the helper's outputs to its inputs")
	values := fs.String("values", "", `Points as "lon,lat;lon,lat" (default: a 30 degree grid)`)
	out := fs.String("out", "sky.png", "Output file; format follows the extension")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := loadEnv(*configPath)
	if err != nil {
		return err
	}
	if err := security.ValidateExportPath(*out); err != nil {
		return err
	}
	h, err := e.registry.Helper(*helper)
	if err != nil {
		return err
	}
	if h.Arity() != 2 {
		return fmt.Errorf("helper %s is not a two-component sky helper", *helper)
	}

	var columns [][]float64
	if *values == "" {
		columns = gridColumns()
	} else if columns, err = parsePoints(*values); err != nil {
		return err
	}
	dir := plugin.Forwards
	if *backwards {
		dir = plugin.Backwards
	}
	converted, err := e.registry.Apply(*helper, dir, columns)
	if err != nil {
		return err
	}

	inLabels, outLabels := h.Labels()
	if dir == plugin.Backwards {
		inLabels, outLabels = outLabels, inLabels
	}
	width, height := e.cfg.GetPlotSize()
	err = render.SkyPlot(*out, render.Options{Title: h.Display(), Width: width, Height: height},
		render.Series{Name: strings.Join(inLabels, "/"), Lon: columns[0], Lat: columns[1]},
		render.Series{Name: strings.Join(outLabels, "/"), Lon: converted[0], Lat: converted[1]},
	)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s (%d points)\n", filepath.Clean(*out), len(columns[0]))
	return nil
}

// gridColumns returns a 30 degree lon/lat grid between latitudes -60 and 60.
func gridColumns() [][]float64 {
	var lon, lat []float64
	for b := -60.0; b <= 60; b += 30 {
		for l := 0.0; l < 360; l += 30 {
			lon = append(lon, l)
			lat = append(lat, b)
		}
	}
	return [][]float64{lon, lat}
}

func cmdMigrate(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("migrate", stderr)
	configPath := fs.String("config", "", "Path to a JSON config file")
	dbPath := fs.String("db", "", "Database path (default: db_path from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := loadEnv(*configPath)
	if err != nil {
		return err
	}
	path := *dbPath
	if path == "" {
		path = e.cfg.GetDBPath()
	}
	return db.RunMigrateCommand(stdout, fs.Args(), path)
}

func cmdVersion(stdout io.Writer) error {
	_, err := fmt.Fprintln(stdout, version.String())
	return err
}
