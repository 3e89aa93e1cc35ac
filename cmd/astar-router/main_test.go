package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/natevvv/astar-routing/internal/config"
	"github.com/natevvv/astar-routing/pkg/graph"
	"github.com/natevvv/astar-routing/pkg/graph/path"
	"github.com/natevvv/astar-routing/pkg/routing"
	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

const testFmi = `4
6
#Nodes
0 48.70 9.10
1 48.70 9.11
2 48.71 9.11
3 48.80 9.30
#Edges
0 1 800
0 2 2500
1 0 800
1 2 1200
2 0 2500
2 1 1200
`

const testOsm = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="48.70" lon="9.10" version="1"/>
  <node id="2" lat="48.70" lon="9.11" version="1"/>
  <node id="3" lat="48.71" lon="9.11" version="1"/>
  <way id="10" version="1">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="residential"/>
  </way>
</osm>
`

func TestMain(m *testing.M) {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	os.Exit(m.Run())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(filename, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"DEBUG", slog.LevelDebug, false},
		{"Error", slog.LevelError, false},
		{"", slog.LevelInfo, true},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := parseLogLevel(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseLogLevel(%q) expected error", tt.input)
			}
		} else {
			if err != nil {
				t.Errorf("parseLogLevel(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		}
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		input   string
		want    orb.Point
		wantErr bool
	}{
		{"48.78,9.18", orb.Point{9.18, 48.78}, false},
		{" -33.9 , 18.4 ", orb.Point{18.4, -33.9}, false},
		{"48.78", orb.Point{}, true},
		{"48.78,9.18,3", orb.Point{}, true},
		{"north,9.18", orb.Point{}, true},
		{"91,0", orb.Point{}, true},
		{"0,181", orb.Point{}, true},
	}

	for _, tt := range tests {
		got, err := parseCoordinate(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseCoordinate(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseCoordinate(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("parseCoordinate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRouteCommand(t *testing.T) {
	fmiFile := writeFile(t, "graph.fmi", testFmi)

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			var out bytes.Buffer
			root := newRootCmd()
			root.SetOut(&out)
			root.SetArgs([]string{"route", "--graph", fmiFile, "--log-level", "error",
				"--from", "48.70,9.10", "--to", "48.71,9.11", "--output", format})
			if err := root.Execute(); err != nil {
				t.Fatal(err)
			}

			var result routeOutput
			var err error
			if format == "json" {
				err = json.Unmarshal(out.Bytes(), &result)
			} else {
				err = yaml.Unmarshal(out.Bytes(), &result)
			}
			if err != nil {
				t.Fatalf("decoding %s output: %v\n%s", format, err, out.String())
			}
			if !result.Reachable || result.Length != 2000 || result.Navigator != "astar" {
				t.Errorf("unexpected route %+v", result)
			}
			if len(result.Nodes) != 3 || len(result.Waypoints) != 3 {
				t.Errorf("unexpected path %v %v", result.Nodes, result.Waypoints)
			}
		})
	}
}

func TestRouteCommandErrors(t *testing.T) {
	fmiFile := writeFile(t, "graph.fmi", testFmi)
	tests := [][]string{
		{"route", "--graph", fmiFile, "--from", "48.70", "--to", "48.71,9.11"},
		{"route", "--graph", fmiFile, "--from", "48.70,9.10", "--to", "48.71,9.11", "--navigator", "bidirectional"},
		{"route", "--graph", fmiFile, "--from", "48.70,9.10", "--to", "48.71,9.11", "--output", "xml"},
		{"route", "--graph", fmiFile, "--from", "48.70,9.10"},
		{"route", "--log-format", "xml", "--from", "48.70,9.10", "--to", "48.71,9.11"},
	}
	for _, args := range tests {
		root := newRootCmd()
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(args)
		if err := root.Execute(); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestWriteRouteGeoJSON(t *testing.T) {
	g, err := graph.NewAdjacencyArrayFromFmiString(testFmi)
	if err != nil {
		t.Fatal(err)
	}
	router, err := routing.NewRouter(g, path.NavigatorReference, logger)
	if err != nil {
		t.Fatal(err)
	}
	route, err := router.ComputeRoute(orb.Point{9.10, 48.70}, orb.Point{9.30, 48.80})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := writeRoute(&out, path.NavigatorReference, route, "geojson"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"FeatureCollection"`) || strings.Contains(out.String(), `"LineString"`) {
		t.Errorf("unexpected geojson for an unreachable route:\n%s", out.String())
	}
}

func TestImportAndLoad(t *testing.T) {
	osmFile := writeFile(t, "extract.osm", testOsm)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "graph.db")
	fmiOut := filepath.Join(dir, "graph.fmi")

	ctx := context.Background()
	if err := importGraph(ctx, osmFile, dbPath, fmiOut); err != nil {
		t.Fatal(err)
	}

	fromFmi, err := graph.NewAdjacencyArrayFromFmiFile(fmiOut)
	if err != nil {
		t.Fatal(err)
	}
	if fromFmi.NodeCount() != 3 || fromFmi.ArcCount() != 4 {
		t.Errorf("fmi graph has %v nodes and %v arcs, want 3 and 4", fromFmi.NodeCount(), fromFmi.ArcCount())
	}

	graphFile = ""
	fromDb, err := loadGraph(ctx, &config.Config{Graph: config.GraphConfig{DB: dbPath}})
	if err != nil {
		t.Fatal(err)
	}
	if fromDb.AsString() != fromFmi.AsString() {
		t.Errorf("database and fmi graph differ:\n%v\n%v", fromDb.AsString(), fromFmi.AsString())
	}
}

func TestImportUnsupportedFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "graph.db")
	if err := importGraph(context.Background(), "roads.json", dbPath, ""); err == nil {
		t.Error("expected an error for an unsupported file")
	}
}

func TestTargetFile(t *testing.T) {
	targets := []target{
		{Origin: 0, Destination: 2, Length: 2000, Hops: 3},
		{Origin: 0, Destination: 3, Length: -1, Hops: 0},
		{Origin: 1, Destination: 0, Length: 800.25, Hops: 2},
	}
	filename := filepath.Join(t.TempDir(), "targets.txt")
	if err := writeTargetFile(targets, filename); err != nil {
		t.Fatal(err)
	}
	read, err := readTargetFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if len(read) != len(targets) {
		t.Fatalf("read %d targets, want %d", len(read), len(targets))
	}
	for i := range targets {
		if read[i] != targets[i] {
			t.Errorf("target %d = %+v, want %+v", i, read[i], targets[i])
		}
	}

	if _, err := readTargets(strings.NewReader("# origin destination length hops\n\n0 x 1 2\n")); err == nil {
		t.Error("expected an error for a malformed line")
	}
}

func TestBenchmark(t *testing.T) {
	g, err := graph.NewAdjacencyArrayFromFmiString(testFmi)
	if err != nil {
		t.Fatal(err)
	}
	targets, err := createTargets(25, path.NewDijkstra(g), rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range path.Navigators {
		navigator, err := path.NewNavigator(name, g, logger)
		if err != nil {
			t.Fatal(err)
		}
		result, err := benchmark(navigator, targets)
		if err != nil {
			t.Fatal(err)
		}
		if result.completed != len(targets) || !result.valid() {
			t.Errorf("%s: %+v", name, result)
		}
	}

	// a wrong reference length is reported
	targets[0].Length += 1
	navigator, _ := path.NewNavigator(path.NavigatorAStar, g, logger)
	result, err := benchmark(navigator, targets)
	if err != nil {
		t.Fatal(err)
	}
	if result.valid() || len(result.invalidLengths) != 1 {
		t.Errorf("expected one invalid length, got %+v", result)
	}

	var out bytes.Buffer
	result.print(&out)
	if !strings.Contains(out.String(), "1/25 invalid path lengths.") {
		t.Errorf("unexpected report:\n%s", out.String())
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "astar-router dev\n" {
		t.Errorf("version output = %q", out.String())
	}
}
