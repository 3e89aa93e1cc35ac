package osmimport

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/natevvv/astar-routing/pkg/graph"
	"github.com/natevvv/astar-routing/pkg/road"
)

const testOsm = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="48.70" lon="9.10" version="1"/>
  <node id="2" lat="48.70" lon="9.11" version="1"/>
  <node id="3" lat="48.71" lon="9.11" version="1"/>
  <node id="4" lat="48.72" lon="9.11" version="1"/>
  <way id="10" version="1">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="primary"/>
    <tag k="name" v="Hauptstraße"/>
  </way>
  <way id="11" version="1">
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="highway" v="motorway"/>
  </way>
  <way id="12" version="1">
    <nd ref="1"/>
    <nd ref="4"/>
    <tag k="highway" v="footway"/>
  </way>
  <way id="13" version="1">
    <nd ref="4"/>
    <nd ref="99"/>
    <tag k="highway" v="residential"/>
  </way>
</osm>
`

func TestImportXml(t *testing.T) {
	ri := NewRoadImporter("inline.osm", nil)
	if err := ri.ImportXml(context.Background(), strings.NewReader(testOsm)); err != nil {
		t.Fatal(err)
	}

	roads := ri.Roads()
	if len(roads) != 2 {
		t.Fatalf("imported %v roads, want 2", len(roads))
	}
	if roads[0].ID != 10 || roads[0].Type != road.Primary || roads[0].Direction != road.BothWays || len(roads[0].Points) != 3 {
		t.Errorf("unexpected first road %+v", roads[0])
	}
	if roads[0].Tags["name"] != "Hauptstraße" {
		t.Errorf("tags were not kept: %v", roads[0].Tags)
	}
	if roads[1].ID != 11 || roads[1].Type != road.Motorway || roads[1].Direction != road.Forward {
		t.Errorf("unexpected second road %+v", roads[1])
	}
	if ri.skipped != 1 {
		t.Errorf("skipped %v ways, want 1", ri.skipped)
	}
	if p := roads[0].Points[0]; p.Lon() != 9.10 || p.Lat() != 48.70 {
		t.Errorf("first point is %v", p)
	}

	g, err := road.BuildGraph(roads)
	if err != nil {
		t.Fatal(err)
	}
	// 1<->2, 2<->3, 3->4
	if g.NodeCount() != 4 || g.ArcCount() != 5 {
		t.Errorf("graph has %v nodes and %v arcs, want 4 and 5", g.NodeCount(), g.ArcCount())
	}
}

const gapOsm = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="48.70" lon="9.10" version="1"/>
  <node id="3" lat="48.71" lon="9.11" version="1"/>
  <node id="4" lat="48.72" lon="9.11" version="1"/>
  <node id="5" lat="48.73" lon="9.11" version="1"/>
  <node id="6" lat="48.73" lon="9.12" version="1"/>
  <way id="20" version="1">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="highway" v="residential"/>
  </way>
  <way id="21" version="1">
    <nd ref="5"/>
    <nd ref="6"/>
    <tag k="highway" v="motorway"/>
    <tag k="oneway" v="-1"/>
  </way>
</osm>
`

func TestImportXmlSplitsAtMissingNodes(t *testing.T) {
	ri := NewRoadImporter("gap.osm", nil)
	if err := ri.ImportXml(context.Background(), strings.NewReader(gapOsm)); err != nil {
		t.Fatal(err)
	}

	roads := ri.Roads()
	if len(roads) != 2 {
		t.Fatalf("imported %v roads, want 2", len(roads))
	}
	// node 1 is cut off by the missing node 2, only 3-4 remains
	if roads[0].ID != 20 || len(roads[0].Points) != 2 {
		t.Errorf("unexpected first road %+v", roads[0])
	}
	if roads[1].ID != 21 || roads[1].Direction != road.Backward {
		t.Errorf("unexpected second road %+v", roads[1])
	}
	if ri.skipped != 1 {
		t.Errorf("skipped %v ways, want 1", ri.skipped)
	}

	g, err := road.BuildGraph(roads)
	if err != nil {
		t.Fatal(err)
	}
	// 3<->4, 6->5
	if g.NodeCount() != 4 || g.ArcCount() != 3 {
		t.Fatalf("graph has %v nodes and %v arcs, want 4 and 3", g.NodeCount(), g.ArcCount())
	}
	for from := 0; from < g.NodeCount(); from++ {
		for _, arc := range g.GetArcsFrom(from) {
			if g.GetNode(from).Lat() == 48.70 || g.GetNode(arc.To).Lat() == 48.70 {
				t.Errorf("arc %v -> %v touches node 1 across the gap", from, arc.To)
			}
		}
	}
	// node ids follow the order of first appearance: 3, 4, 5, 6
	if _, ok := graph.ArcCost(g, 2, 3); ok {
		t.Errorf("arc 5 -> 6 exists against oneway=-1")
	}
	if _, ok := graph.ArcCost(g, 3, 2); !ok {
		t.Errorf("arc 6 -> 5 is missing")
	}
}

func TestImportFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "extract.osm")
	if err := os.WriteFile(filename, []byte(testOsm), 0o600); err != nil {
		t.Fatal(err)
	}
	ri := NewRoadImporter(filename, nil)
	if err := ri.Import(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(ri.Roads()) != 2 {
		t.Errorf("imported %v roads, want 2", len(ri.Roads()))
	}
}

func TestImportUnsupportedFile(t *testing.T) {
	ri := NewRoadImporter("roads.json", nil)
	if err := ri.Import(context.Background()); err == nil {
		t.Errorf("expected an error for an unsupported file")
	}
}

func TestImportMissingPbf(t *testing.T) {
	ri := NewRoadImporter(filepath.Join(t.TempDir(), "missing.osm.pbf"), nil)
	if err := ri.Import(context.Background()); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
