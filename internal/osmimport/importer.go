// Package osmimport reads the road network of an OpenStreetMap extract.
// Protobuf extracts (.osm.pbf) are decoded with qedus/osmpbf, XML extracts
// (.osm) with paulmach/osm.
package osmimport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/natevvv/astar-routing/pkg/road"
	"github.com/paulmach/orb"
)

type RoadImporter struct {
	filename string
	logger   *slog.Logger
	roads    []*road.Segment
	nodes    map[int64]orb.Point
	skipped  int // ways with unknown node references, split at the gaps
}

func NewRoadImporter(filename string, logger *slog.Logger) *RoadImporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RoadImporter{
		filename: filename,
		logger:   logger,
		roads:    make([]*road.Segment, 0),
		nodes:    make(map[int64]orb.Point),
	}
}

// Import reads the file, choosing the decoder by its extension.
func (ri *RoadImporter) Import(ctx context.Context) error {
	var err error
	switch {
	case strings.HasSuffix(ri.filename, ".pbf"):
		err = ri.importPbf()
	case strings.HasSuffix(ri.filename, ".osm"), strings.HasSuffix(ri.filename, ".xml"):
		err = ri.importXmlFile(ctx)
	default:
		return fmt.Errorf("unsupported osm file %q (use .osm.pbf or .osm)", ri.filename)
	}
	if err != nil {
		return err
	}
	ri.logger.Info("imported roads", "file", ri.filename, "nodes", len(ri.nodes), "roads", len(ri.roads), "skipped", ri.skipped)
	return nil
}

func (ri *RoadImporter) Roads() []*road.Segment {
	return ri.roads
}

func (ri *RoadImporter) addNode(id int64, lat, lon float64) {
	ri.nodes[id] = orb.Point{lon, lat}
}

// addWay stores the way as road segments if it is tagged as a drivable road.
// A way is split at node references missing from the extract, and only runs
// of at least two known points are kept.
func (ri *RoadImporter) addWay(id int64, tags map[string]string, nodeIDs []int64) {
	roadType := road.ParseRoadType(tags["highway"])
	if roadType == road.Unknown {
		return
	}
	direction := road.ParseDirection(roadType, tags)

	points := make([]orb.Point, 0, len(nodeIDs))
	flush := func() {
		if len(points) < 2 {
			points = points[:0]
			return
		}
		ri.roads = append(ri.roads, &road.Segment{
			ID:        id,
			Type:      roadType,
			Tags:      tags,
			Direction: direction,
			Points:    points,
		})
		points = make([]orb.Point, 0, len(nodeIDs))
	}

	incomplete := false
	for _, nodeID := range nodeIDs {
		point, ok := ri.nodes[nodeID]
		if !ok {
			incomplete = true
			flush()
			continue
		}
		points = append(points, point)
	}
	flush()
	if incomplete {
		ri.skipped++
	}
}
