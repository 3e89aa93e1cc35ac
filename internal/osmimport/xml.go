package osmimport

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
)

func (ri *RoadImporter) importXmlFile(ctx context.Context) error {
	file, err := os.Open(ri.filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return ri.ImportXml(ctx, file)
}

// ImportXml reads an OSM XML document. Nodes have to precede the ways which
// reference them, as they do in files written by the OSM API and osmosis.
func (ri *RoadImporter) ImportXml(ctx context.Context, r io.Reader) error {
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			ri.addNode(int64(o.ID), o.Lat, o.Lon)
		case *osm.Way:
			tags := make(map[string]string, len(o.Tags))
			for _, tag := range o.Tags {
				tags[tag.Key] = tag.Value
			}
			nodeIDs := make([]int64, len(o.Nodes))
			for i, wayNode := range o.Nodes {
				nodeIDs[i] = int64(wayNode.ID)
			}
			ri.addWay(int64(o.ID), tags, nodeIDs)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanning osm xml: %w", err)
	}
	return nil
}
