package road

import (
	"fmt"

	"github.com/natevvv/astar-routing/pkg/graph"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// BuildGraph creates a graph with one node per distinct point and one arc per
// consecutive pair of points of a segment. The arc cost is the great circle
// distance in meters, so it never undercuts the geodesic heuristic.
func BuildGraph(segments []*Segment) (*graph.AdjacencyListGraph, error) {
	g := graph.NewAdjacencyListGraph()

	pointToNode := make(map[orb.Point]graph.NodeId)
	nodeOf := func(p orb.Point) graph.NodeId {
		if id, exists := pointToNode[p]; exists {
			return id
		}
		id := g.AddNode(p)
		pointToNode[p] = id
		return id
	}

	for _, segment := range segments {
		for i := 0; i < len(segment.Points)-1; i++ {
			from := nodeOf(segment.Points[i])
			to := nodeOf(segment.Points[i+1])
			if from == to {
				continue
			}

			weight := geo.Distance(segment.Points[i], segment.Points[i+1])
			if segment.Direction != Backward {
				if _, err := g.AddArc(from, to, weight); err != nil {
					return nil, fmt.Errorf("segment %d: %w", segment.ID, err)
				}
			}
			if segment.Direction != Forward {
				if _, err := g.AddArc(to, from, weight); err != nil {
					return nil, fmt.Errorf("segment %d: %w", segment.ID, err)
				}
			}
		}
	}

	return g, nil
}
