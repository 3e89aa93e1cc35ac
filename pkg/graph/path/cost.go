package path

import (
	"math"

	"github.com/natevvv/astar-routing/pkg/graph"
	"github.com/natevvv/astar-routing/pkg/slice"
	"github.com/paulmach/orb/geo"
)

// Heuristic estimates the cost contribution of the arc origin -> target.
type Heuristic func(origin, target graph.NodeId) float64

// ZeroHeuristic turns the search into plain Dijkstra.
func ZeroHeuristic(origin, target graph.NodeId) float64 { return 0 }

// GeodesicHeuristic returns h(target) - h(origin), h being the great circle
// distance to goal in meters. Summed along a path the contributions telescope
// to h(node) - h(start), so a stored distance is the path cost plus the
// remaining estimate, shifted by the constant h(start).
// The arc costs of g must not be smaller than the great circle distance of
// their end points.
func GeodesicHeuristic(g graph.Graph, goal graph.NodeId) Heuristic {
	goalPoint := g.GetNode(goal)
	return func(origin, target graph.NodeId) float64 {
		return geo.Distance(g.GetNode(target), goalPoint) - geo.Distance(g.GetNode(origin), goalPoint)
	}
}

// UnderestimatedArcs counts the arcs of g that are cheaper than the great
// circle distance of their end points. If there are any, GeodesicHeuristic
// is not consistent on g and A* may return a longer path than Dijkstra.
func UnderestimatedArcs(g graph.Graph) int {
	count := 0
	for from := 0; from < g.NodeCount(); from++ {
		for _, arc := range g.GetArcsFrom(from) {
			if arc.Cost < geo.Distance(g.GetNode(from), g.GetNode(arc.To))*(1-underestimateTolerance) {
				count++
			}
		}
	}
	return count
}

// relative slack for costs that were rounded when the graph was written
const underestimateTolerance = 1e-6

// ArcCosts implements graph.CostProvider for the arcs of a geographic graph.
type ArcCosts struct {
	g         graph.Graph
	heuristic Heuristic
}

func NewArcCosts(g graph.Graph, heuristic Heuristic) *ArcCosts {
	if heuristic == nil {
		heuristic = ZeroHeuristic
	}
	return &ArcCosts{g: g, heuristic: heuristic}
}

// RealCost returns the arc cost, +Inf if there is no such arc.
func (c *ArcCosts) RealCost(origin, target graph.NodeId) float64 {
	cost, ok := graph.ArcCost(c.g, origin, target)
	if !ok {
		return math.Inf(1)
	}
	return cost
}

func (c *ArcCosts) HeuristicCost(origin, target graph.NodeId) float64 {
	return c.heuristic(origin, target)
}

// PathLength sums the arc costs along path. It returns -1 for an empty path
// and +Inf if two consecutive nodes are not connected.
func PathLength(g graph.Graph, path []graph.NodeId) float64 {
	if len(path) == 0 {
		return -1
	}
	length := 0.0
	slice.Pairs(path, func(from, to graph.NodeId) {
		cost, ok := graph.ArcCost(g, from, to)
		if !ok {
			cost = math.Inf(1)
		}
		length += cost
	})
	return length
}
