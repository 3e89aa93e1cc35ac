package graph

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

type NodeId = int

// Topology yields the outgoing neighbors of a node. It must be deterministic
// for the duration of a search.
type Topology[N comparable] interface {
	Neighbors(node N) []N
}

// CostProvider yields the real cost and the heuristic cost between two
// adjacent nodes.
type CostProvider[N comparable] interface {
	RealCost(origin, target N) float64
	HeuristicCost(origin, target N) float64
}

// Graph is a geographic graph: every node carries a coordinate and every arc
// a non-negative cost in meters.
type Graph interface {
	Topology[NodeId]
	GetNode(id NodeId) orb.Point
	GetNodes() []orb.Point
	GetArcsFrom(id NodeId) []Arc
	NodeCount() int
	ArcCount() int
	AsString() string
}

type DynamicGraph interface {
	Graph
	AddNode(p orb.Point) NodeId
	AddArc(from, to NodeId, cost float64) (bool, error)
}

// ArcCost returns the cost of the arc from -> to.
func ArcCost(g Graph, from, to NodeId) (float64, bool) {
	for _, arc := range g.GetArcsFrom(from) {
		if arc.To == to {
			return arc.Cost, true
		}
	}
	return 0, false
}

func neighborsOf(arcs []Arc) []NodeId {
	neighbors := make([]NodeId, len(arcs))
	for i, arc := range arcs {
		neighbors[i] = arc.To
	}
	return neighbors
}

func GraphAsString(g Graph) string {
	var sb strings.Builder

	// write number of nodes and number of edges
	sb.WriteString(fmt.Sprintf("%v\n", g.NodeCount()))
	sb.WriteString(fmt.Sprintf("%v\n", g.ArcCount()))

	sb.WriteString("#Nodes\n")
	// list all nodes structured as "id lat lon"
	for i := 0; i < g.NodeCount(); i++ {
		node := g.GetNode(i)
		sb.WriteString(fmt.Sprintf("%v %v %v\n", i, node.Lat(), node.Lon()))
	}

	sb.WriteString("#Edges\n")
	// list all edges structured as "fromId targetId cost"
	for i := 0; i < g.NodeCount(); i++ {
		for _, arc := range g.GetArcsFrom(i) {
			sb.WriteString(fmt.Sprintf("%v %v %v\n", i, arc.Destination(), arc.Cost))
		}
	}
	return sb.String()
}
