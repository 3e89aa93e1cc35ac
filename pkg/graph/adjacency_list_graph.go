package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

var (
	ErrNodeOutOfRange = errors.New("node out of range")
	ErrInvalidArcCost = errors.New("invalid arc cost")
)

// Implementation for dynamic graphs
type AdjacencyListGraph struct {
	Nodes    []orb.Point // The nodes of the graph
	Edges    [][]Arc     // The Arcs of the graph. The first slice specifies to which node the arc belongs
	arcCount int         // the number of arcs in the graph
}

func NewAdjacencyListGraph() *AdjacencyListGraph {
	return &AdjacencyListGraph{
		Nodes: make([]orb.Point, 0),
		Edges: make([][]Arc, 0),
	}
}

// Return the node for the given id
func (alg *AdjacencyListGraph) GetNode(id NodeId) orb.Point {
	if id < 0 || id >= alg.NodeCount() {
		panic(fmt.Sprintf("NodeId %d is not contained in the graph.", id))
	}
	return alg.Nodes[id]
}

// Return all nodes of the graph
func (alg *AdjacencyListGraph) GetNodes() []orb.Point {
	return alg.Nodes
}

// Get the arcs for the given node
func (alg *AdjacencyListGraph) GetArcsFrom(id NodeId) []Arc {
	if id < 0 || id >= alg.NodeCount() {
		panic(fmt.Sprintf("NodeId %d is not contained in the graph.", id))
	}
	return alg.Edges[id]
}

func (alg *AdjacencyListGraph) Neighbors(id NodeId) []NodeId {
	return neighborsOf(alg.GetArcsFrom(id))
}

// Return the number of total nodes
func (alg *AdjacencyListGraph) NodeCount() int {
	return len(alg.Nodes)
}

// Return the number of total arcs
func (alg *AdjacencyListGraph) ArcCount() int {
	return alg.arcCount
}

func (alg *AdjacencyListGraph) AsString() string {
	return GraphAsString(alg)
}

// Add a node to the graph and return its id
func (alg *AdjacencyListGraph) AddNode(n orb.Point) NodeId {
	alg.Nodes = append(alg.Nodes, n)
	alg.Edges = append(alg.Edges, make([]Arc, 0))
	return len(alg.Nodes) - 1
}

// Add an arc to the graph, going from source to target with the given cost.
// A parallel arc is collapsed into the cheaper one; the return value reports
// whether the graph changed.
func (alg *AdjacencyListGraph) AddArc(from, to NodeId, cost float64) (bool, error) {
	if from < 0 || to < 0 || from >= alg.NodeCount() || to >= alg.NodeCount() {
		return false, fmt.Errorf("%w: arc %v -> %v", ErrNodeOutOfRange, from, to)
	}
	if cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return false, fmt.Errorf("%w: arc %v -> %v has cost %v", ErrInvalidArcCost, from, to, cost)
	}

	arcs := alg.Edges[from]
	for i := range arcs {
		arc := &arcs[i]
		if to == arc.To {
			if cost < arc.Cost {
				arc.Cost = cost
				return true, nil
			}
			return false, nil
		}
	}

	alg.Edges[from] = append(alg.Edges[from], MakeArc(to, cost))
	alg.arcCount++
	return true, nil
}
