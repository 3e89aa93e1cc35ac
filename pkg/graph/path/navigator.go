package path

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/natevvv/astar-routing/pkg/graph"
)

var ErrUnknownNode = errors.New("unknown node")

type Navigator interface {
	GetPath(origin, destination graph.NodeId) []graph.NodeId               // Get the path of the previous computation, origin and destination included. Empty if there is none
	ComputeShortestPath(origin, destination graph.NodeId) (float64, error) // Compute the shortest path from the origin to the destination and return its length, -1 if there is none
	GetSearchSpace() []graph.NodeId                                        // Returns the nodes which were settled by the previous computation
	GetPqPops() int                                                        // Returns the amount of priority queue pops which were performed during the search
	GetEdgeRelaxations() int                                               // Get the number of relaxed edges
	GetGraph() graph.Graph                                                 // Get the used graph
}

// Navigator names understood by NewNavigator.
const (
	NavigatorAStar     = "astar"
	NavigatorDijkstra  = "dijkstra"
	NavigatorReference = "reference"
)

var Navigators = []string{NavigatorAStar, NavigatorDijkstra, NavigatorReference}

// NewNavigator creates the navigator called name. The astar navigator
// expects arc costs of at least the great circle distance of their end
// points, see UnderestimatedArcs.
func NewNavigator(name string, g graph.Graph, logger *slog.Logger) (Navigator, error) {
	switch name {
	case NavigatorAStar:
		return NewAStarNavigator(g, true, logger), nil
	case NavigatorDijkstra:
		return NewAStarNavigator(g, false, logger), nil
	case NavigatorReference:
		return NewDijkstra(g), nil
	default:
		return nil, fmt.Errorf("unknown navigator %q", name)
	}
}

// AStarNavigator runs AStarSearch on a geographic graph. Without heuristic
// the search degrades to Dijkstra.
type AStarNavigator struct {
	g            graph.Graph
	useHeuristic bool
	logger       *slog.Logger

	origin, destination graph.NodeId
	path                []graph.NodeId
	search              *AStarSearch[graph.NodeId]
}

func NewAStarNavigator(g graph.Graph, useHeuristic bool, logger *slog.Logger) *AStarNavigator {
	if logger == nil {
		logger = slog.Default()
	}
	return &AStarNavigator{g: g, useHeuristic: useHeuristic, logger: logger}
}

func (n *AStarNavigator) ComputeShortestPath(origin, destination graph.NodeId) (float64, error) {
	if err := checkNodes(n.g, origin, destination); err != nil {
		return -1, err
	}

	var heuristic Heuristic = ZeroHeuristic
	if n.useHeuristic {
		heuristic = GeodesicHeuristic(n.g, destination)
	}
	n.origin, n.destination = origin, destination
	n.search = NewAStarSearch[graph.NodeId](n.g, NewArcCosts(n.g, heuristic), WithLogger(n.logger))

	path, err := n.search.Run(origin, destination)
	if err != nil {
		n.path = nil
		return -1, err
	}
	n.path = path

	kpis := n.search.KPIs()
	n.logger.Debug("search finished",
		"origin", origin, "destination", destination, "heuristic", n.useHeuristic,
		"settled", kpis.SettledNodes(), "pqPops", kpis.PqPops(), "stalePops", kpis.StalePops())
	return PathLength(n.g, path), nil
}

// GetPath returns the path of the previous computation if it was run for
// origin and destination.
func (n *AStarNavigator) GetPath(origin, destination graph.NodeId) []graph.NodeId {
	if n.path == nil || origin != n.origin || destination != n.destination {
		return []graph.NodeId{}
	}
	return n.path
}

func (n *AStarNavigator) GetSearchSpace() []graph.NodeId {
	if n.search == nil {
		return nil
	}
	return n.search.SearchSpace()
}

func (n *AStarNavigator) GetPqPops() int {
	if n.search == nil {
		return 0
	}
	return n.search.KPIs().PqPops()
}

func (n *AStarNavigator) GetEdgeRelaxations() int {
	if n.search == nil {
		return 0
	}
	return n.search.KPIs().RelaxedEdges()
}

func (n *AStarNavigator) GetGraph() graph.Graph { return n.g }

func checkNodes(g graph.Graph, nodes ...graph.NodeId) error {
	for _, node := range nodes {
		if node < 0 || node >= g.NodeCount() {
			return fmt.Errorf("%w: %v", ErrUnknownNode, node)
		}
	}
	return nil
}
