package path

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/natevvv/astar-routing/pkg/graph"
	"github.com/natevvv/astar-routing/pkg/queue"
	"github.com/natevvv/astar-routing/pkg/slice"
)

var (
	ErrNegativeCost = errors.New("negative real cost")
	ErrInvalidCost  = errors.New("invalid cost")
)

type SearchKPIs struct {
	pqPops             int // amount of pops performed on the open set, stale ones included
	pqPushes           int // amount of pushes to the open set
	stalePops          int // pops of nodes which were already visited
	relaxationAttempts int // neighbors which were considered for relaxation
	relaxedEdges       int // relaxations which improved the distance
	numSettledNodes    int // number of visited nodes
}

func (kpi *SearchKPIs) Reset() {
	*kpi = SearchKPIs{}
}

func (kpi SearchKPIs) PqPops() int             { return kpi.pqPops }
func (kpi SearchKPIs) PqPushes() int           { return kpi.pqPushes }
func (kpi SearchKPIs) StalePops() int          { return kpi.stalePops }
func (kpi SearchKPIs) RelaxationAttempts() int { return kpi.relaxationAttempts }
func (kpi SearchKPIs) RelaxedEdges() int       { return kpi.relaxedEdges }
func (kpi SearchKPIs) SettledNodes() int       { return kpi.numSettledNodes }

type Option func(*searchOptions)

type searchOptions struct {
	logger *slog.Logger
}

// WithLogger makes the search emit a debug record for every settled node and
// every successful relaxation.
func WithLogger(logger *slog.Logger) Option {
	return func(o *searchOptions) { o.logger = logger }
}

// AStarSearch finds a path between two nodes of an abstract graph. The stored
// distance of a node is the accumulated real cost plus the accumulated
// heuristic cost of the arcs leading to it; the same value is used as
// priority in the open set.
//
// The state of a search lives in the instance and is reset at the start of
// every Run, so an instance must not be shared by concurrent searches.
type AStarSearch[N comparable] struct {
	topology graph.Topology[N]
	costs    graph.CostProvider[N]

	openSet   *queue.OpenSet[N]
	visited   map[N]bool
	distances map[N]float64
	cameFrom  map[N]N

	searchSpace []N // visited nodes in the order they were settled
	searchKPIs  SearchKPIs

	logger *slog.Logger
}

func NewAStarSearch[N comparable](topology graph.Topology[N], costs graph.CostProvider[N], options ...Option) *AStarSearch[N] {
	opts := searchOptions{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, o := range options {
		o(&opts)
	}
	return &AStarSearch[N]{topology: topology, costs: costs, logger: opts.logger}
}

func (s *AStarSearch[N]) initializeSearch() {
	s.openSet = queue.NewOpenSet[N]()
	s.visited = make(map[N]bool)
	s.distances = make(map[N]float64)
	s.cameFrom = make(map[N]N)
	s.searchSpace = make([]N, 0)
	s.searchKPIs.Reset()
}

// Run searches a path from start to goal. It returns the nodes on the path,
// start and goal included, or an empty slice if the goal is not reachable.
// An error is only returned if a collaborator violates its contract (negative
// or non-finite costs).
func (s *AStarSearch[N]) Run(start, goal N) ([]N, error) {
	s.initializeSearch()

	s.distances[start] = 0
	if err := s.push(start, 0); err != nil {
		return nil, err
	}

	for s.openSet.IsNotEmpty() {
		current, ok := s.visitNextNode()
		if !ok {
			break
		}
		s.logger.Debug("settling node", "node", current, "distance", s.distances[current])

		if current == goal {
			return s.reconstructPath(current), nil
		}

		for _, neighbor := range s.topology.Neighbors(current) {
			if err := s.relaxNode(current, neighbor); err != nil {
				return nil, err
			}
		}
	}

	return []N{}, nil
}

// visitNextNode pops nodes until it finds one which was not visited yet and
// marks it as visited.
func (s *AStarSearch[N]) visitNextNode() (N, bool) {
	for {
		node, ok := s.openSet.Pop()
		if !ok {
			return node, false
		}
		s.searchKPIs.pqPops++
		if s.visited[node] {
			s.searchKPIs.stalePops++
			continue
		}
		s.visited[node] = true
		s.searchSpace = append(s.searchSpace, node)
		s.searchKPIs.numSettledNodes++
		return node, true
	}
}

func (s *AStarSearch[N]) relaxNode(origin, target N) error {
	if s.visited[target] {
		return nil
	}
	s.searchKPIs.relaxationAttempts++

	cost := s.costs.RealCost(origin, target)
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return fmt.Errorf("%w: real cost %v -> %v is %v", ErrInvalidCost, origin, target, cost)
	}
	if cost < 0 {
		return fmt.Errorf("%w: %v -> %v is %v", ErrNegativeCost, origin, target, cost)
	}
	heuristic := s.costs.HeuristicCost(origin, target)
	if math.IsNaN(heuristic) || math.IsInf(heuristic, 0) {
		return fmt.Errorf("%w: heuristic cost %v -> %v is %v", ErrInvalidCost, origin, target, heuristic)
	}

	candidate := s.distances[origin] + cost + heuristic
	if math.IsInf(candidate, 0) {
		return fmt.Errorf("%w: distance of %v overflows", queue.ErrInvalidPriority, target)
	}
	if candidate >= s.Distance(target) {
		return nil
	}

	s.distances[target] = candidate
	s.cameFrom[target] = origin
	s.searchKPIs.relaxedEdges++
	s.logger.Debug("relaxed edge", "from", origin, "to", target, "distance", candidate)
	return s.push(target, candidate)
}

func (s *AStarSearch[N]) push(node N, priority float64) error {
	if err := s.openSet.Push(node, priority); err != nil {
		return err
	}
	s.searchKPIs.pqPushes++
	return nil
}

func (s *AStarSearch[N]) reconstructPath(current N) []N {
	path := []N{current}
	for {
		predecessor, ok := s.cameFrom[current]
		if !ok {
			break
		}
		path = append(path, predecessor)
		current = predecessor
	}
	slice.ReverseInPlace(path)
	return path
}

// Distance returns the best known distance of node in the previous run,
// +Inf if it was never reached.
func (s *AStarSearch[N]) Distance(node N) float64 {
	if distance, ok := s.distances[node]; ok {
		return distance
	}
	return math.Inf(1)
}

// SearchSpace returns the nodes settled by the previous run in settle order.
func (s *AStarSearch[N]) SearchSpace() []N { return s.searchSpace }

func (s *AStarSearch[N]) KPIs() SearchKPIs { return s.searchKPIs }
