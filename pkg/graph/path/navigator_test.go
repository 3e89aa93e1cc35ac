package path

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/natevvv/astar-routing/pkg/graph"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const graphFmi = `10
26
# nodes
0 0 0
1 0 1
2 0 2
3 1 0
4 1 1
5 1 2
6 2 0
7 2 1
8 2 2
9 3 3
# edges
0 1 1
0 3 1
1 0 1
1 2 1
1 4 1
2 1 1
2 5 1
3 0 1
3 4 1
3 6 1
4 1 1
4 3 1
4 5 1
4 7 1
5 2 1
5 4 1
5 8 1
6 3 1
6 7 1
7 4 1
7 6 1
7 8 1
8 5 1
8 7 1
8 9 1
9 8 1`

func loadGraph(t *testing.T) graph.Graph {
	t.Helper()
	aag, err := graph.NewAdjacencyArrayFromFmiString(graphFmi)
	if err != nil {
		t.Fatal(err)
	}
	return aag
}

// geodesicGrid builds a size x size grid around Stuttgart whose arc costs are
// the great circle distances of their end points, scaled by a random detour
// factor.
func geodesicGrid(t *testing.T, size int, seed int64) graph.Graph {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	g := graph.NewAdjacencyListGraph()
	id := func(row, column int) graph.NodeId { return row*size + column }
	for row := 0; row < size; row++ {
		for column := 0; column < size; column++ {
			g.AddNode(orb.Point{9.1 + float64(column)*0.01, 48.7 + float64(row)*0.01})
		}
	}
	addArc := func(from, to graph.NodeId) {
		cost := geo.Distance(g.GetNode(from), g.GetNode(to)) * (1 + r.Float64())
		if _, err := g.AddArc(from, to, cost); err != nil {
			t.Fatal(err)
		}
	}
	for row := 0; row < size; row++ {
		for column := 0; column < size; column++ {
			if column+1 < size {
				addArc(id(row, column), id(row, column+1))
				addArc(id(row, column+1), id(row, column))
			}
			if row+1 < size {
				addArc(id(row, column), id(row+1, column))
				addArc(id(row+1, column), id(row, column))
			}
			if row+1 < size && column+1 < size && r.Float64() < 0.3 {
				addArc(id(row, column), id(row+1, column+1))
			}
		}
	}
	return graph.NewAdjacencyArrayFromGraph(g)
}

func TestPlainDijkstra(t *testing.T) {
	aag := loadGraph(t)
	d := NewDijkstra(aag)
	length, err := d.ComputeShortestPath(0, 9)
	if err != nil {
		t.Fatal(err)
	}
	path := d.GetPath(0, 9)
	lengthReference := 5.0
	if length != lengthReference {
		t.Errorf("length is %v. Should be %v\n", length, lengthReference)
	}
	if len(path) != 6 {
		t.Errorf("path has wrong length. Is %v, should be %v\n", len(path), 6)
	}
	if path[0] != 0 || path[len(path)-1] != 9 {
		t.Errorf("path %v does not connect 0 and 9", path)
	}
	if PathLength(aag, path) != length {
		t.Errorf("path %v has length %v, reported %v", path, PathLength(aag, path), length)
	}
}

func TestAStarWithoutHeuristic(t *testing.T) {
	aag := loadGraph(t)
	d := NewDijkstra(aag)
	astar := NewAStarNavigator(aag, false, nil)

	length, _ := d.ComputeShortestPath(0, 9)
	path := d.GetPath(0, 9)
	astarLength, err := astar.ComputeShortestPath(0, 9)
	if err != nil {
		t.Fatal(err)
	}
	astarPath := astar.GetPath(0, 9)
	if length != astarLength {
		t.Errorf("Length does not match. Is %v, should be %v", astarLength, length)
	}
	if len(astarPath) != len(path) {
		t.Errorf("Path has wrong length. Is %v, should be %v", len(astarPath), len(path))
	}
	if astarPath[0] != path[0] || astarPath[len(astarPath)-1] != path[len(path)-1] {
		t.Errorf("First or last element do not match.\nDijkstra: %v %v\nAStar: %v %v", path[0], path[len(path)-1], astarPath[0], astarPath[len(astarPath)-1])
	}
	if len(astar.GetSearchSpace()) == 0 || astar.GetPqPops() == 0 || astar.GetEdgeRelaxations() == 0 {
		t.Errorf("search statistics were not recorded")
	}
}

func TestAStarGeodesicMatchesDijkstra(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := geodesicGrid(t, 8, seed)
		reference := NewDijkstra(g)
		astar := NewAStarNavigator(g, true, nil)
		plain := NewAStarNavigator(g, false, nil)

		for _, target := range [][2]graph.NodeId{{0, 63}, {63, 0}, {7, 56}, {12, 50}, {30, 30}} {
			origin, destination := target[0], target[1]
			referenceLength, _ := reference.ComputeShortestPath(origin, destination)
			astarLength, err := astar.ComputeShortestPath(origin, destination)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(referenceLength-astarLength) > 1e-6 {
				t.Errorf("seed %v: %v -> %v: astar length %v, reference %v", seed, origin, destination, astarLength, referenceLength)
			}
			path := astar.GetPath(origin, destination)
			if path[0] != origin || path[len(path)-1] != destination {
				t.Errorf("seed %v: path %v does not connect %v and %v", seed, path, origin, destination)
			}
			astarSpace := len(astar.GetSearchSpace())

			if _, err := plain.ComputeShortestPath(origin, destination); err != nil {
				t.Fatal(err)
			}
			if astarSpace > len(plain.GetSearchSpace()) {
				t.Errorf("seed %v: %v -> %v: astar settled %v nodes, dijkstra only %v", seed, origin, destination, astarSpace, len(plain.GetSearchSpace()))
			}
		}
	}
}

func TestNavigatorUnreachable(t *testing.T) {
	g := graph.NewAdjacencyListGraph()
	g.AddNode(orb.Point{0, 0})
	g.AddNode(orb.Point{1, 1})

	for _, name := range Navigators {
		t.Run(name, func(t *testing.T) {
			navigator, err := NewNavigator(name, g, nil)
			if err != nil {
				t.Fatal(err)
			}
			length, err := navigator.ComputeShortestPath(0, 1)
			if err != nil {
				t.Fatal(err)
			}
			if length != -1 {
				t.Errorf("length is %v, should be -1", length)
			}
			if path := navigator.GetPath(0, 1); len(path) != 0 {
				t.Errorf("expected empty path, got %v", path)
			}
			if _, err := navigator.ComputeShortestPath(0, 5); !errors.Is(err, ErrUnknownNode) {
				t.Errorf("expected ErrUnknownNode, got %v", err)
			}
		})
	}
}

func TestGetPathOfOtherQuery(t *testing.T) {
	g := loadGraph(t)
	for _, name := range Navigators {
		t.Run(name, func(t *testing.T) {
			navigator, err := NewNavigator(name, g, nil)
			if err != nil {
				t.Fatal(err)
			}
			if path := navigator.GetPath(0, 9); len(path) != 0 {
				t.Errorf("path before any computation: %v", path)
			}
			if _, err := navigator.ComputeShortestPath(0, 9); err != nil {
				t.Fatal(err)
			}
			if path := navigator.GetPath(0, 9); len(path) != 6 {
				t.Errorf("path of the computed query has %v nodes, want 6", len(path))
			}
			for _, query := range [][2]graph.NodeId{{0, 8}, {1, 9}, {9, 0}} {
				if path := navigator.GetPath(query[0], query[1]); len(path) != 0 {
					t.Errorf("GetPath(%v, %v) = %v, want empty", query[0], query[1], path)
				}
			}
		})
	}
}

func TestUnderestimatedArcs(t *testing.T) {
	g := geodesicGrid(t, 5, 3)
	if n := UnderestimatedArcs(g); n != 0 {
		t.Errorf("geodesic grid has %v underestimated arcs, want 0", n)
	}

	alg := graph.NewAdjacencyListGraph()
	a := alg.AddNode(orb.Point{9.10, 48.70})
	b := alg.AddNode(orb.Point{9.11, 48.70})
	distance := geo.Distance(alg.GetNode(a), alg.GetNode(b))
	if _, err := alg.AddArc(a, b, distance); err != nil {
		t.Fatal(err)
	}
	if _, err := alg.AddArc(b, a, distance/2); err != nil {
		t.Fatal(err)
	}
	if n := UnderestimatedArcs(alg); n != 1 {
		t.Errorf("UnderestimatedArcs() = %v, want 1", n)
	}
}

func TestNewNavigatorUnknown(t *testing.T) {
	if _, err := NewNavigator("contraction-hierarchies", loadGraph(t), nil); err == nil {
		t.Errorf("expected an error for an unknown navigator")
	}
}
