package routing

import (
	"errors"
	"log/slog"
	"math"

	"github.com/natevvv/astar-routing/pkg/graph"
	"github.com/natevvv/astar-routing/pkg/graph/path"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
)

var ErrEmptyGraph = errors.New("graph has no nodes")

// Route is the result of a route computation between two arbitrary points.
// Origin and Destination are snapped to the nearest graph nodes.
type Route struct {
	Origin      orb.Point
	Destination orb.Point
	Exists      bool
	Nodes       []graph.NodeId
	Waypoints   orb.LineString
	Length      float64 // meters
}

// GeoJSON renders the route as a FeatureCollection holding the requested
// points and, if the route exists, its waypoints as a LineString.
func (r Route) GeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	origin := geojson.NewFeature(r.Origin)
	origin.Properties["role"] = "origin"
	destination := geojson.NewFeature(r.Destination)
	destination.Properties["role"] = "destination"
	fc.Append(origin)
	fc.Append(destination)

	if r.Exists {
		line := geojson.NewFeature(r.Waypoints)
		line.Properties["role"] = "route"
		line.Properties["length"] = r.Length
		line.Properties["nodes"] = len(r.Nodes)
		fc.Append(line)
	}
	return fc
}

type Router struct {
	g             graph.Graph
	logger        *slog.Logger
	navigatorName string
	navigator     path.Navigator
	checkedCosts  bool
}

func NewRouter(g graph.Graph, navigator string, logger *slog.Logger) (*Router, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{g: g, logger: logger}
	if err := r.SetNavigator(navigator); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Router) SetNavigator(name string) error {
	navigator, err := path.NewNavigator(name, r.g, r.logger)
	if err != nil {
		return err
	}
	r.navigatorName = name
	r.navigator = navigator
	if name == path.NavigatorAStar && !r.checkedCosts {
		r.checkedCosts = true
		if n := path.UnderestimatedArcs(r.g); n > 0 {
			r.logger.Warn("arcs cheaper than their great circle distance, astar routes may not be shortest",
				"arcs", n, "total", r.g.ArcCount())
		}
	}
	return nil
}

func (r *Router) Navigator() string { return r.navigatorName }

func (r *Router) ComputeRoute(origin, destination orb.Point) (Route, error) {
	route := Route{Origin: origin, Destination: destination, Nodes: []graph.NodeId{}}

	originNode, err := r.nearestNode(origin)
	if err != nil {
		return route, err
	}
	destinationNode, err := r.nearestNode(destination)
	if err != nil {
		return route, err
	}

	length, err := r.navigator.ComputeShortestPath(originNode, destinationNode)
	if err != nil {
		return route, err
	}
	if length < 0 {
		return route, nil
	}

	route.Exists = true
	route.Length = length
	route.Nodes = r.navigator.GetPath(originNode, destinationNode)
	route.Waypoints = r.waypoints(route.Nodes)
	r.logger.Info("route computed",
		"navigator", r.navigatorName, "origin", originNode, "destination", destinationNode,
		"length", length, "pqPops", r.navigator.GetPqPops())
	return route, nil
}

func (r *Router) GetNodes() []orb.Point {
	return r.g.GetNodes()
}

// GetSearchSpace returns the coordinates of the nodes settled by the last
// computation.
func (r *Router) GetSearchSpace() []orb.Point {
	return r.waypoints(r.navigator.GetSearchSpace())
}

func (r *Router) nearestNode(p orb.Point) (graph.NodeId, error) {
	if r.g.NodeCount() == 0 {
		return -1, ErrEmptyGraph
	}
	minDist := math.Inf(1)
	nearest := 0
	for i := 0; i < r.g.NodeCount(); i++ {
		if dist := geo.Distance(p, r.g.GetNode(i)); dist < minDist {
			minDist = dist
			nearest = i
		}
	}
	return nearest, nil
}

func (r *Router) waypoints(nodes []graph.NodeId) orb.LineString {
	waypoints := make(orb.LineString, 0, len(nodes))
	for _, node := range nodes {
		waypoints = append(waypoints, r.g.GetNode(node))
	}
	return waypoints
}
