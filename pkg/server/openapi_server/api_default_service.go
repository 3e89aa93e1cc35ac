// SPDX-License-Identifier: MIT

package openapi_server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/natevvv/astar-routing/pkg/graph/path"
	"github.com/natevvv/astar-routing/pkg/routing"
	"github.com/paulmach/orb"
)

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// The router keeps the state of the last search, so every call holds mu.
type DefaultApiService struct {
	mu     sync.Mutex
	router *routing.Router
}

// NewDefaultApiService creates a default api service
func NewDefaultApiService(router *routing.Router) DefaultApiServicer {
	return &DefaultApiService{router: router}
}

func (s *DefaultApiService) computeRoute(routeRequest RouteRequest) (routing.Route, error) {
	origin := orb.Point{routeRequest.Origin.Lon, routeRequest.Origin.Lat}
	destination := orb.Point{routeRequest.Destination.Lon, routeRequest.Destination.Lat}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.ComputeRoute(origin, destination)
}

// ComputeRoute - Compute a new route
func (s *DefaultApiService) ComputeRoute(ctx context.Context, routeRequest RouteRequest) (ImplResponse, error) {
	route, err := s.computeRoute(routeRequest)
	if err != nil {
		return routeErrorResponse(err)
	}

	routeResult := RouteResult{Origin: routeRequest.Origin, Destination: routeRequest.Destination}
	if route.Exists {
		routeResult.Reachable = true
		routeResult.Path = &Path{Length: route.Length, Waypoints: toPoints(route.Waypoints)}
	}
	return Response(http.StatusOK, routeResult), nil
}

func (s *DefaultApiService) ComputeRouteGeoJSON(ctx context.Context, routeRequest RouteRequest) (ImplResponse, error) {
	route, err := s.computeRoute(routeRequest)
	if err != nil {
		return routeErrorResponse(err)
	}
	return Response(http.StatusOK, route.GeoJSON()), nil
}

func (s *DefaultApiService) GetNodes(ctx context.Context) (ImplResponse, error) {
	s.mu.Lock()
	points := s.router.GetNodes()
	s.mu.Unlock()
	return Response(http.StatusOK, Nodes{Waypoints: toPoints(points)}), nil
}

func (s *DefaultApiService) GetSearchSpace(ctx context.Context) (ImplResponse, error) {
	s.mu.Lock()
	points := s.router.GetSearchSpace()
	s.mu.Unlock()
	return Response(http.StatusOK, Nodes{Waypoints: toPoints(points)}), nil
}

func (s *DefaultApiService) SetNavigator(ctx context.Context, navigatorRequest NavigatorRequest) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.router.SetNavigator(navigatorRequest.Navigator); err != nil {
		return Response(http.StatusBadRequest, nil), err
	}
	return Response(http.StatusOK, navigatorRequest), nil
}

func (s *DefaultApiService) Health(ctx context.Context) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Response(http.StatusOK, HealthStatus{
		Status:    "ok",
		Nodes:     len(s.router.GetNodes()),
		Navigator: s.router.Navigator(),
	}), nil
}

func routeErrorResponse(err error) (ImplResponse, error) {
	switch {
	case errors.Is(err, routing.ErrEmptyGraph):
		return Response(http.StatusServiceUnavailable, nil), err
	case errors.Is(err, path.ErrUnknownNode):
		return Response(http.StatusBadRequest, nil), err
	default:
		return Response(http.StatusInternalServerError, nil), fmt.Errorf("computing route: %w", err)
	}
}

func toPoints(points []orb.Point) []Point {
	result := make([]Point, 0, len(points))
	for _, p := range points {
		result = append(result, Point{Lat: p.Lat(), Lon: p.Lon()})
	}
	return result
}
