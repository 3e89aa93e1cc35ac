// SPDX-License-Identifier: MIT

package openapi_server

type RouteResult struct {
	Origin      *Point `json:"origin"`
	Destination *Point `json:"destination"`
	Reachable   bool   `json:"reachable"`
	Path        *Path  `json:"path,omitempty"`
}

type Path struct {
	// Length of the path in meters
	Length    float64 `json:"length"`
	Waypoints []Point `json:"waypoints"`
}

type HealthStatus struct {
	Status    string `json:"status"`
	Nodes     int    `json:"nodes"`
	Navigator string `json:"navigator"`
}
