// SPDX-License-Identifier: MIT

package openapi_server

type RouteRequest struct {
	Origin      *Point `json:"origin"`
	Destination *Point `json:"destination"`
}

func AssertRouteRequestRequired(obj RouteRequest) error {
	if obj.Origin == nil {
		return &RequiredError{Field: "origin"}
	}
	if obj.Destination == nil {
		return &RequiredError{Field: "destination"}
	}
	if err := AssertPointRequired(*obj.Origin); err != nil {
		return err
	}
	return AssertPointRequired(*obj.Destination)
}
