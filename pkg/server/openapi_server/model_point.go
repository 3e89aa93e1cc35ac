// SPDX-License-Identifier: MIT

package openapi_server

import "fmt"

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AssertPointRequired checks that the coordinate lies within the valid range.
// The zero value is a valid point, so there is no required field check.
func AssertPointRequired(obj Point) error {
	if obj.Lat < -90 || obj.Lat > 90 {
		return &RangeError{Field: "lat", Err: fmt.Errorf("%v is not within [-90, 90]", obj.Lat)}
	}
	if obj.Lon < -180 || obj.Lon > 180 {
		return &RangeError{Field: "lon", Err: fmt.Errorf("%v is not within [-180, 180]", obj.Lon)}
	}
	return nil
}
