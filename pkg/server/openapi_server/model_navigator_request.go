// SPDX-License-Identifier: MIT

package openapi_server

import (
	"fmt"

	"github.com/natevvv/astar-routing/pkg/graph/path"
	"github.com/natevvv/astar-routing/pkg/slice"
)

// NavigatorRequest selects the navigator used for subsequent routes.
type NavigatorRequest struct {
	Navigator string `json:"navigator"`
}

// AssertNavigatorRequestRequired checks that a known navigator is named.
func AssertNavigatorRequestRequired(obj NavigatorRequest) error {
	if obj.Navigator == "" {
		return &RequiredError{Field: "navigator"}
	}
	if !slice.Contains(path.Navigators, obj.Navigator) {
		return &RangeError{Field: "navigator", Err: fmt.Errorf("%q is not one of %v", obj.Navigator, path.Navigators)}
	}
	return nil
}
