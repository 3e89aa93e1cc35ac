// SPDX-License-Identifier: MIT

package openapi_server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// A Route defines the parameters for an api endpoint
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// Routes are a collection of defined api endpoints
type Routes []Route

// Router defines the required methods for retrieving api routes
type Router interface {
	Routes() Routes
}

// NewRouter creates a new router for any number of api routers. Every route
// is logged, and rate limited if limiter is not nil.
func NewRouter(logger *slog.Logger, limiter *IPRateLimiter, routers ...Router) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	for _, api := range routers {
		for _, route := range api.Routes() {
			var handler http.Handler = route.HandlerFunc
			if limiter != nil {
				handler = limiter.Middleware(handler)
			}
			handler = Logger(logger, handler, route.Name)

			router.
				Methods(route.Method).
				Path(route.Pattern).
				Name(route.Name).
				Handler(handler)
		}
	}

	return router
}

// EncodeJSONResponse uses the json encoder to write an interface to the http response with an optional status code
func EncodeJSONResponse(i interface{}, status *int, w http.ResponseWriter) error {
	return EncodeResponse(i, status, "application/json", w)
}

// EncodeResponse writes i as JSON with the given content type.
func EncodeResponse(i interface{}, status *int, contentType string, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", contentType+"; charset=UTF-8")
	if status != nil {
		w.WriteHeader(*status)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	return json.NewEncoder(w).Encode(i)
}
