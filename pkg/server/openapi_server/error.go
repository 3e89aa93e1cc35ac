// SPDX-License-Identifier: MIT

package openapi_server

import (
	"errors"
	"fmt"
	"net/http"
)

// ParsingError indicates that an error has occurred when parsing request parameters
type ParsingError struct {
	Err error
}

func (e *ParsingError) Unwrap() error {
	return e.Err
}

func (e *ParsingError) Error() string {
	return e.Err.Error()
}

// RequiredError indicates that an error has occurred when parsing request parameters
type RequiredError struct {
	Field string
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("required field '%s' is zero value.", e.Field)
}

// RangeError indicates that a request parameter is outside of its domain
type RangeError struct {
	Field string
	Err   error
}

func (e *RangeError) Unwrap() error {
	return e.Err
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("field '%s' is out of range: %v", e.Field, e.Err)
}

// ErrorHandler defines the required method for handling error. You may implement it and inject this into a controller if
// you would like errors to be handled differently from the DefaultErrorHandler
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error, result *ImplResponse)

type errorBody struct {
	Error string `json:"error"`
}

// DefaultErrorHandler defines the default logic on how to handle errors from the controller. Any errors from parsing
// request params will return a StatusBadRequest. Otherwise, the error code originating from the servicer will be used.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error, result *ImplResponse) {
	var parsingErr *ParsingError
	var requiredErr *RequiredError
	var rangeErr *RangeError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &parsingErr):
		status = http.StatusBadRequest
	case errors.As(err, &requiredErr), errors.As(err, &rangeErr):
		status = http.StatusUnprocessableEntity
	case result != nil && result.Code != 0:
		status = result.Code
	}
	EncodeJSONResponse(errorBody{Error: err.Error()}, &status, w)
}
