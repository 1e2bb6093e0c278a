package entity

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies why a rate lookup failed
type ErrorKind string

const (
	InvalidCurrency       ErrorKind = "InvalidCurrency"
	InvalidDateFormat     ErrorKind = "InvalidDateFormat"
	DateOutOfRange        ErrorKind = "DateOutOfRange"
	UpstreamUnavailable   ErrorKind = "UpstreamUnavailable"
	NotFound              ErrorKind = "NotFound"
	UpstreamMalformed     ErrorKind = "UpstreamMalformed"
	UpstreamShapeMismatch ErrorKind = "UpstreamShapeMismatch"
)

var kindStatus = map[ErrorKind]int{
	InvalidCurrency:       http.StatusBadRequest,
	InvalidDateFormat:     http.StatusBadRequest,
	DateOutOfRange:        http.StatusBadRequest,
	UpstreamUnavailable:   http.StatusBadGateway,
	NotFound:              http.StatusNotFound,
	UpstreamMalformed:     http.StatusInternalServerError,
	UpstreamShapeMismatch: http.StatusInternalServerError,
}

var kindMessage = map[ErrorKind]string{
	InvalidCurrency:   "Incorrect currency.",
	InvalidDateFormat: "Incorrect date string format. It should be YYYY-MM-DD.",
	DateOutOfRange:    "Incorrect date. Correct date is between 2002-01-03 and present.",
	UpstreamUnavailable: "The server got an invalid response while working as a gateway " +
		"to get the response needed to handle the request.",
	NotFound:              "Failed to find data.",
	UpstreamMalformed:     "Failed to load data.",
	UpstreamShapeMismatch: "Failed to format data.",
}

// ResolutionError is a classified failure of validation or rate resolution.
// Message is safe to show to clients; Err holds the underlying cause, if any.
type ResolutionError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewResolutionError creates an error of the given kind with its client message
func NewResolutionError(kind ErrorKind, cause error) *ResolutionError {
	return &ResolutionError{
		Kind:    kind,
		Message: kindMessage[kind],
		Err:     cause,
	}
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status the error is reported with
func (e *ResolutionError) StatusCode() int {
	if status, ok := kindStatus[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// StatusPhrase returns the status line text, e.g. "400 Bad Request"
func (e *ResolutionError) StatusPhrase() string {
	status := e.StatusCode()
	return fmt.Sprintf("%d %s", status, http.StatusText(status))
}
