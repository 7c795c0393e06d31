package utils

import (
	"net/http"
	"strings"
)

// RequestError is a failure that should be reported to the client with its
// own status code. One message renders as a string, several as a list.
type RequestError struct {
	Status   int
	Messages []string
}

func (e *RequestError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// BadRequest builds a 400 RequestError.
func BadRequest(messages ...string) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Messages: messages}
}

// NotFound builds a 404 RequestError.
func NotFound(message string) *RequestError {
	return &RequestError{Status: http.StatusNotFound, Messages: []string{message}}
}
