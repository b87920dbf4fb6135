package searchdb

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrBadResponse = errors.New("bad response from search engine")
)

// ResponseError is returned when the engine answers with a non-2xx status.
type ResponseError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("failed to %s: %s %s", e.Operation, e.Status, e.Body)
}

func (e *ResponseError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrBadResponse:
		return true
	}
	return false
}
