package zooapi

import (
	"errors"
	"fmt"
	"net/http"
)

// HttpError is returned for any non-2xx backend response that survives
// the single refresh-and-retry. It carries the response body text so the
// caller can log what the backend actually said.
type HttpError struct {
	StatusCode int
	Body       string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Body)
}

// IsUnauthorized reports whether err is a 401 HttpError.
func IsUnauthorized(err error) bool {
	var he *HttpError
	return errors.As(err, &he) && he.StatusCode == http.StatusUnauthorized
}
