package wordpress

import (
	"errors"
	"fmt"
)

// ErrUnreachable indicates the WordPress API could not be contacted at all.
var ErrUnreachable = errors.New("wordpress unreachable")

// APIError carries the upstream status and message of a failed REST call.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("wordpress api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("wordpress api error %d", e.StatusCode)
}
