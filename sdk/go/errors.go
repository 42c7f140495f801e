package jobreach

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is an error response from the JobReach server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jobreach: %d: %s", e.StatusCode, e.Message)
}

// IsValidation reports whether the server rejected the request input
// (including "Gmail not connected" and reauthorization failures).
func (e *APIError) IsValidation() bool {
	return e.StatusCode == http.StatusBadRequest
}

// IsRateLimited reports whether the request hit a rate limit.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func apiError(status int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error == "" {
		payload.Error = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: payload.Error}
}
