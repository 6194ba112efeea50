package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrAPIKeyMissing means the provider was never configured. There is
	// nothing to retry; the caller must run setup first.
	ErrAPIKeyMissing = errors.New("gemini api key is not configured")

	// ErrEmptyResponse covers an HTTP 200 with no usable candidate text.
	ErrEmptyResponse = errors.New("gemini returned no candidates")
)

// APIError is a non-2xx answer from the generation provider.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: http %d: %s", e.StatusCode, e.Message)
}

// Some API versions reject the separate system_instruction channel with a
// 400 carrying this marker in the message.
const instructionMarker = "developer instruction"

func (e *APIError) InstructionUnsupported() bool {
	return e.StatusCode == http.StatusBadRequest &&
		strings.Contains(strings.ToLower(e.Message), instructionMarker)
}

func (e *APIError) ModelNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    strings.TrimSpace(string(body)),
	}

	var wrapper struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Error.Message != "" {
		apiErr.Message = wrapper.Error.Message
		apiErr.Status = wrapper.Error.Status
	}

	return apiErr
}
