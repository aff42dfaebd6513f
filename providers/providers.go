package providers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deepnoodle-ai/structure/log"
)

// ErrUnknownModel is returned when no provider claims a model identifier.
var ErrUnknownModel = errors.New("unknown model")

// Settings configure a provider instance.
type Settings struct {
	// APIKey overrides the provider's environment variable.
	APIKey string

	// Endpoint overrides the provider's base URL.
	Endpoint string

	// Timeout bounds a single request. Zero keeps the client default.
	Timeout time.Duration

	// HTTPClient replaces the provider's HTTP client.
	HTTPClient *http.Client

	Logger log.Logger
}

// ProviderError represents an error returned by an LLM provider API.
type ProviderError struct {
	statusCode int
	body       string
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("provider api error (status %d): %s", e.statusCode, e.body)
	if IsRetryable(e.statusCode) {
		msg += " (transient, try again)"
	}
	return msg
}

func (e *ProviderError) StatusCode() int {
	return e.statusCode
}

// Body returns the error message sent by the provider.
func (e *ProviderError) Body() string {
	return e.body
}

// NewError creates a new ProviderError.
func NewError(statusCode int, body string) error {
	return &ProviderError{statusCode: statusCode, body: body}
}

// IsRetryable reports whether a status code indicates a transient failure.
// Requests are not retried here; the error message tells the user instead.
func IsRetryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || // 429
		statusCode == http.StatusInternalServerError || // 500
		statusCode == http.StatusServiceUnavailable || // 503
		statusCode == http.StatusGatewayTimeout || // 504
		statusCode == 520 // Cloudflare
}
