package llm

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when a provider has no API key.
	ErrNotConfigured = errors.New("api key not configured")

	// ErrNoContent is returned when a response carries no usable text.
	ErrNoContent = errors.New("no content in response")
)

// Completer sends a single free-text prompt to a text-generation service.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	// Provider is the display name used in failure messages.
	Provider() string
}

// StatusError is a non-2xx reply from the service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Ask runs prompt through c and turns every failure into descriptive text.
// It never returns an error, so callers can treat the reply as plain data.
func Ask(ctx context.Context, c Completer, prompt string) string {
	text, err := c.Complete(ctx, prompt)
	if err == nil {
		return text
	}

	var statusErr *StatusError
	switch {
	case errors.Is(err, ErrNotConfigured):
		return c.Provider() + " API key not configured"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Error: HTTP %d - %s", statusErr.Code, statusErr.Body)
	case errors.Is(err, ErrNoContent):
		return "Unable to extract content from AI response"
	default:
		return "Error processing request: " + err.Error()
	}
}

// unconfigured stands in for a provider without credentials.
type unconfigured struct {
	provider string
}

func (u unconfigured) Complete(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

func (u unconfigured) Provider() string { return u.provider }
