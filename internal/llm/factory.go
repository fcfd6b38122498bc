package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Options struct {
	Provider       string
	APIKey         string
	Model          string
	BaseURL        string
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
	RatePerSecond  float64
	Burst          int
}

// NewCompleter builds the configured provider. A missing API key is not an
// error: the returned Completer reports ErrNotConfigured on every call.
func NewCompleter(ctx context.Context, opts Options) (Completer, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "openai"
	}

	var (
		c   Completer
		err error
	)
	httpClient := NewHTTPClient(opts.ConnectTimeout, opts.RequestTimeout)
	switch provider {
	case "openai":
		if strings.TrimSpace(opts.APIKey) == "" {
			c = unconfigured{provider: "OpenAI"}
			break
		}
		c = NewOpenAICompleter(httpClient, opts.APIKey, opts.Model, opts.BaseURL)
	case "gemini":
		if strings.TrimSpace(opts.APIKey) == "" {
			c = unconfigured{provider: "Gemini"}
			break
		}
		c, err = NewGeminiCompleter(ctx, httpClient, opts.APIKey, opts.Model, opts.BaseURL, opts.RequestTimeout)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", opts.Provider)
	}
	return NewRateLimited(c, opts.RatePerSecond, opts.Burst), nil
}
