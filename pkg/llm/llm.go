// Package llm provides the structured-generation boundary: a provider
// abstraction whose implementations must return a document conforming to the
// workspace update schema, or fail atomically. Nothing outside this package
// performs model I/O.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// json is the package-wide JSON codec, aligned with the rest of the service.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrInvalidDocument marks a generation whose output failed schema
// validation. It is never transient; retrying the same prompt is the
// caller's decision.
var ErrInvalidDocument = errors.New("generated document failed schema validation")

// StructuredClient is the contract every provider client implements. A call
// either returns the raw bytes of a complete JSON document or an error;
// partially valid output is an error.
type StructuredClient interface {
	// GenerateStructured performs one non-streaming generation constrained
	// to the workspace update schema.
	GenerateStructured(ctx context.Context, systemInstructions, contextualPrompt string) ([]byte, error)

	// Provider reports the provider name ("gemini", "openai", "ollama").
	Provider() string

	// IsTransientError reports whether the error is worth retrying
	// (rate limit, overload, connection trouble). Each client classifies
	// its own provider's errors; callers never parse error strings.
	IsTransientError(err error) bool
}

// FallbackClient tries a list of clients in order, with bounded retries on
// transient errors per client. It satisfies StructuredClient itself so the
// handler does not care whether one provider or five are configured.
type FallbackClient struct {
	Clients    []StructuredClient
	MaxRetries int
	RetryDelay time.Duration
}

func (f *FallbackClient) Provider() string {
	if len(f.Clients) == 1 {
		return f.Clients[0].Provider()
	}
	return "fallback"
}

// GenerateStructured walks the client list until one produces a document.
func (f *FallbackClient) GenerateStructured(ctx context.Context, systemInstructions, contextualPrompt string) ([]byte, error) {
	var lastErr error
	for i, client := range f.Clients {
		if i > 0 {
			slog.Warn("Provider failed, trying fallback", "next", client.Provider(), "position", i+1)
		}

		maxRetries := f.MaxRetries
		if maxRetries <= 0 {
			maxRetries = 1
		}

		for attempt := 1; attempt <= maxRetries; attempt++ {
			if attempt > 1 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(time.Duration(attempt-1) * f.RetryDelay):
				}
			}

			raw, err := client.GenerateStructured(ctx, systemInstructions, contextualPrompt)
			if err == nil {
				return raw, nil
			}
			lastErr = err

			if client.IsTransientError(err) && attempt < maxRetries {
				slog.Warn("Transient generation error, retrying", "provider", client.Provider(), "attempt", attempt, "error", err)
				continue
			}
			break
		}
	}
	return nil, fmt.Errorf("all providers failed: %w", lastErr)
}

// IsTransientError on the composite is always false: by the time the
// fallback chain has failed, every inner retry budget is spent.
func (f *FallbackClient) IsTransientError(err error) bool {
	return false
}
