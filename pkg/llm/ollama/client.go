package ollama

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"meridian/pkg/llm"
)

// OllamaClient generates workspace updates against a local Ollama instance.
// The schema rides in the chat request's format field, which Ollama enforces
// during decoding.
type OllamaClient struct {
	client *api.Client
	model  string

	temperature     float64
	maxOutputTokens int
}

// NewOllamaClient creates an Ollama client. Local models can be slow, so the
// HTTP client imposes no response timeout of its own; the caller's context
// is the only cutoff.
func NewOllamaClient(model, baseURL string, temperature float64, maxOutputTokens int) (*OllamaClient, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 0,
	}
	httpClient := &http.Client{
		Transport: transport,
		Timeout:   0,
	}

	var client *api.Client
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL: %w", err)
		}
		client = api.NewClient(u, httpClient)
	} else {
		var err error
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, err
		}
	}

	return &OllamaClient{
		client:          client,
		model:           model,
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
	}, nil
}

func (o *OllamaClient) Provider() string {
	return "ollama"
}

// GenerateStructured implements llm.StructuredClient.
func (o *OllamaClient) GenerateStructured(ctx context.Context, systemInstructions, contextualPrompt string) ([]byte, error) {
	stream := false
	req := &api.ChatRequest{
		Model: o.model,
		Messages: []api.Message{
			{Role: "system", Content: systemInstructions},
			{Role: "user", Content: contextualPrompt},
		},
		Stream: &stream,
		Format: llm.UpdateSchemaJSON(),
		Options: map[string]any{
			"temperature": o.temperature,
			"num_predict": o.maxOutputTokens,
		},
	}

	var content strings.Builder
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama generate: %w", err)
	}
	if content.Len() == 0 {
		return nil, fmt.Errorf("ollama generate: empty response")
	}
	return []byte(content.String()), nil
}

// IsTransientError implements llm.StructuredClient. A local instance mostly
// fails with connection trouble while the model loads or the daemon
// restarts.
func (o *OllamaClient) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "loading model")
}
