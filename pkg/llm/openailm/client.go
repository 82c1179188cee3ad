package openailm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"meridian/pkg/llm"
)

// Client wraps the official OpenAI Go SDK for OpenAI-compatible providers.
// Structured output is steered through the json_schema response format;
// conformance is enforced server-side when the document is decoded.
type Client struct {
	client   *openai.Client
	provider string
	model    string

	temperature     float64
	maxOutputTokens int
}

// NewClient creates an OpenAI-compatible client. baseURL may point at any
// endpoint speaking the chat completions protocol.
func NewClient(provider, apiKey, model, baseURL string, temperature float64, maxOutputTokens int) (*Client, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)

	return &Client{
		client:          &client,
		provider:        provider,
		model:           model,
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
	}, nil
}

func (c *Client) Provider() string {
	return c.provider
}

// responseFormat builds the json_schema response format from the canonical
// update schema. Strict mode is deliberately not requested: it demands that
// every object list all keys as required with additionalProperties false,
// and the canonical schema keeps fields like due, owner and
// knowledgeHighlights optional because their absence carries meaning in the
// merge. The schema here steers the model; llm.DecodeUpdate is the gate.
func responseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
			JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:   llm.SchemaName,
				Schema: llm.UpdateSchema(),
			},
		},
	}
}

// GenerateStructured implements llm.StructuredClient.
func (c *Client) GenerateStructured(ctx context.Context, systemInstructions, contextualPrompt string) ([]byte, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemInstructions),
			openai.UserMessage(contextualPrompt),
		},
		Temperature:         openai.Float(c.temperature),
		MaxCompletionTokens: openai.Int(int64(c.maxOutputTokens)),
		ResponseFormat:      responseFormat(),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%s generate: %w", c.provider, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s generate: no choices returned", c.provider)
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("%s generate: empty completion", c.provider)
	}
	return []byte(content), nil
}

// IsTransientError implements llm.StructuredClient.
func (c *Client) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())

	// Network-level issues
	if strings.Contains(msg, "context deadline exceeded") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") {
		return true
	}

	// Server-side temporary failures
	if strings.Contains(msg, "429") ||
		strings.Contains(msg, "500 internal") ||
		strings.Contains(msg, "502 bad gateway") ||
		strings.Contains(msg, "503 service unavailable") ||
		strings.Contains(msg, "overloaded") {
		return true
	}

	// Everything else (400 Bad Request, 401 Unauthorized, ...) is non-transient.
	return false
}
