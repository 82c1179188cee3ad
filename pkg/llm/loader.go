package llm

import (
	"fmt"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"

	"meridian/pkg/config"
)

// NewFromConfig builds the structured-generation client from the raw "llm"
// section of config.json. Several provider groups may be declared; their
// clients are chained behind a FallbackClient in declaration order. When the
// section is absent a single Gemini client on the environment credential is
// assumed.
func NewFromConfig(rawLLM jsoniter.RawMessage, system *config.SystemConfig) (StructuredClient, error) {
	groups := []ProviderGroupConfig{}
	if rawLLM != nil {
		if err := json.Unmarshal(rawLLM, &groups); err != nil {
			return nil, fmt.Errorf("failed to parse 'llm' config: %v", err)
		}
	}
	if len(groups) == 0 {
		groups = append(groups, ProviderGroupConfig{Type: "gemini", Models: []string{system.DefaultModel}})
	}

	var clients []StructuredClient
	for _, group := range groups {
		slog.Info("Loading provider group", "type", group.Type, "models", len(group.Models))

		factory, ok := GetProviderFactory(group.Type)
		if !ok {
			slog.Warn("Unknown provider type, skipping", "type", group.Type)
			continue
		}

		created, err := factory.Create(group, system)
		if err != nil {
			slog.Warn("Failed to create provider clients", "type", group.Type, "error", err)
			continue
		}
		clients = append(clients, created...)
	}

	if len(clients) == 0 {
		return nil, fmt.Errorf("no structured generation clients could be initialized")
	}

	slog.Info("Structured generation clients ready", "count", len(clients))

	if len(clients) == 1 {
		return clients[0], nil
	}

	return &FallbackClient{
		Clients:    clients,
		MaxRetries: system.MaxRetries,
		RetryDelay: time.Duration(system.RetryDelayMs) * time.Millisecond,
	}, nil
}
