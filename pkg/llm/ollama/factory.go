package ollama

import (
	"log/slog"

	"meridian/pkg/config"
	"meridian/pkg/llm"
)

// OllamaFactory handles creation of Ollama clients.
type OllamaFactory struct{}

// Create implements llm.ProviderFactory. Ollama needs no credential; the
// base URL falls back to the system default for a local daemon.
func (f *OllamaFactory) Create(cfg llm.ProviderGroupConfig, sys *config.SystemConfig) ([]llm.StructuredClient, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = sys.OllamaDefaultURL
	}

	var clients []llm.StructuredClient
	for _, model := range cfg.Models {
		client, err := NewOllamaClient(model, baseURL, sys.Temperature, sys.MaxOutputTokens)
		if err != nil {
			slog.Error("Failed to create Ollama client", "model", model, "error", err)
			continue
		}
		clients = append(clients, client)
	}
	return clients, nil
}

func init() {
	llm.RegisterProvider("ollama", &OllamaFactory{})
}
