package gemini

import (
	"os"

	"meridian/pkg/config"
	"meridian/pkg/llm"
)

// GeminiFactory handles creation of Gemini clients.
type GeminiFactory struct{}

// Create implements llm.ProviderFactory. Keys come from the group config,
// falling back to the environment credential. Cartesian product of models
// and keys, models first, so fallback order degrades the model before the
// quota pool.
func (f *GeminiFactory) Create(cfg llm.ProviderGroupConfig, sys *config.SystemConfig) ([]llm.StructuredClient, error) {
	keys := cfg.APIKeys
	if len(keys) == 0 {
		if envKey := os.Getenv(config.CredentialEnvVar); envKey != "" {
			keys = []string{envKey}
		}
	}

	var clients []llm.StructuredClient
	for _, model := range cfg.Models {
		for _, key := range keys {
			client, err := NewGeminiClient(key, model, sys.Temperature, sys.MaxOutputTokens)
			if err != nil {
				return nil, err
			}
			clients = append(clients, client)
		}
	}
	return clients, nil
}

func init() {
	llm.RegisterProvider("gemini", &GeminiFactory{})
}
