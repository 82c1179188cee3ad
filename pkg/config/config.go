package config

import (
	"os"

	jsoniter "github.com/json-iterator/go"
)

// CredentialEnvVar is the environment variable holding the generation
// credential. config.json api_keys take precedence when present.
const CredentialEnvVar = "GEMINI_API_KEY"

// Config defines the application configuration structure, mapping directly
// to config.json. Everything in it is optional; a missing file yields a
// usable default configuration.
type Config struct {
	// LLM holds the provider group declarations in raw JSON; pkg/llm owns
	// the shape.
	LLM jsoniter.RawMessage `json:"llm"`
	// Port is the HTTP listen port. Zero means the system default.
	Port int `json:"port"`
	// CorpusPath optionally points at a knowledge corpus YAML file that
	// overrides the embedded default corpus.
	CorpusPath string `json:"corpus_path"`
}

// SystemConfig defines engine-level technical parameters, stored in
// system.json and falling back to hardcoded safe defaults.
type SystemConfig struct {
	// MaxRetries is the per-provider retry budget for transient
	// generation errors.
	MaxRetries int `json:"max_retries"`
	// RetryDelayMs is the base wait between retry attempts.
	RetryDelayMs int `json:"retry_delay_ms"`
	// LLMTimeoutMs is the hard cutoff for one generation call; the
	// context is cancelled when it is exceeded.
	LLMTimeoutMs int `json:"llm_timeout_ms"`
	// MaxOutputTokens bounds the generated document length.
	MaxOutputTokens int `json:"max_output_tokens"`
	// Temperature is the fixed sampling temperature for every generation.
	// Moderate by default: the workspace update must be consistent turn
	// over turn, not creative.
	Temperature float64 `json:"temperature"`
	// RetrievalLimit is the maximum number of knowledge entries attached
	// to one prompt.
	RetrievalLimit int `json:"retrieval_limit"`
	// DefaultModel is the model used when config.json declares no
	// provider groups.
	DefaultModel string `json:"default_model"`
	// OllamaDefaultURL is the fallback endpoint for a local Ollama
	// instance when a group gives no base_url.
	OllamaDefaultURL string `json:"ollama_default_url"`
	// ServerPort is the HTTP listen port unless config.json overrides it.
	ServerPort int `json:"server_port"`
	// ShutdownTimeoutMs bounds graceful HTTP shutdown on SIGTERM.
	ShutdownTimeoutMs int `json:"shutdown_timeout_ms"`
	// LogLevel sets the minimum severity for log output.
	// Accepted values: "debug", "info", "warn", "error". Default: "info".
	LogLevel string `json:"log_level"`
}

// DefaultSystemConfig returns a SystemConfig initialized with safe defaults,
// used whenever system.json is missing or corrupt so the engine can always
// start.
func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		MaxRetries:        2,
		RetryDelayMs:      500,
		LLMTimeoutMs:      120000,
		MaxOutputTokens:   4096,
		Temperature:       0.4,
		RetrievalLimit:    3,
		DefaultModel:      "gemini-2.5-flash",
		OllamaDefaultURL:  "http://localhost:11434",
		ServerPort:        8080,
		ShutdownTimeoutMs: 5000,
		LogLevel:          "info",
	}
}

// Load reads and parses config.json from the given path. A missing file is
// not an error; the empty configuration is returned instead, because every
// field has a workable default and the credential can come from the
// environment.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadSystemConfig attempts to load system settings, returning defaults if
// the file is absent or unparseable.
func LoadSystemConfig(path string) *SystemConfig {
	cfg := DefaultSystemConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(file, cfg); err != nil {
		return cfg
	}
	return cfg
}

// ResolveCredential returns the generation credential: the first api_key of
// the first provider group that declares one, else the environment variable.
// An empty result means the service cannot generate, which the handler turns
// into a configuration error before any I/O.
func (c *Config) ResolveCredential() string {
	var groups []struct {
		APIKeys []string `json:"api_keys"`
	}
	if c.LLM != nil {
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(c.LLM, &groups); err == nil {
			for _, g := range groups {
				if len(g.APIKeys) > 0 && g.APIKeys[0] != "" {
					return g.APIKeys[0]
				}
			}
		}
	}
	return os.Getenv(CredentialEnvVar)
}

// ListenPort resolves the effective HTTP port from app and system config.
func (c *Config) ListenPort(sys *SystemConfig) int {
	if c.Port > 0 {
		return c.Port
	}
	return sys.ServerPort
}
