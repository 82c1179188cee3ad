// Package autoload registers all built-in generation providers.
package autoload

import (
	_ "meridian/pkg/llm/gemini"
	_ "meridian/pkg/llm/ollama"
	_ "meridian/pkg/llm/openailm"
)
