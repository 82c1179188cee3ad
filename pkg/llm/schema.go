package llm

import (
	"fmt"

	"google.golang.org/genai"

	"meridian/pkg/workspace"
)

// SchemaName identifies the structured output contract to providers that
// want a named schema (OpenAI json_schema response format).
const SchemaName = "workspace_update"

// UpdateSchema returns the JSON Schema document every generation must
// conform to. This is the single source of truth for the output contract:
// server-side validation, the OpenAI response format and the Ollama format
// field all consume it directly, and the Gemini rendering is derived from it.
func UpdateSchema() map[string]any {
	enum := func(vals ...string) []any {
		out := make([]any, len(vals))
		for i, v := range vals {
			out[i] = v
		}
		return out
	}
	stringArray := func(maxItems int) map[string]any {
		s := map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		}
		if maxItems > 0 {
			s["maxItems"] = maxItems
		}
		return s
	}

	task := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":          map[string]any{"type": "string"},
			"title":       map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"status": map[string]any{
				"type": "string",
				"enum": enum(workspace.TaskBacklog, workspace.TaskInProgress, workspace.TaskBlocked, workspace.TaskDone),
			},
			"priority": map[string]any{
				"type": "string",
				"enum": enum(workspace.LevelLow, workspace.LevelMedium, workspace.LevelHigh),
			},
			"due":   map[string]any{"type": "string"},
			"owner": map[string]any{"type": "string"},
			"tags":  stringArray(0),
		},
		"required": []any{"id", "title", "description", "status", "priority"},
	}

	automation := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":          map[string]any{"type": "string"},
			"name":        map[string]any{"type": "string"},
			"cadence":     map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"status": map[string]any{
				"type": "string",
				"enum": enum(workspace.AutomationIdle, workspace.AutomationScheduled, workspace.AutomationRunning),
			},
			"lastRun": map[string]any{"type": "string"},
			"nextRun": map[string]any{"type": "string"},
		},
		"required": []any{"id", "name", "cadence", "description", "status"},
	}

	decision := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":      map[string]any{"type": "string"},
			"title":   map[string]any{"type": "string"},
			"summary": map[string]any{"type": "string"},
			"impact": map[string]any{
				"type": "string",
				"enum": enum(workspace.LevelLow, workspace.LevelMedium, workspace.LevelHigh),
			},
			"status": map[string]any{
				"type": "string",
				"enum": enum(workspace.DecisionOpen, workspace.DecisionClosed),
			},
			"owner": map[string]any{"type": "string"},
			"due":   map[string]any{"type": "string"},
		},
		"required": []any{"id", "title", "summary", "impact", "status"},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reply": map[string]any{"type": "string"},
			"tasks": map[string]any{
				"type":     "array",
				"items":    task,
				"maxItems": workspace.MaxTasks,
			},
			"automations": map[string]any{
				"type":     "array",
				"items":    automation,
				"maxItems": workspace.MaxAutomations,
			},
			"decisions": map[string]any{
				"type":     "array",
				"items":    decision,
				"maxItems": workspace.MaxDecisions,
			},
			"insights":            stringArray(workspace.MaxInsights),
			"knowledgeHighlights": stringArray(0),
			"actionSummary":       stringArray(0),
		},
		"required": []any{"reply", "tasks", "automations", "decisions", "insights", "actionSummary"},
	}
}

// UpdateSchemaJSON returns the schema serialized once; providers that take
// raw schema bytes (Ollama's format field) use this.
func UpdateSchemaJSON() []byte {
	b, err := json.Marshal(UpdateSchema())
	if err != nil {
		// The schema is a static literal; failing to marshal it is a
		// programming error, not a runtime condition.
		panic(fmt.Sprintf("marshal update schema: %v", err))
	}
	return b
}

// GeminiSchema renders the contract as a *genai.Schema by round-tripping the
// canonical document through JSON, the same conversion used for tool
// parameter schemas.
func GeminiSchema() (*genai.Schema, error) {
	b := UpdateSchemaJSON()
	var schema genai.Schema
	if err := json.Unmarshal(b, &schema); err != nil {
		return nil, fmt.Errorf("failed to convert schema for gemini: %w", err)
	}
	return &schema, nil
}
