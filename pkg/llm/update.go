package llm

import (
	"context"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"meridian/pkg/workspace"
)

// AgentUpdate is one schema-valid structured generation result: the
// conversational reply plus the complete desired workspace.
type AgentUpdate struct {
	Reply               string                 `json:"reply"`
	Tasks               []workspace.Task       `json:"tasks"`
	Automations         []workspace.Automation `json:"automations"`
	Decisions           []workspace.Decision   `json:"decisions"`
	Insights            []string               `json:"insights"`
	KnowledgeHighlights []string               `json:"knowledgeHighlights,omitempty"`
	ActionSummary       []string               `json:"actionSummary"`
}

// WorkspaceUpdate extracts the merge input. KnowledgeHighlights stays nil
// when the generation omitted it, which is what tells the merger to carry
// the prior value forward.
func (u *AgentUpdate) WorkspaceUpdate() workspace.Update {
	return workspace.Update{
		Tasks:               u.Tasks,
		Automations:         u.Automations,
		Decisions:           u.Decisions,
		Insights:            u.Insights,
		KnowledgeHighlights: u.KnowledgeHighlights,
	}
}

// compiled once; the schema is static.
var updateSchema = gojsonschema.NewGoLoader(UpdateSchema())

// DecodeUpdate validates raw generation output against the update schema and
// unmarshals it. Any violation - over-limit arrays, unknown enum values,
// missing required fields, non-JSON bytes - yields ErrInvalidDocument with
// detail attached; no field of an invalid document is ever trusted.
func DecodeUpdate(raw []byte) (*AgentUpdate, error) {
	result, err := gojsonschema.Validate(updateSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, formatSchemaErrors(result))
	}

	var update AgentUpdate
	if err := json.Unmarshal(raw, &update); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &update, nil
}

func formatSchemaErrors(result *gojsonschema.Result) string {
	errs := result.Errors()
	if len(errs) == 0 {
		return "unspecified violation"
	}
	// The first violation is enough for operators; the full list can be
	// hundreds of lines for badly mangled output.
	msg := errs[0].String()
	if len(errs) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(errs)-1)
	}
	return msg
}

// Generate runs one structured generation end to end: provider call, schema
// validation, decode. It is the only path from model output to typed data.
func Generate(ctx context.Context, client StructuredClient, systemInstructions, contextualPrompt string) (*AgentUpdate, error) {
	raw, err := client.GenerateStructured(ctx, systemInstructions, contextualPrompt)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	return DecodeUpdate(raw)
}
