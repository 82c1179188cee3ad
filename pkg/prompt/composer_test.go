package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meridian/pkg/knowledge"
	"meridian/pkg/workspace"
)

func msg(role, content string) workspace.Message {
	return workspace.Message{ID: role + "-" + content[:1], Role: role, Content: content, CreatedAt: time.Now()}
}

func TestFormatTranscriptPreservesOrder(t *testing.T) {
	got := FormatTranscript([]workspace.Message{
		msg("user", "Plan the launch"),
		msg("assistant", "On it"),
		msg("user", "Add a follow-up"),
	})
	assert.Equal(t, "user: Plan the launch\nassistant: On it\nuser: Add a follow-up", got)
}

func TestFormatTranscriptEmpty(t *testing.T) {
	assert.Equal(t, "", FormatTranscript(nil))
	assert.Equal(t, "", FormatTranscript([]workspace.Message{}))
}

func TestLatestUserContent(t *testing.T) {
	history := []workspace.Message{
		msg("user", "first"),
		msg("assistant", "reply"),
		msg("user", "second"),
		msg("assistant", "reply two"),
	}
	assert.Equal(t, "second", LatestUserContent(history))

	assistantOnly := []workspace.Message{msg("assistant", "hello")}
	assert.Equal(t, "", LatestUserContent(assistantOnly))
	assert.Equal(t, "", LatestUserContent(nil))
}

func TestComposeSectionOrder(t *testing.T) {
	entries := []knowledge.Entry{{
		Title:     "Launch readiness checklist",
		Domain:    "operations",
		Summary:   "A launch is ready when blockers have owners.",
		Takeaways: []string{"Assign an owner to every blocking task"},
	}}
	got := Compose(entries, "user: Plan the launch")

	knowledgeIdx := strings.Index(got, "## Launch readiness checklist (operations)")
	transcriptIdx := strings.Index(got, "user: Plan the launch")
	instructionsIdx := strings.Index(got, "Operational instructions:")
	require.NotEqual(t, -1, knowledgeIdx)
	require.NotEqual(t, -1, transcriptIdx)
	require.NotEqual(t, -1, instructionsIdx)
	assert.Less(t, knowledgeIdx, transcriptIdx)
	assert.Less(t, transcriptIdx, instructionsIdx)

	assert.Contains(t, got, "- Assign an owner to every blocking task")
	assert.Contains(t, got, "Preserve the id of every task")
}

func TestComposeDeterministic(t *testing.T) {
	entries := []knowledge.Entry{{Title: "T", Domain: "d", Summary: "s", Takeaways: []string{"x"}}}
	assert.Equal(t, Compose(entries, "user: hi"), Compose(entries, "user: hi"))
}

func TestComposeEmptyRetrievalUsesPlaceholder(t *testing.T) {
	got := Compose(nil, "user: hi")
	assert.Contains(t, got, "No reference material matched this request.")
}

func TestSystemInstructionsReflectWorkspaceCounts(t *testing.T) {
	ws := workspace.WorkspaceState{
		Tasks:       []workspace.Task{{ID: "t1"}, {ID: "t2"}},
		Automations: []workspace.Automation{{ID: "a1"}},
		Insights:    []string{"one"},
	}
	got := SystemInstructions(ws)
	assert.Contains(t, got, "2 tasks (max 12)")
	assert.Contains(t, got, "1 automations (max 6)")
	assert.Contains(t, got, "0 decisions (max 8)")
	assert.Contains(t, got, "1 insights (max 8)")
}
