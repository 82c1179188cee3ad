package prompt

import (
	"fmt"
	"strings"

	"meridian/pkg/knowledge"
	"meridian/pkg/workspace"
)

const knowledgePlaceholder = "No reference material matched this request. Rely on the conversation and workspace state."

// operationalInstructions is the fixed footer of every contextual prompt.
const operationalInstructions = `Operational instructions:
- Preserve the id of every task, automation and decision you keep; never mint a new id for an existing item.
- Re-emit the complete desired workspace, including items that did not change this turn.
- When a task is blocked, say so in the reply and suggest an owner who can unblock it.
- Make any assumption you relied on explicit in the reply or in actionSummary.`

// Compose builds the contextual prompt for one generation call: knowledge
// context, then the conversation transcript, then the fixed operational
// instructions. Pure function of its inputs.
func Compose(entries []knowledge.Entry, transcript string) string {
	var sb strings.Builder

	sb.WriteString("Reference knowledge:\n")
	if len(entries) == 0 {
		sb.WriteString(knowledgePlaceholder)
		sb.WriteByte('\n')
	} else {
		for i, e := range entries {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(renderEntry(e))
		}
	}

	sb.WriteString("\nConversation so far:\n")
	sb.WriteString(transcript)
	sb.WriteString("\n\n")
	sb.WriteString(operationalInstructions)
	return sb.String()
}

func renderEntry(e knowledge.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s (%s)\n", e.Title, e.Domain)
	sb.WriteString(e.Summary)
	sb.WriteByte('\n')
	for _, t := range e.Takeaways {
		sb.WriteString("- ")
		sb.WriteString(t)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SystemInstructions derives the system prompt from the workspace the
// server was handed, never the one being generated, so the instructions
// vary only with server-visible state.
func SystemInstructions(ws workspace.WorkspaceState) string {
	var sb strings.Builder
	sb.WriteString("You are an autonomous workspace agent. You maintain a structured board of tasks, automations, decisions and insights for the user, and answer each turn with both a conversational reply and the full updated board.\n\n")
	fmt.Fprintf(&sb, "Current board: %d tasks (max %d), %d automations (max %d), %d decisions (max %d), %d insights (max %d).\n",
		len(ws.Tasks), workspace.MaxTasks,
		len(ws.Automations), workspace.MaxAutomations,
		len(ws.Decisions), workspace.MaxDecisions,
		len(ws.Insights), workspace.MaxInsights)
	sb.WriteString("Stay within the limits; fold the least important items together rather than overflowing. Keep replies short and concrete.")
	return sb.String()
}
