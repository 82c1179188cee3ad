// Package prompt renders the deterministic text the generation call sees:
// the conversation transcript, the retrieved knowledge context, and the
// workspace-derived system instructions. Section order and separators are
// part of the contract; changing them changes model behavior.
package prompt

import (
	"strings"

	"meridian/pkg/workspace"
)

// FormatTranscript renders the conversation as one ordered transcript, one
// "role: content" line per message in dialogue order. It is pure and total:
// an empty history yields an empty string.
func FormatTranscript(messages []workspace.Message) string {
	if len(messages) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, m := range messages {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(m.Role)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
	}
	return sb.String()
}

// LatestUserContent returns the content of the most recent user-authored
// message, or "" when the history has none. That text is the retrieval query
// for the turn; the empty string is a valid (empty) query, not an error.
func LatestUserContent(messages []workspace.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}
