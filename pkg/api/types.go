// Package api defines the wire types of the agent endpoint. The presentation
// layer consumes exactly these shapes; nothing here depends on how the
// response was produced.
package api

import (
	"meridian/pkg/workspace"
)

// AgentRequest is the body of POST /agent: the full conversation history and
// the client-held workspace snapshot. The server stores neither.
type AgentRequest struct {
	Messages  []workspace.Message      `json:"messages"`
	Workspace workspace.WorkspaceState `json:"workspace"`
}

// AgentResponse is the success body: the conversational reply, the merged
// workspace the client persists for the next turn, and a human-readable
// summary of what the agent just did.
type AgentResponse struct {
	Reply         string                   `json:"reply"`
	Workspace     workspace.WorkspaceState `json:"workspace"`
	ActionSummary []string                 `json:"actionSummary"`
}

// ErrorResponse is the body of every non-200 answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}

// Client-facing error messages. Generation failures are deliberately opaque:
// the underlying cause goes to the operator log, never to the client.
const (
	ErrMsgMissingCredential = "Missing GEMINI_API_KEY. Set it in the environment or config.json api_keys."
	ErrMsgInvalidPayload    = "Invalid request payload."
	ErrMsgAgentFailed       = "The autonomous agent could not complete the request."
)
