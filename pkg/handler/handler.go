// Package handler orchestrates one agent turn: credential check, payload
// parse, knowledge retrieval, prompt composition, structured generation, and
// the workspace merge. Each request is self-contained; two racing calls on
// the same snapshot are not coordinated (last response wins).
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"meridian/pkg/api"
	"meridian/pkg/config"
	"meridian/pkg/knowledge"
	"meridian/pkg/llm"
	"meridian/pkg/monitor"
	"meridian/pkg/prompt"
	"meridian/pkg/utils"
	"meridian/pkg/workspace"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// AgentHandler serves the agent endpoint. It owns no mutable state beyond
// its collaborators; the workspace lives with the client.
type AgentHandler struct {
	client     llm.StructuredClient
	retriever  *knowledge.Retriever
	credential string
	sysCfg     *config.SystemConfig
	monitor    monitor.Monitor
	now        func() time.Time
}

// NewAgentHandler wires the handler. client may be nil when provider
// initialization failed at startup; requests then fail with the same
// configuration error as a missing credential would surface later.
func NewAgentHandler(client llm.StructuredClient, retriever *knowledge.Retriever, credential string, sysCfg *config.SystemConfig, mon monitor.Monitor) *AgentHandler {
	if mon == nil {
		mon = monitor.NewTurnLogger()
	}
	return &AgentHandler{
		client:     client,
		retriever:  retriever,
		credential: credential,
		sysCfg:     sysCfg,
		monitor:    mon,
		now:        time.Now,
	}
}

// HandleAgent processes POST /agent.
func (h *AgentHandler) HandleAgent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	start := time.Now()
	requestID := utils.ShortID()
	ctx := monitor.WithRequestID(r.Context(), requestID)

	// Credential check comes before any other processing, I/O included.
	if h.credential == "" || h.client == nil {
		slog.ErrorContext(ctx, "Generation credential missing")
		writeError(w, http.StatusInternalServerError, api.ErrMsgMissingCredential)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, api.ErrMsgInvalidPayload)
		return
	}

	var req api.AgentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		slog.WarnContext(ctx, "Malformed request payload", "error", err)
		writeError(w, http.StatusBadRequest, api.ErrMsgInvalidPayload)
		return
	}

	slog.InfoContext(ctx, "Agent turn started", "messages", len(req.Messages), "tasks", len(req.Workspace.Tasks))

	// Retrieval queries on the latest user message; no user message means
	// an empty query, which retrieves nothing and fails nothing.
	query := prompt.LatestUserContent(req.Messages)
	entries := h.retriever.Search(query, "")

	transcript := prompt.FormatTranscript(req.Messages)
	contextualPrompt := prompt.Compose(entries, transcript)
	systemInstructions := prompt.SystemInstructions(req.Workspace)

	genCtx, cancel := context.WithTimeout(ctx, time.Duration(h.sysCfg.LLMTimeoutMs)*time.Millisecond)
	defer cancel()

	update, err := llm.Generate(genCtx, h.client, systemInstructions, contextualPrompt)
	if err != nil {
		// Operators get the cause; the client gets an opaque failure.
		slog.ErrorContext(ctx, "Generation failed", "error", err)
		h.monitor.OnTurn(monitor.TurnEvent{
			Timestamp: h.now(),
			RequestID: requestID,
			Provider:  h.client.Provider(),
			Messages:  len(req.Messages),
			Duration:  time.Since(start),
			Err:       err,
		})
		writeError(w, http.StatusInternalServerError, api.ErrMsgAgentFailed)
		return
	}

	merged := workspace.Merge(req.Workspace, update.WorkspaceUpdate(), h.now().UTC())

	resp := api.AgentResponse{
		Reply:         update.Reply,
		Workspace:     merged,
		ActionSummary: update.ActionSummary,
	}

	h.monitor.OnTurn(monitor.TurnEvent{
		Timestamp:   h.now(),
		RequestID:   requestID,
		Provider:    h.client.Provider(),
		Messages:    len(req.Messages),
		Tasks:       len(merged.Tasks),
		Automations: len(merged.Automations),
		Decisions:   len(merged.Decisions),
		Duration:    time.Since(start),
	})
	slog.InfoContext(ctx, "Agent turn finished", "duration", time.Since(start).String(), "tasks", len(merged.Tasks))

	writeJSON(w, http.StatusOK, resp)
}

// HandleSeed processes GET /agent/seed: a fresh workspace for a new session.
func (h *AgentHandler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}
	writeJSON(w, http.StatusOK, workspace.Seed())
}

// HandleHealth processes GET /healthz.
func (h *AgentHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}
	provider := "none"
	if h.client != nil {
		provider = h.client.Provider()
	}
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok", Provider: provider})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Error: msg})
}
