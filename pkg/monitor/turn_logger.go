package monitor

import "log/slog"

// TurnLogger is the default Monitor: every completed turn becomes one
// structured log line, successes at info, failures at warn.
type TurnLogger struct{}

// NewTurnLogger creates the slog-backed monitor.
func NewTurnLogger() *TurnLogger {
	return &TurnLogger{}
}

// OnTurn implements Monitor.
func (m *TurnLogger) OnTurn(ev TurnEvent) {
	attrs := []any{
		"request_id", ev.RequestID,
		"provider", ev.Provider,
		"messages", ev.Messages,
		"tasks", ev.Tasks,
		"automations", ev.Automations,
		"decisions", ev.Decisions,
		"duration", ev.Duration.String(),
	}
	if ev.Err != nil {
		slog.Warn("Turn failed", append(attrs, "error", ev.Err)...)
		return
	}
	slog.Info("Turn completed", attrs...)
}
