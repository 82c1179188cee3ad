// Package workspace defines the structured state the agent maintains across a
// conversation (tasks, automations, decisions, insights) and the merge rules
// that produce a new snapshot from a generated update.
//
// The service is stateless: the client is the system of record and round-trips
// the full WorkspaceState on every call.
package workspace

import "time"

// Task status values. The generation schema enumerates exactly these.
const (
	TaskBacklog    = "backlog"
	TaskInProgress = "in-progress"
	TaskBlocked    = "blocked"
	TaskDone       = "done"
)

// Priority / impact levels shared by tasks and decisions.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Automation status values.
const (
	AutomationIdle      = "idle"
	AutomationScheduled = "scheduled"
	AutomationRunning   = "running"
)

// Decision status values.
const (
	DecisionOpen   = "open"
	DecisionClosed = "closed"
)

// List size ceilings enforced by the generation schema. The merger itself
// never truncates; an over-limit update is rejected before it gets here.
const (
	MaxTasks       = 12
	MaxAutomations = 6
	MaxDecisions   = 8
	MaxInsights    = 8
)

// Message is one turn of the conversation. Messages are immutable and their
// order in the request payload is the dialogue order.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Task is a unit of work on the board. Identity is ID: the model is
// instructed to carry IDs across turns so "the same task" stays the same
// task; the merger does not itself enforce uniqueness or stability.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Due         string   `json:"due,omitempty"`
	Owner       string   `json:"owner,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Automation is a recurring behavior the agent tracks on behalf of the user.
type Automation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Cadence     string `json:"cadence"`
	Description string `json:"description"`
	Status      string `json:"status"`
	LastRun     string `json:"lastRun,omitempty"`
	NextRun     string `json:"nextRun,omitempty"`
}

// Decision is a pending or settled call the user has delegated tracking of.
type Decision struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Impact  string `json:"impact"`
	Status  string `json:"status"`
	Owner   string `json:"owner,omitempty"`
	Due     string `json:"due,omitempty"`
}

// WorkspaceState is the full persisted-by-reference state for one session.
type WorkspaceState struct {
	Tasks               []Task       `json:"tasks"`
	Automations         []Automation `json:"automations"`
	Decisions           []Decision   `json:"decisions"`
	Insights            []string     `json:"insights"`
	KnowledgeHighlights []string     `json:"knowledgeHighlights"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// Update is the workspace portion of one structured generation result. It is
// only ever constructed from a schema-validated document, so the merger can
// treat it as well-typed.
type Update struct {
	Tasks               []Task       `json:"tasks"`
	Automations         []Automation `json:"automations"`
	Decisions           []Decision   `json:"decisions"`
	Insights            []string     `json:"insights"`
	KnowledgeHighlights []string     `json:"knowledgeHighlights,omitempty"`
}
