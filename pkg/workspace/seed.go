package workspace

import (
	"time"

	"meridian/pkg/utils"
)

// Seed returns the workspace a brand-new session starts from: one starter
// task so the board is not empty, no automations or decisions yet. The
// client holds this from here on; the server never stores it.
func Seed() WorkspaceState {
	return WorkspaceState{
		Tasks: []Task{
			{
				ID:          utils.GenerateID(),
				Title:       "Tell the agent what you are working on",
				Description: "Describe a goal or paste a plan; the agent will break it into tracked tasks.",
				Status:      TaskBacklog,
				Priority:    LevelMedium,
			},
		},
		Automations:         []Automation{},
		Decisions:           []Decision{},
		Insights:            []string{},
		KnowledgeHighlights: []string{},
		UpdatedAt:           time.Now().UTC(),
	}
}
