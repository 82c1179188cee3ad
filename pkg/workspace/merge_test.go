package workspace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priorState() WorkspaceState {
	return WorkspaceState{
		Tasks: []Task{
			{ID: "t1", Title: "Draft onboarding flow", Status: TaskInProgress, Priority: LevelHigh},
			{ID: "t2", Title: "Review vendor contract", Status: TaskBacklog, Priority: LevelLow},
		},
		Automations: []Automation{
			{ID: "a1", Name: "Weekly digest", Cadence: "every Monday", Status: AutomationScheduled},
		},
		Decisions:           []Decision{{ID: "d1", Title: "Pick CRM", Impact: LevelHigh, Status: DecisionOpen}},
		Insights:            []string{"Launch risk is concentrated in week 2"},
		KnowledgeHighlights: []string{"Onboarding playbook, step 3"},
		UpdatedAt:           time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMergeReplacesListsWholesale(t *testing.T) {
	prior := priorState()
	update := Update{
		Tasks: []Task{
			prior.Tasks[0],
			prior.Tasks[1],
			{ID: "t3", Title: "Schedule kickoff", Status: TaskBacklog, Priority: LevelMedium},
		},
		Automations: []Automation{},
		Decisions:   prior.Decisions,
		Insights:    []string{"Kickoff unblocks three downstream tasks"},
	}

	now := prior.UpdatedAt.Add(time.Minute)
	merged := Merge(prior, update, now)

	// Prior tasks survive untouched, the new one lands in generation order.
	require.Len(t, merged.Tasks, 3)
	assert.Equal(t, "t1", merged.Tasks[0].ID)
	assert.Equal(t, "t2", merged.Tasks[1].ID)
	assert.Equal(t, "t3", merged.Tasks[2].ID)
	assert.Equal(t, prior.Tasks[0], merged.Tasks[0])

	// Replacement is wholesale: an empty generated list empties the board.
	assert.Empty(t, merged.Automations)
	assert.Equal(t, update.Insights, merged.Insights)
	assert.Equal(t, now, merged.UpdatedAt)
}

func TestMergeKeepsHighlightsWhenOmitted(t *testing.T) {
	prior := priorState()
	merged := Merge(prior, Update{}, prior.UpdatedAt.Add(time.Second))
	assert.Equal(t, prior.KnowledgeHighlights, merged.KnowledgeHighlights)
}

func TestMergeReplacesHighlightsWhenSupplied(t *testing.T) {
	prior := priorState()
	update := Update{KnowledgeHighlights: []string{"New highlight"}}
	merged := Merge(prior, update, prior.UpdatedAt.Add(time.Second))
	assert.Equal(t, []string{"New highlight"}, merged.KnowledgeHighlights)
}

func TestMergeEmptyHighlightsIsAReplacement(t *testing.T) {
	prior := priorState()
	update := Update{KnowledgeHighlights: []string{}}
	merged := Merge(prior, update, prior.UpdatedAt.Add(time.Second))
	assert.Empty(t, merged.KnowledgeHighlights)
}

func TestMergeUpdatedAtStrictlyIncreases(t *testing.T) {
	prior := priorState()

	// Normal case: the merge stamp is the supplied clock.
	m1 := Merge(prior, Update{}, prior.UpdatedAt.Add(time.Minute))
	assert.True(t, m1.UpdatedAt.After(prior.UpdatedAt))

	// Stalled or rewound clock: the stamp still moves forward.
	m2 := Merge(m1, Update{}, m1.UpdatedAt)
	assert.True(t, m2.UpdatedAt.After(m1.UpdatedAt))

	m3 := Merge(m2, Update{}, m2.UpdatedAt.Add(-time.Hour))
	assert.True(t, m3.UpdatedAt.After(m2.UpdatedAt))
}

func TestSeedShape(t *testing.T) {
	seed := Seed()
	require.Len(t, seed.Tasks, 1)
	assert.Len(t, seed.Tasks[0].ID, 24)
	assert.NotNil(t, seed.Automations)
	assert.NotNil(t, seed.Decisions)
	assert.NotNil(t, seed.Insights)
	assert.NotNil(t, seed.KnowledgeHighlights)
	assert.False(t, seed.UpdatedAt.IsZero())
}
