package workspace

import "time"

// Merge combines the prior workspace with a freshly generated update into a
// new snapshot.
//
// The merge policy is whole-state replacement: tasks, automations, decisions
// and insights are taken wholesale from the update. The generation call sees
// the full prior state in its prompt and is expected to re-emit every item it
// wants to keep, so "what changed vs. didn't" lives in the model, not here.
// KnowledgeHighlights is the one field carried forward when the update does
// not supply a replacement.
//
// Two racing calls that started from the same prior snapshot each produce an
// independent result and the client keeps whichever lands last. There is no
// version precondition; last response wins.
func Merge(prior WorkspaceState, update Update, now time.Time) WorkspaceState {
	// UpdatedAt must strictly increase even if the wall clock stalls or the
	// prior snapshot carries a future stamp.
	if !now.After(prior.UpdatedAt) {
		now = prior.UpdatedAt.Add(time.Millisecond)
	}

	highlights := update.KnowledgeHighlights
	if highlights == nil {
		highlights = prior.KnowledgeHighlights
	}

	return WorkspaceState{
		Tasks:               update.Tasks,
		Automations:         update.Automations,
		Decisions:           update.Decisions,
		Insights:            update.Insights,
		KnowledgeHighlights: highlights,
		UpdatedAt:           now,
	}
}
