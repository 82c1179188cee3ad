package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []Entry {
	return []Entry{
		{Title: "Launch readiness checklist", Domain: "operations", Summary: "A launch is ready when blockers have owners.", Takeaways: []string{"Assign an owner to every blocking task"}},
		{Title: "Onboarding program design", Domain: "onboarding", Summary: "Front-load one visible win.", Takeaways: []string{"Lead with a guided task"}},
		{Title: "Weekly digest automation", Domain: "automation", Summary: "Generate digests from tracked state.", Takeaways: []string{"Fixed cadence beats ad-hoc updates"}},
	}
}

func TestSearchRanksTitleHitsFirst(t *testing.T) {
	r := NewRetriever(testEntries(), 3)

	got := r.Search("plan the onboarding launch", "")
	require.NotEmpty(t, got)
	// "onboarding" hits a title and a domain; "launch" hits a title and a summary.
	assert.Equal(t, "Onboarding program design", got[0].Title)
	assert.Equal(t, "Launch readiness checklist", got[1].Title)
}

func TestSearchEmptyQuery(t *testing.T) {
	r := NewRetriever(testEntries(), 3)
	assert.Nil(t, r.Search("", ""))
	assert.Nil(t, r.Search("   ", ""))
	assert.Nil(t, r.Search("the a of", ""), "stop words alone carry no signal")
}

func TestSearchDomainFilter(t *testing.T) {
	r := NewRetriever(testEntries(), 3)
	got := r.Search("launch onboarding digest", "automation")
	require.Len(t, got, 1)
	assert.Equal(t, "Weekly digest automation", got[0].Title)
}

func TestSearchLimitAndDeterminism(t *testing.T) {
	r := NewRetriever(testEntries(), 2)
	a := r.Search("task owner cadence digest launch", "")
	b := r.Search("task owner cadence digest launch", "")
	assert.Equal(t, a, b, "identical input must rank identically")
	assert.LessOrEqual(t, len(a), 2)
}

func TestSearchNoMatches(t *testing.T) {
	r := NewRetriever(testEntries(), 3)
	assert.Empty(t, r.Search("quantum chromodynamics", ""))
}

func TestReloadSwapsCorpus(t *testing.T) {
	r := NewRetriever(testEntries(), 3)
	require.Equal(t, 3, r.Size())

	r.Reload([]Entry{{Title: "Only entry", Domain: "misc", Summary: "solitary"}})
	assert.Equal(t, 1, r.Size())
	got := r.Search("solitary", "")
	require.Len(t, got, 1)
	assert.Equal(t, "Only entry", got[0].Title)
}

func TestLoadCorpusEmbedded(t *testing.T) {
	entries, err := LoadCorpus("")
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
	for _, e := range entries {
		assert.NotEmpty(t, e.Title)
		assert.NotEmpty(t, e.Domain)
		assert.NotEmpty(t, e.Takeaways)
	}
}

func TestLoadCorpusMissingFile(t *testing.T) {
	_, err := LoadCorpus("does/not/exist.yaml")
	assert.Error(t, err)
}
