package knowledge

import (
	"sort"
	"strings"
	"sync/atomic"
	"unicode"
)

// Field weights for lexical scoring. A query term hitting the title counts
// for more than the same term buried in a takeaway.
const (
	titleWeight    = 3.0
	domainWeight   = 2.0
	summaryWeight  = 1.0
	takeawayWeight = 0.5
)

// Retriever answers free-text queries against the corpus with deterministic
// keyword-overlap ranking. It is safe for concurrent use; Reload swaps the
// corpus atomically without blocking in-flight searches.
type Retriever struct {
	entries atomic.Pointer[[]Entry]
	limit   int
}

// NewRetriever builds a retriever over the given entries, returning at most
// limit results per search.
func NewRetriever(entries []Entry, limit int) *Retriever {
	if limit <= 0 {
		limit = 3
	}
	r := &Retriever{limit: limit}
	r.entries.Store(&entries)
	return r
}

// Reload replaces the corpus. Searches started before the swap finish
// against the old slice.
func (r *Retriever) Reload(entries []Entry) {
	r.entries.Store(&entries)
}

// Size reports the number of entries currently loaded.
func (r *Retriever) Size() int {
	return len(*r.entries.Load())
}

type scoredEntry struct {
	entry Entry
	score float64
	index int
}

// Search returns up to the configured number of entries ranked by keyword
// overlap with the query. An empty or stop-word-only query returns nil; it
// is never an error. When domain is non-empty only entries in that domain
// are considered. Ordering is stable for identical input: score descending,
// corpus order as tie-break.
func (r *Retriever) Search(query, domain string) []Entry {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	entries := *r.entries.Load()
	var scored []scoredEntry
	for i, e := range entries {
		if domain != "" && !strings.EqualFold(domain, e.Domain) {
			continue
		}
		s := scoreEntry(e, terms)
		if s > 0 {
			scored = append(scored, scoredEntry{entry: e, score: s, index: i})
		}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		if scored[a].score != scored[b].score {
			return scored[a].score > scored[b].score
		}
		return scored[a].index < scored[b].index
	})

	n := len(scored)
	if n > r.limit {
		n = r.limit
	}
	out := make([]Entry, 0, n)
	for _, s := range scored[:n] {
		out = append(out, s.entry)
	}
	return out
}

func scoreEntry(e Entry, terms []string) float64 {
	title := strings.ToLower(e.Title)
	domain := strings.ToLower(e.Domain)
	summary := strings.ToLower(e.Summary)
	takeaways := strings.ToLower(strings.Join(e.Takeaways, " "))

	var score float64
	for _, t := range terms {
		if strings.Contains(title, t) {
			score += titleWeight
		}
		if strings.Contains(domain, t) {
			score += domainWeight
		}
		if strings.Contains(summary, t) {
			score += summaryWeight
		}
		if strings.Contains(takeaways, t) {
			score += takeawayWeight
		}
	}
	return score
}

// stopWords are query tokens too common to carry relevance signal.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "for": true,
	"how": true, "i": true, "in": true, "is": true, "it": true,
	"me": true, "my": true, "of": true, "on": true, "or": true,
	"our": true, "the": true, "to": true, "we": true, "what": true,
	"with": true, "you": true,
}

func tokenize(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	var terms []string
	for _, f := range fields {
		if len(f) < 2 || stopWords[f] {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}
