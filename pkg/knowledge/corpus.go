// Package knowledge holds the static reference corpus and the lexical
// retriever the agent uses to ground its replies. The corpus is read-only at
// search time; reloads swap the whole entry slice atomically.
package knowledge

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed corpus.yaml
var defaultCorpus []byte

// Entry is one retrievable reference snippet.
type Entry struct {
	Title     string   `yaml:"title" json:"title"`
	Domain    string   `yaml:"domain" json:"domain"`
	Summary   string   `yaml:"summary" json:"summary"`
	Takeaways []string `yaml:"takeaways" json:"takeaways"`
}

type corpusFile struct {
	Entries []Entry `yaml:"entries"`
}

// LoadCorpus parses a corpus YAML file. When path is empty the embedded
// default corpus is used.
func LoadCorpus(path string) ([]Entry, error) {
	data := defaultCorpus
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read corpus file: %w", err)
		}
		data = b
	}

	var f corpusFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse corpus: %w", err)
	}
	if len(f.Entries) == 0 {
		return nil, fmt.Errorf("corpus contains no entries")
	}
	return f.Entries, nil
}
