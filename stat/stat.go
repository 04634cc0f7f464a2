// Package stat aggregates counts over parsed annotation documents.
package stat

import (
	"sort"

	"github.com/sasa5linkar/webanno-spacy-converter/annotation"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences          int
	NumTokens             int
	NumEntities           int
	NumLinked             int
	NumMWEs               int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	// entities per label and expressions per type
	Labels   map[string]int
	MWETypes map[string]int
}

// Count is a name with its number of occurrences.
type Count struct {
	Name string
	N    int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{
		TokensPerSentenceDis: map[int]int{},
		Labels:               map[string]int{},
		MWETypes:             map[string]int{},
	}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the sentences of doc to the statistics. It can be called
// for several documents.
func (h *Handler) Aggregate(doc annotation.Document) {
	h.stats.NumSentences += len(doc)

	for _, sentence := range doc {
		h.stats.NumTokens += len(sentence.Tokens)
		h.stats.TokensPerSentenceDis[len(sentence.Tokens)]++

		for _, e := range sentence.Entities {
			h.stats.NumEntities++
			h.stats.Labels[e.Label]++
			if e.Identifier != annotation.NoLink {
				h.stats.NumLinked++
			}
		}
		for _, m := range sentence.MWEs {
			h.stats.NumMWEs++
			h.stats.MWETypes[m.Type]++
		}
	}

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
}

// Sorted returns the counts of m, most frequent first, then by name.
func Sorted(m map[string]int) []Count {
	counts := make([]Count, 0, len(m))
	for name, n := range m {
		counts = append(counts, Count{Name: name, N: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].N != counts[j].N {
			return counts[i].N > counts[j].N
		}
		return counts[i].Name < counts[j].Name
	})
	return counts
}
