// Package search finds the sentences of a parsed document whose entities or
// multi-word expressions satisfy a filter.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sasa5linkar/webanno-spacy-converter/annotation"
)

// Filter selects entities and expressions. Empty fields match anything; a
// Filter with no field set matches every annotation.
type Filter struct {
	// entity fields
	Label      string
	Identifier string
	// Text is matched case-insensitively as a substring of the entity text or
	// the expression tokens.
	Text string

	// expression fields
	MWEType  string
	MWELemma string
}

func (f Filter) hasEntityFields() bool {
	return f.Label != "" || f.Identifier != ""
}

func (f Filter) hasMWEFields() bool {
	return f.MWEType != "" || f.MWELemma != ""
}

func (f Filter) matchEntity(s annotation.Sentence, e annotation.Entity) bool {
	if f.hasMWEFields() {
		return false
	}
	if f.Label != "" && !strings.EqualFold(f.Label, e.Label) {
		return false
	}
	if f.Identifier != "" && f.Identifier != e.Identifier {
		return false
	}
	return containsFold(s.Slice(e.Start, e.End), f.Text)
}

func (f Filter) matchMWE(s annotation.Sentence, m annotation.MultiWordExpression) bool {
	if f.hasEntityFields() {
		return false
	}
	if f.MWEType != "" && !strings.EqualFold(f.MWEType, m.Type) {
		return false
	}
	if f.MWELemma != "" && !containsFold(m.Lemma, f.MWELemma) {
		return false
	}
	return containsFold(expressionText(s, m), f.Text)
}

// String returns the filter in the syntax read by ParseFilter.
func (f Filter) String() string {
	var parts []string
	add := func(key, v string) {
		if v != "" {
			parts = append(parts, key+":"+v)
		}
	}
	add("label", f.Label)
	add("id", f.Identifier)
	add("type", f.MWEType)
	add("lemma", f.MWELemma)
	if f.Text != "" {
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, " ")
}

// Keys are the field prefixes understood by ParseFilter.
var Keys = []string{"label:", "id:", "type:", "lemma:"}

// ParseFilter reads a filter from words like "label:LOC id:Q42 sad". Words
// without a key form the Text.
func ParseFilter(words []string) (Filter, error) {
	var f Filter
	var text []string
	for _, w := range words {
		key, value, ok := strings.Cut(w, ":")
		if !ok {
			text = append(text, w)
			continue
		}
		if value == "" {
			return f, fmt.Errorf("empty value for %q", key)
		}
		switch strings.ToLower(key) {
		case "label":
			f.Label = value
		case "id":
			f.Identifier = value
		case "type":
			f.MWEType = value
		case "lemma":
			f.MWELemma = value
		default:
			// identifiers such as URLs contain colons
			text = append(text, w)
		}
	}
	f.Text = strings.Join(text, " ")
	return f, nil
}

// Match is a sentence with the annotations that satisfied a Filter.
type Match struct {
	// 1-based index of the sentence in the document
	SentenceIndex int                              `json:"sentence_index"`
	Sentence      annotation.Sentence              `json:"sentence"`
	Entities      []annotation.Entity              `json:"entities,omitempty"`
	MWEs          []annotation.MultiWordExpression `json:"mwes,omitempty"`
}

// NumHits is the number of matched annotations.
func (m *Match) NumHits() int {
	return len(m.Entities) + len(m.MWEs)
}

// Search runs filters over one document.
type Search struct {
	doc annotation.Document
}

func New(doc annotation.Document) *Search {
	return &Search{doc: doc}
}

// Sentences returns the sentences with at least one matching annotation,
// most hits first, then in document order.
func (s *Search) Sentences(f Filter) []*Match {
	var results []*Match
	for i, sentence := range s.doc {
		m := &Match{SentenceIndex: i + 1, Sentence: sentence}
		for _, e := range sentence.Entities {
			if f.matchEntity(sentence, e) {
				m.Entities = append(m.Entities, e)
			}
		}
		for _, mwe := range sentence.MWEs {
			if f.matchMWE(sentence, mwe) {
				m.MWEs = append(m.MWEs, mwe)
			}
		}
		if m.NumHits() > 0 {
			results = append(results, m)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].NumHits() > results[j].NumHits()
	})
	return results
}

// Values returns the sorted distinct entity labels, identifiers, expression
// types and lemmas of the document, for completion.
func (s *Search) Values() (labels, ids, types, lemmas []string) {
	seen := map[string]map[string]bool{"label": {}, "id": {}, "type": {}, "lemma": {}}
	add := func(kind, v string, dst *[]string) {
		if v == "" || seen[kind][v] {
			return
		}
		seen[kind][v] = true
		*dst = append(*dst, v)
	}

	for _, sentence := range s.doc {
		for _, e := range sentence.Entities {
			add("label", e.Label, &labels)
			add("id", e.Identifier, &ids)
		}
		for _, m := range sentence.MWEs {
			add("type", m.Type, &types)
			add("lemma", m.Lemma, &lemmas)
		}
	}
	for _, sl := range [][]string{labels, ids, types, lemmas} {
		sort.Strings(sl)
	}
	return labels, ids, types, lemmas
}

func expressionText(s annotation.Sentence, m annotation.MultiWordExpression) string {
	words := make([]string, 0, len(m.TokenIndices))
	for _, i := range m.TokenIndices {
		if i >= 0 && i < len(s.Tokens) {
			words = append(words, s.Tokens[i].Text)
		}
	}
	return strings.Join(words, " ")
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
