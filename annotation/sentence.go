package annotation

import (
	"strings"
	"unicode/utf8"
)

// NoLink is the identifier of an entity that is not linked to a knowledge base
// entry.
const NoLink = "*"

// Entity is a labelled span of a sentence. Offsets are relative to the start
// of the sentence text and count code points.
type Entity struct {
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Label      string `json:"label"`
	Identifier string `json:"identifier"`
}

// MultiWordExpression is a set of tokens of one sentence, not necessarily
// adjacent, that form one lexical unit.
type MultiWordExpression struct {
	Lemma      string `json:"lemma"`
	Type       string `json:"type"`
	TokenCount int    `json:"token_count"`

	// 0-based positions in Sentence.Tokens, in the order they were first seen.
	TokenIndices []int `json:"token_indices"`

	// The raw group key of the source encoding.
	GroupID string `json:"group_id"`
}

// Sentence holds the tokens of one sentence and the entities resolved from
// them. A sentence without multi-word expressions has an empty MWEs list.
type Sentence struct {
	Text     string                `json:"text"`
	Tokens   []Token               `json:"tokens"`
	Entities []Entity              `json:"entities"`
	MWEs     []MultiWordExpression `json:"mwes,omitempty"`
}

// Document is the ordered list of sentences of one annotated file.
type Document []Sentence

// TokenTexts returns the text of every token of the sentence.
func (s Sentence) TokenTexts() []string {
	texts := make([]string, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		texts = append(texts, t.Text)
	}
	return texts
}

// Slice returns the part of the sentence text between the code point offsets
// start and end. Out of range offsets are clamped.
func (s Sentence) Slice(start, end int) string {
	runes := []rune(s.Text)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

// EntityTexts returns the surface text of every entity span.
func (s Sentence) EntityTexts() []string {
	texts := make([]string, 0, len(s.Entities))
	for _, e := range s.Entities {
		texts = append(texts, s.Slice(e.Start, e.End))
	}
	return texts
}

// ExpressionTexts returns, for every multi-word expression, its token texts
// joined by a space.
func (s Sentence) ExpressionTexts() []string {
	texts := make([]string, 0, len(s.MWEs))
	for _, mwe := range s.MWEs {
		words := make([]string, 0, len(mwe.TokenIndices))
		for _, idx := range mwe.TokenIndices {
			if idx >= 0 && idx < len(s.Tokens) {
				words = append(words, s.Tokens[idx].Text)
			}
		}
		texts = append(texts, strings.Join(words, " "))
	}
	return texts
}

// Len returns the length of the sentence text in code points.
func (s Sentence) Len() int {
	return utf8.RuneCountInString(s.Text)
}
