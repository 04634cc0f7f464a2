package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sasa5linkar/webanno-spacy-converter/annotation"
	"github.com/sasa5linkar/webanno-spacy-converter/search"
)

const (
	partialOffset = 6
	Defaultformat = "all"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

// MatchRenderer writes search results.
type MatchRenderer interface {
	Match(results []*search.Match)
}

func SupportedFormats() []string {
	return []string{"all", "part", "annotations"}
}

type Renderer struct {
	Out io.Writer

	HasColor bool

	HasPrefix bool

	PrefixFunc func(*search.Match) string

	// Format determines the format of the sentence
	//
	// all: print all sentence
	// part: print the surrounding of the hits in the sentence, cut the rest.
	// annotations: print only the matched entities and expressions
	Format string

	// Show only sentences with at least this amount of hits
	NumHits int
}

var _ MatchRenderer = (*Renderer)(nil)

func NewRenderer() *Renderer {
	return &Renderer{Out: os.Stdout, Format: Defaultformat}
}

// Match writes one line per result. Entity tokens are highlighted in green,
// expression tokens in yellow.
func (r *Renderer) Match(results []*search.Match) {
	for _, m := range results {
		if r.NumHits > 0 && m.NumHits() < r.NumHits {
			continue
		}

		var text string
		switch r.Format {
		case "part":
			text = r.syntagma(m.Sentence, m.Entities, m.MWEs)
		case "annotations":
			text = annotations(m.Sentence, m.Entities, m.MWEs)
		default:
			text = r.sentence(m.Sentence, 0, len(m.Sentence.Tokens), m.Entities, m.MWEs)
		}

		fmt.Fprintf(r.Out, "%s%s\n", r.buildPrefix(m), strings.ReplaceAll(text, "\n", " "))
	}
}

// Sentence writes s with all its entities and expressions highlighted.
func (r *Renderer) Sentence(s annotation.Sentence, prefix string) {
	fmt.Fprintf(r.Out, "%s%s\n", prefix, r.SentenceString(s))
}

func (r *Renderer) SentenceString(s annotation.Sentence) string {
	text := r.sentence(s, 0, len(s.Tokens), s.Entities, s.MWEs)
	return strings.ReplaceAll(text, "\n", " ")
}

// sentence renders the tokens first to last (exclusive) of s, keeping the
// text between them.
func (r *Renderer) sentence(s annotation.Sentence, first, last int, ents []annotation.Entity, mwes []annotation.MultiWordExpression) string {
	if len(s.Tokens) == 0 {
		return s.Text
	}

	inMWE := map[int]bool{}
	for _, m := range mwes {
		for _, i := range m.TokenIndices {
			inMWE[i] = true
		}
	}

	var str strings.Builder
	pos := s.Tokens[first].Start
	for i := first; i < last; i++ {
		token := s.Tokens[i]
		if token.Start > pos {
			str.WriteString(s.Slice(pos, token.Start))
		}

		text := s.Slice(token.Start, token.End)
		str.WriteString(r.colorToken(text, inEntity(token, ents), inMWE[i]))
		pos = max(pos, token.End)
	}

	return str.String()
}

// syntagma renders the hits with partialOffset tokens around them.
func (r *Renderer) syntagma(s annotation.Sentence, ents []annotation.Entity, mwes []annotation.MultiWordExpression) string {
	firstHit, lastHit := -1, -1
	mark := func(i int) {
		if firstHit < 0 || i < firstHit {
			firstHit = i
		}
		if i > lastHit {
			lastHit = i
		}
	}
	for i, token := range s.Tokens {
		if inEntity(token, ents) {
			mark(i)
		}
	}
	for _, m := range mwes {
		for _, i := range m.TokenIndices {
			if i >= 0 && i < len(s.Tokens) {
				mark(i)
			}
		}
	}

	// if no hits, we print the whole sentence
	if firstHit < 0 {
		return r.sentence(s, 0, len(s.Tokens), ents, mwes)
	}

	first := max(0, firstHit-partialOffset)
	last := min(len(s.Tokens), lastHit+partialOffset+1)
	return r.sentence(s, first, last, ents, mwes)
}

// annotations renders entities as text/label/identifier and expressions as
// text/type/lemma.
func annotations(s annotation.Sentence, ents []annotation.Entity, mwes []annotation.MultiWordExpression) string {
	var parts []string
	for _, e := range ents {
		parts = append(parts, fmt.Sprintf("%s/%s/%s", s.Slice(e.Start, e.End), e.Label, e.Identifier))
	}
	for _, m := range mwes {
		words := make([]string, 0, len(m.TokenIndices))
		for _, i := range m.TokenIndices {
			if i >= 0 && i < len(s.Tokens) {
				words = append(words, s.Tokens[i].Text)
			}
		}
		parts = append(parts, fmt.Sprintf("%s/%s/%s", strings.Join(words, " "), m.Type, m.Lemma))
	}
	return strings.Join(parts, " | ")
}

func inEntity(token annotation.Token, ents []annotation.Entity) bool {
	for _, e := range ents {
		if token.Start >= e.Start && token.End <= e.End {
			return true
		}
	}
	return false
}

func (r *Renderer) colorToken(text string, entity, mwe bool) string {
	if !r.HasColor {
		return text
	}

	switch {
	case entity:
		return Green256 + text + Off
	case mwe:
		return Yellow256 + text + Off
	}
	return text
}

func (r *Renderer) buildPrefix(m *search.Match) string {
	if !r.HasPrefix {
		return PrefixFuncEmpty(m)
	}

	if r.PrefixFunc != nil {
		return r.PrefixFunc(m)
	}

	// Default
	return fmt.Sprintf("[%5d:%2d] ✍  ", m.SentenceIndex, m.NumHits())
}

func PrefixFuncEmpty(m *search.Match) string {
	return ""
}

func PrefixFuncIconHand(m *search.Match) string {
	return fmt.Sprintf("%2d ✍  ", m.SentenceIndex)
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {
	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}
	r.Format = supported[0]
}

func (r *Renderer) NextPrefix() {
	// toggle
	r.HasPrefix = !r.HasPrefix
}
