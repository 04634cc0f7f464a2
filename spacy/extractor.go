package spacy

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/sasa5linkar/webanno-spacy-converter/annotation"
	"github.com/sasa5linkar/webanno-spacy-converter/tsv"
)

// Extractor turns pipeline documents back into annotated sentences.
type Extractor struct {
	// Token layers that receive Token.Tag and Token.Lemma. Empty means none.
	TagLayer   string
	LemmaLayer string
}

// docEnt is an entity of a doc with its resolved identifier and group.
type docEnt struct {
	Ent
	id    string
	group string
}

// Extract converts docs to sentences, one per doc sentence. A doc without
// sentence spans is one sentence.
//
// Entities spanning several tokens get a group id, unique within one call,
// on both the value and identifier layers of their tokens.
func (x *Extractor) Extract(docs []Doc) annotation.Document {
	out := annotation.Document{}
	group := 1

	for _, d := range docs {
		ents := make([]docEnt, 0, len(d.Ents))
		for _, e := range d.Ents {
			de := docEnt{Ent: e, id: tsv.NormalizeIdentifier(e.KBID)}
			if tokensIn(d.Tokens, e.Start, e.End) > 1 {
				de.group = strconv.Itoa(group)
				group++
			}
			ents = append(ents, de)
		}

		for _, sp := range sentenceSpans(d) {
			out = append(out, x.sentence(d, sp, ents, len(out)+1))
		}
	}
	return out
}

func (x *Extractor) sentence(d Doc, sp Span, ents []docEnt, index int) annotation.Sentence {
	text := []rune(d.Text)
	s := annotation.Sentence{
		Text:     runeSlice(text, sp.Start, sp.End),
		Tokens:   []annotation.Token{},
		Entities: []annotation.Entity{},
	}

	for _, t := range d.Tokens {
		if t.Start < sp.Start || t.Start >= sp.End {
			continue
		}
		tok := annotation.Token{
			SentenceIndex: index,
			TokenIndex:    len(s.Tokens) + 1,
			Text:          runeSlice(text, t.Start, t.End),
			Start:         t.Start - sp.Start,
			End:           t.End - sp.Start,
		}
		if x.TagLayer != "" && t.Tag != "" {
			tok.SetLayer(x.TagLayer, t.Tag)
		}
		if x.LemmaLayer != "" && t.Lemma != "" {
			tok.SetLayer(x.LemmaLayer, t.Lemma)
		}

		for _, e := range ents {
			if e.Start <= t.Start && t.Start < e.End {
				label, id := e.Label, e.id
				if e.group != "" {
					label += "[" + e.group + "]"
					id += "[" + e.group + "]"
				}
				tok.SetLayer(tsv.LabelLayer, label)
				tok.SetLayer(tsv.IdentifierLayer, id)
				break
			}
		}
		s.Tokens = append(s.Tokens, tok)
	}

	for _, e := range ents {
		if e.Start < sp.Start || e.Start >= sp.End {
			continue
		}
		s.Entities = append(s.Entities, annotation.Entity{
			Start:      e.Start - sp.Start,
			End:        min(e.End, sp.End) - sp.Start,
			Label:      e.Label,
			Identifier: e.id,
		})
	}
	return s
}

// sentenceSpans returns the sentence spans of d, or the whole text without
// trailing white space when the doc has none.
func sentenceSpans(d Doc) []Span {
	if len(d.Sents) > 0 {
		return d.Sents
	}
	trimmed := strings.TrimRightFunc(d.Text, unicode.IsSpace)
	if trimmed == "" {
		return nil
	}
	return []Span{{Start: 0, End: len([]rune(trimmed))}}
}

func tokensIn(tokens []Token, start, end int) int {
	n := 0
	for _, t := range tokens {
		if t.Start >= start && t.Start < end {
			n++
		}
	}
	return n
}
