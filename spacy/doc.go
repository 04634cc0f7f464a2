// Package spacy converts annotated sentences to and from the documents of an
// NLP pipeline. Documents have the shape spaCy produces with Doc.to_json, with
// character offsets counted in code points.
package spacy

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// NIL is the knowledge base id of an entity that is not linked.
const NIL = "NIL"

// Doc is a pipeline document holding one or more sentences.
type Doc struct {
	Text   string  `json:"text"`
	Ents   []Ent   `json:"ents"`
	Sents  []Span  `json:"sents"`
	Tokens []Token `json:"tokens"`
}

// Ent is a labeled entity span of a Doc.
type Ent struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
	KBID  string `json:"kb_id,omitempty"`
}

type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Token is a word of a Doc. Start and End are offsets into Doc.Text.
type Token struct {
	ID    int    `json:"id"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Tag   string `json:"tag,omitempty"`
	Lemma string `json:"lemma,omitempty"`
}

// TokenText returns the text of the token in d.
func (d Doc) TokenText(t Token) string {
	return d.SpanText(t.Start, t.End)
}

// SpanText returns the text between the code point offsets start and end,
// clamped to the text.
func (d Doc) SpanText(start, end int) string {
	return runeSlice([]rune(d.Text), start, end)
}

// Validate checks that all spans of the document lie inside its text.
func (d Doc) Validate() error {
	n := len([]rune(d.Text))
	check := func(kind string, i, start, end int) error {
		if start < 0 || end < start || end > n {
			return fmt.Errorf("%s %d: span %d-%d outside of text of length %d", kind, i, start, end, n)
		}
		return nil
	}

	for i, t := range d.Tokens {
		if err := check("token", i, t.Start, t.End); err != nil {
			return err
		}
	}
	for i, s := range d.Sents {
		if err := check("sentence", i, s.Start, s.End); err != nil {
			return err
		}
	}
	for i, e := range d.Ents {
		if err := check("entity", i, e.Start, e.End); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads a JSON array of docs from r.
func Decode(r io.Reader) ([]Doc, error) {
	var docs []Doc
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("JSON decoding error: %w", err)
	}
	for i, d := range docs {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("doc %d: %w", i, err)
		}
	}
	return docs, nil
}

// Encode writes docs to w as an indented JSON array.
func Encode(w io.Writer, docs []Doc) error {
	if docs == nil {
		docs = []Doc{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

// ReadFile reads the JSON docs stored at path.
func ReadFile(path string) ([]Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// WriteFile writes docs as JSON to path.
func WriteFile(path string, docs []Doc) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Encode(f, docs)
}

func runeSlice(r []rune, start, end int) string {
	start = max(0, min(start, len(r)))
	end = max(start, min(end, len(r)))
	return string(r[start:end])
}
