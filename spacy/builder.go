package spacy

import (
	"strings"
	"unicode/utf8"

	"github.com/sasa5linkar/webanno-spacy-converter/annotation"
)

// DefaultBatchSize is the number of sentences combined into one Doc.
const DefaultBatchSize = 10

// Builder turns annotated sentences into pipeline documents. Token boundaries
// are kept exactly as annotated.
type Builder struct {
	// Sentences per Doc. Values below 1 mean DefaultBatchSize.
	BatchSize int

	// Token layers copied into Token.Tag and Token.Lemma. Empty means none.
	TagLayer   string
	LemmaLayer string

	// NER adds the sentence entities to the Doc. NEL additionally keeps their
	// knowledge base ids.
	NER bool
	NEL bool
}

// NewBuilder returns a Builder with the default batch size that carries
// entities and their links.
func NewBuilder() *Builder {
	return &Builder{BatchSize: DefaultBatchSize, NER: true, NEL: true}
}

// Build converts sentences to docs, BatchSize sentences per Doc. The last Doc
// holds the remaining sentences. Sentences without tokens are skipped.
func (b *Builder) Build(sentences []annotation.Sentence) []Doc {
	size := b.BatchSize
	if size < 1 {
		size = DefaultBatchSize
	}

	docs := []Doc{}
	var batch []annotation.Sentence
	for _, s := range sentences {
		if len(s.Tokens) == 0 {
			continue
		}
		batch = append(batch, s)
		if len(batch) == size {
			docs = append(docs, b.buildDoc(batch))
			batch = nil
		}
	}
	if len(batch) > 0 {
		docs = append(docs, b.buildDoc(batch))
	}
	return docs
}

// buildDoc concatenates the sentences of a batch into one Doc.
func (b *Builder) buildDoc(batch []annotation.Sentence) Doc {
	var text strings.Builder
	doc := Doc{Ents: []Ent{}, Sents: []Span{}, Tokens: []Token{}}

	offset := 0
	for _, s := range batch {
		spaces := Spaces(s.Tokens)

		// doc token index of each sentence token
		first := len(doc.Tokens)
		for i, tok := range s.Tokens {
			n := utf8.RuneCountInString(tok.Text)
			t := Token{ID: len(doc.Tokens), Start: offset, End: offset + n}
			if b.TagLayer != "" {
				t.Tag, _ = tok.Layer(b.TagLayer)
			}
			if b.LemmaLayer != "" {
				t.Lemma, _ = tok.Layer(b.LemmaLayer)
			}
			doc.Tokens = append(doc.Tokens, t)

			text.WriteString(tok.Text)
			offset += n
			if spaces[i] {
				text.WriteString(" ")
				offset++
			}
		}
		last := len(doc.Tokens) - 1
		doc.Sents = append(doc.Sents, Span{Start: doc.Tokens[first].Start, End: doc.Tokens[last].End})

		if b.NER {
			doc.Ents = append(doc.Ents, b.entities(s, doc.Tokens[first:])...)
		}
	}

	doc.Text = text.String()
	return doc
}

// entities maps the sentence entities onto the doc tokens of the sentence. An
// entity whose boundaries do not coincide with token boundaries is dropped.
func (b *Builder) entities(s annotation.Sentence, tokens []Token) []Ent {
	var ents []Ent
	for _, e := range s.Entities {
		first, last := -1, -1
		for i, tok := range s.Tokens {
			if tok.Start == e.Start && first < 0 {
				first = i
			}
			if tok.End == e.End {
				last = i
			}
		}
		if first < 0 || last < first {
			continue
		}

		ent := Ent{Start: tokens[first].Start, End: tokens[last].End, Label: e.Label}
		if b.NEL {
			ent.KBID = e.Identifier
			if ent.KBID == annotation.NoLink || ent.KBID == "" {
				ent.KBID = NIL
			}
		}
		ents = append(ents, ent)
	}
	return ents
}

// Spaces reports for each token whether a space follows it. Tokens whose end
// equals the start of the next token are joined; the last token is always
// followed by a space.
func Spaces(tokens []annotation.Token) []bool {
	spaces := make([]bool, len(tokens))
	for i := range tokens {
		if i == len(tokens)-1 {
			spaces[i] = true
			break
		}
		spaces[i] = tokens[i].End != tokens[i+1].Start
	}
	return spaces
}
