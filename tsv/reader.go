package tsv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding/unicode"

	"github.com/sasa5linkar/webanno-spacy-converter/annotation"
	"github.com/sasa5linkar/webanno-spacy-converter/logger"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// line is a non blank input line with its 1-based position in the input.
type line struct {
	num  int
	text string
}

// Parser reads WebAnno TSV files into sentences. The zero value parses with
// the Base variant and does not log.
type Parser struct {
	Variant Variant

	// Log receives debug messages about annotations that are dropped without
	// error. Nil disables them.
	Log *log.Logger
}

// NewParser returns a Parser for the given variant.
func NewParser(v Variant) *Parser {
	return &Parser{Variant: v}
}

// ReadFile parses the file at path with the given variant.
func ReadFile(path string, v Variant) (annotation.Document, error) {
	return NewParser(v).ParseFile(path)
}

// ParseFile parses the file at path. Errors opening or reading the file are
// returned unchanged; malformed content yields a *FormatError.
func (p *Parser) ParseFile(path string) (annotation.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := p.Parse(f)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse reads a whole WebAnno TSV document from r.
func (p *Parser) Parse(r io.Reader) (annotation.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	lines, err := loadLines(data)
	if err != nil {
		return nil, err
	}

	names, numLayers, err := layerNames(lines)
	if err != nil {
		return nil, err
	}

	blocks, err := splitSentences(lines)
	if err != nil {
		return nil, err
	}

	doc := make(annotation.Document, 0, len(blocks))
	for i, block := range blocks {
		s, err := p.parseSentence(block, i+1, names, numLayers)
		if err != nil {
			return nil, err
		}
		doc = append(doc, s)
	}

	return doc, nil
}

// loadLines decodes the input and returns its non blank lines, right-trimmed.
func loadLines(data []byte) ([]line, error) {
	if bytes.HasPrefix(data, utf16LEBOM) || bytes.HasPrefix(data, utf16BEBOM) {
		decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return nil, &FormatError{Msg: fmt.Sprintf("cannot decode UTF-16 input: %v", err)}
		}
		data = decoded
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var lines []line
	for i, raw := range strings.Split(string(data), "\n") {
		if !utf8.ValidString(raw) {
			return nil, &FormatError{Line: i + 1, Msg: "invalid UTF-8"}
		}
		text := strings.TrimRight(raw, " \t\r\n\v\f")
		if text == "" {
			continue
		}
		lines = append(lines, line{num: i + 1, text: text})
	}
	return lines, nil
}

// layerNames maps the zero-based layer column index to the layer names of the
// span layer headers. Several header lines extend the column sequence.
func layerNames(lines []line) (map[int]string, int, error) {
	names := map[int]string{}
	col := 0
	for _, l := range lines {
		if !strings.HasPrefix(l.text, SpanLayerPrefix) {
			continue
		}

		parts := strings.Split(strings.TrimPrefix(l.text, SpanLayerPrefix), LayerSeparator)
		// the first part is the layer type
		for _, name := range parts[1:] {
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, 0, &FormatError{Line: l.num, Text: l.text, Msg: "empty layer name in header"}
			}
			names[col] = name
			col++
		}
	}
	return names, col, nil
}

// splitSentences groups the lines into sentence blocks. Each block starts with
// its #Text= line followed by its token lines.
func splitSentences(lines []line) ([][]line, error) {
	var blocks [][]line
	var current []line
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l.text, TextPrefix):
			if current != nil {
				blocks = append(blocks, current)
			}
			current = []line{l}
		case strings.HasPrefix(l.text, CommentPrefix):
			// header, metadata
		default:
			if current == nil {
				return nil, &FormatError{Line: l.num, Text: l.text, Msg: "token line outside of a sentence block"}
			}
			current = append(current, l)
		}
	}
	if current != nil {
		blocks = append(blocks, current)
	}
	return blocks, nil
}

func (p *Parser) parseSentence(block []line, sentenceIndex int, names map[int]string, numLayers int) (annotation.Sentence, error) {
	text := strings.TrimPrefix(block[0].text, TextPrefix)
	textLen := utf8.RuneCountInString(text)

	tokens := make([]annotation.Token, 0, len(block)-1)
	base := 0
	for i, l := range block[1:] {
		if i == 0 {
			start, _, err := parsePosition(l)
			if err != nil {
				return annotation.Sentence{}, err
			}
			base = start
		}

		tok, err := parseToken(l, sentenceIndex, i+1, base, textLen, names, numLayers)
		if err != nil {
			return annotation.Sentence{}, err
		}
		tokens = append(tokens, tok)
	}

	return p.finalize(text, tokens), nil
}

// finalize derives the entities, and multi-word expressions for the MWE
// variant, from the tokens of a sentence.
func (p *Parser) finalize(text string, tokens []annotation.Token) annotation.Sentence {
	s := annotation.Sentence{
		Text:     text,
		Tokens:   tokens,
		Entities: []annotation.Entity{},
	}

	switch p.Variant {
	case NEL:
		s.Entities = extractEntities(tokens, p.logger())
	case MWE:
		s.Entities = extractEntities(tokens, p.logger())
		s.MWEs = extractMWEs(tokens, p.logger())
	}
	return s
}

func (p *Parser) logger() *log.Logger {
	if p.Log == nil {
		return discard
	}
	return p.Log
}

var discard = logger.Discard()

// parseToken reads one token line. Offsets are made relative to base, the
// start of the first token, and must fit in the textLen code points of the
// sentence text.
func parseToken(l line, sentenceIndex, tokenIndex, base, textLen int, names map[int]string, numLayers int) (annotation.Token, error) {
	fields := strings.Split(l.text, FieldSeparator)
	if len(fields) < 3 {
		return annotation.Token{}, &FormatError{Line: l.num, Text: l.text, Msg: fmt.Sprintf("expected at least 3 tab separated fields, got %d", len(fields))}
	}

	start, end, err := parsePosition(l)
	if err != nil {
		return annotation.Token{}, err
	}
	if start < base {
		return annotation.Token{}, &FormatError{Line: l.num, Text: l.text, Msg: "token starts before its sentence"}
	}
	if end-base > textLen {
		return annotation.Token{}, &FormatError{Line: l.num, Text: l.text, Msg: fmt.Sprintf("token ends at %d, past the %d characters of its sentence", end-base, textLen)}
	}

	cols := fields[3:]
	if len(cols) < numLayers {
		return annotation.Token{}, &FormatError{Line: l.num, Text: l.text, Msg: fmt.Sprintf("expected %d layer columns, got %d", numLayers, len(cols))}
	}

	tok := annotation.Token{
		SentenceIndex: sentenceIndex,
		TokenIndex:    tokenIndex,
		Text:          fields[2],
		Start:         start - base,
		End:           end - base,
	}

	for i, col := range cols {
		if col == Absent || col == "" {
			continue
		}
		name, ok := names[i]
		if !ok {
			name = "layer" + strconv.Itoa(i)
		}
		tok.SetLayer(name, col)
	}

	return tok, nil
}

// parsePosition reads the "start-end" or "start" position field of a token
// line.
func parsePosition(l line) (start, end int, err error) {
	fields := strings.SplitN(l.text, FieldSeparator, 3)
	if len(fields) < 2 {
		return 0, 0, &FormatError{Line: l.num, Text: l.text, Msg: "missing position field"}
	}

	position := fields[1]
	a, b, ok := strings.Cut(position, "-")
	if !ok {
		b = a
	}

	start, errA := strconv.Atoi(a)
	end, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return 0, 0, &FormatError{Line: l.num, Text: l.text, Msg: fmt.Sprintf("malformed position %q", position)}
	}
	if start < 0 || end < start {
		return 0, 0, &FormatError{Line: l.num, Text: l.text, Msg: fmt.Sprintf("invalid position range %q", position)}
	}
	return start, end, nil
}
