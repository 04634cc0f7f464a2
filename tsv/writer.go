package tsv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sasa5linkar/webanno-spacy-converter/annotation"
)

// Writer writes sentences as a WebAnno TSV 3.3 document.
type Writer struct {
	Variant Variant

	// EntityPrefix is prepended to bare identifiers written by the NEL and
	// MWE variants.
	EntityPrefix string
}

// NewWriter returns a Writer for the given variant linking identifiers to
// Wikidata.
func NewWriter(v Variant) *Writer {
	return &Writer{Variant: v, EntityPrefix: WikidataEntityPrefix}
}

// WriteFile writes doc to path with the given variant.
func WriteFile(path string, doc annotation.Document, v Variant) error {
	return NewWriter(v).WriteFile(path, doc)
}

// WriteFile creates or truncates the file at path and writes doc to it. On
// error the content of the file is undefined.
func (w *Writer) WriteFile(path string, doc annotation.Document) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return w.Write(f, doc)
}

// Write writes the format header, the layer header and one block per
// sentence. Token positions are shifted by the summed text length of the
// preceding sentences, so they increase over the whole document.
func (w *Writer) Write(out io.Writer, doc annotation.Document) error {
	bw := bufio.NewWriter(out)

	var columns []string
	if w.Variant == Base {
		columns = baseColumns(doc)
	}

	fmt.Fprintln(bw, FormatHeader)
	fmt.Fprint(bw, strings.Join(w.layerHeader(columns), "\n")+"\n\n")

	offset := 0
	for _, s := range doc {
		fmt.Fprint(bw, "\n")
		fmt.Fprintf(bw, "%s%s\n", TextPrefix, s.Text)
		for _, tok := range s.Tokens {
			fields := []string{
				fmt.Sprintf("%d-%d", tok.SentenceIndex, tok.TokenIndex),
				fmt.Sprintf("%d-%d", tok.Start+offset, tok.End+offset),
				tok.Text,
			}
			fields = append(fields, w.tokenLayers(tok, columns)...)
			fmt.Fprint(bw, strings.Join(fields, FieldSeparator)+FieldSeparator+"\n")
		}
		offset += s.Len()
	}

	return bw.Flush()
}

// layerHeader returns the span layer header lines of the variant.
func (w *Writer) layerHeader(columns []string) []string {
	nel := SpanLayerPrefix + strings.Join([]string{NamedEntityType, IdentifierLayer, LabelLayer}, LayerSeparator)

	switch w.Variant {
	case NEL:
		return []string{nel}
	case MWE:
		return []string{
			nel,
			SpanLayerPrefix + strings.Join([]string{MWEType, MWEIDLayer, MWELemmaLayer, MWETypeLayer}, LayerSeparator),
		}
	}

	parts := append([]string{SpanType}, columns...)
	return []string{SpanLayerPrefix + strings.Join(parts, LayerSeparator)}
}

// tokenLayers returns the layer fields of a token line.
func (w *Writer) tokenLayers(tok annotation.Token, columns []string) []string {
	switch w.Variant {
	case NEL:
		return []string{w.identifier(tok), layerOrAbsent(tok, LabelLayer)}
	case MWE:
		return []string{
			w.identifier(tok),
			layerOrAbsent(tok, LabelLayer),
			layerOrAbsent(tok, MWEIDLayer),
			layerOrAbsent(tok, MWELemmaLayer),
			layerOrAbsent(tok, MWETypeLayer),
		}
	}

	fields := make([]string, 0, len(columns))
	for _, name := range columns {
		fields = append(fields, layerOrAbsent(tok, name))
	}
	return fields
}

// identifier returns the identifier layer of tok, expanding a bare id to an
// entity URL. The group suffix is kept.
func (w *Writer) identifier(tok annotation.Token) string {
	id, ok := tok.Layer(IdentifierLayer)
	if !ok {
		return Absent
	}

	bare, _, _ := splitGroup(id)
	if bare == annotation.NoLink || bare == Absent || bare == "" || isURL(bare) {
		return id
	}
	return w.EntityPrefix + id
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func layerOrAbsent(tok annotation.Token, name string) string {
	if v, ok := tok.Layer(name); ok {
		return v
	}
	return Absent
}

// baseColumns returns the sorted names of all layers used in doc.
func baseColumns(doc annotation.Document) []string {
	seen := map[string]bool{}
	var names []string
	for _, s := range doc {
		for _, tok := range s.Tokens {
			for name := range tok.Layers {
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
			}
		}
	}
	sort.Strings(names)
	return names
}
