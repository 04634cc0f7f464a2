// Package tsv reads and writes WebAnno TSV 3.x annotation files.
package tsv

import (
	"errors"
	"fmt"
	"strings"
)

const (
	FormatHeader = "#FORMAT=WebAnno TSV 3.3"

	// SpanLayerPrefix starts a span layer definition line.
	SpanLayerPrefix = "#T_SP="
	TextPrefix      = "#Text="
	CommentPrefix   = "#"

	FieldSeparator = "\t"
	LayerSeparator = "|"

	// Absent is the value of a layer column that carries no annotation.
	Absent = "_"
)

// Layer names of the supported annotation layers.
const (
	LabelLayer      = "value"
	IdentifierLayer = "identifier"

	MWEIDLayer    = "MWEid"
	MWELemmaLayer = "MWElemma"
	MWETypeLayer  = "MWEtype"
)

// Layer type names written in the layer header.
const (
	NamedEntityType = "de.tudarmstadt.ukp.dkpro.core.api.ner.type.NamedEntity"
	MWEType         = "webanno.custom.MWE"
	SpanType        = "webanno.custom.Span"

	WikidataEntityPrefix = "http://www.wikidata.org/entity/"
)

// Variant selects which annotation layers are resolved on read and which
// columns are written.
type Variant int

const (
	// Base keeps the raw token layers and resolves no entities.
	Base Variant = iota
	// NEL resolves named entities from the value and identifier layers.
	NEL
	// MWE resolves named entities and multi-word expressions.
	MWE
)

func SupportedVariants() []string {
	return []string{"base", "nel", "mwe"}
}

func (v Variant) String() string {
	switch v {
	case Base:
		return "base"
	case NEL:
		return "nel"
	case MWE:
		return "mwe"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant returns the Variant with the given name.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "base":
		return Base, nil
	case "nel", "":
		return NEL, nil
	case "mwe", "lexis":
		return MWE, nil
	}
	return Base, fmt.Errorf("unknown variant %q, allowed values are %s", name, strings.Join(SupportedVariants(), ", "))
}

// ErrFormat is matched by errors.Is for every *FormatError.
var ErrFormat = errors.New("malformed WebAnno TSV")

// FormatError reports a line of the input that does not follow the format.
type FormatError struct {
	Path string
	// 1-based line number in the input, 0 if not bound to a line
	Line int
	Text string
	Msg  string
}

func (e *FormatError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(":")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "%d:", e.Line)
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	b.WriteString(e.Msg)
	if e.Text != "" {
		fmt.Fprintf(&b, ": %q", e.Text)
	}
	return b.String()
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// splitGroup splits a grouped value such as "LOC[3]" into its value and group
// id. grouped is false when the value carries no bracket.
func splitGroup(v string) (value, group string, grouped bool) {
	i := strings.IndexByte(v, '[')
	if i < 0 {
		return v, "", false
	}
	return v[:i], strings.TrimSuffix(v[i+1:], "]"), true
}

// lastStacked returns the last of the annotations stacked in one cell.
func lastStacked(v string) string {
	if i := strings.LastIndex(v, LayerSeparator); i >= 0 {
		return v[i+1:]
	}
	return v
}
