package render

import (
	"encoding/json"
	"io"

	"github.com/sasa5linkar/webanno-spacy-converter/search"
)

// JSONRenderer writes search results as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Match serializes the results as a JSON array.
func (r *JSONRenderer) Match(results []*search.Match) {
	if results == nil {
		results = []*search.Match{}
	}
	json.NewEncoder(r.W).Encode(results)
}

// compile-time interface check
var _ MatchRenderer = (*JSONRenderer)(nil)
