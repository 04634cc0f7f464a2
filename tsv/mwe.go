package tsv

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/sasa5linkar/webanno-spacy-converter/annotation"
)

type mweGroup struct {
	lemma, typ string
	indices    []int
}

// extractMWEs groups the tokens of a sentence by their MWEid layer. The group
// key is the id without its bracket suffix. When several annotations are
// stacked in one MWEid cell only the last one counts.
//
// Lemma and type are the first values seen in the group other than "*".
func extractMWEs(tokens []annotation.Token, lg *log.Logger) []annotation.MultiWordExpression {
	groups := map[string]*mweGroup{}
	var order []string

	for idx, tok := range tokens {
		raw, ok := tok.Layer(MWEIDLayer)
		if !ok {
			continue
		}
		if strings.Contains(raw, LayerSeparator) {
			lg.Debug("token in several expressions, keeping the last", "sent", tok.SentenceIndex, "token", tok.TokenIndex, "MWEid", raw)
			raw = lastStacked(raw)
		}

		key, _, _ := splitGroup(raw)
		key = strings.TrimSpace(key)
		if key == "" || key == Absent {
			continue
		}

		g, ok := groups[key]
		if !ok {
			g = &mweGroup{}
			groups[key] = g
			order = append(order, key)
		}
		g.indices = append(g.indices, idx)

		if g.lemma == "" {
			g.lemma = mweValue(tok, MWELemmaLayer)
		}
		if g.typ == "" {
			g.typ = mweValue(tok, MWETypeLayer)
		}
	}

	mwes := make([]annotation.MultiWordExpression, 0, len(order))
	for _, key := range order {
		g := groups[key]
		lemma := g.lemma
		if lemma == "" {
			lemma = annotation.NoLink
		}
		mwes = append(mwes, annotation.MultiWordExpression{
			Lemma:        lemma,
			Type:         g.typ,
			TokenCount:   len(g.indices),
			TokenIndices: g.indices,
			GroupID:      key,
		})
	}
	return mwes
}

// mweValue returns the cleaned value of an expression layer of the token, or
// "" when it is absent or "*".
func mweValue(tok annotation.Token, layer string) string {
	v, ok := tok.Layer(layer)
	if !ok {
		return ""
	}
	v, _, _ = splitGroup(lastStacked(v))
	v = strings.TrimSpace(v)
	if v == "*" {
		return ""
	}
	return v
}
