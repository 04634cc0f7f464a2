package tsv

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/sasa5linkar/webanno-spacy-converter/annotation"
)

// NormalizeIdentifier reduces a linking identifier, either a full URL or a
// bare id, to the bare id. Empty and NIL identifiers become annotation.NoLink.
func NormalizeIdentifier(id string) string {
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	if id == "" || id == "NIL" {
		return annotation.NoLink
	}
	return id
}

type entityGroup struct {
	start, end int
	label, id  string
}

// extractEntities resolves the entities of a sentence from the value and
// identifier layers of its tokens. Ungrouped entities come first, in token
// order, followed by the grouped ones in order of first appearance.
//
// A grouped entity spans all tokens of its group and keeps the label and
// identifier of the first member.
func extractEntities(tokens []annotation.Token, lg *log.Logger) []annotation.Entity {
	entities := []annotation.Entity{}
	groups := map[string]*entityGroup{}
	var order []string

	for _, tok := range tokens {
		ner, hasLabel := tok.Layer(LabelLayer)
		nel, hasID := tok.Layer(IdentifierLayer)
		if !hasLabel || !hasID {
			if hasLabel || hasID {
				lg.Debug("token has only one of the entity layers", "sent", tok.SentenceIndex, "token", tok.TokenIndex)
			}
			continue
		}

		label, nerGroup, nerGrouped := splitGroup(ner)
		id, nelGroup, nelGrouped := splitGroup(nel)

		switch {
		case nerGrouped && nelGrouped:
			if nerGroup != nelGroup {
				lg.Debug("entity group ids differ", "sent", tok.SentenceIndex, "token", tok.TokenIndex, "ner", nerGroup, "nel", nelGroup)
				continue
			}
			id = NormalizeIdentifier(id)
			g, ok := groups[nerGroup]
			if !ok {
				groups[nerGroup] = &entityGroup{start: tok.Start, end: tok.End, label: label, id: id}
				order = append(order, nerGroup)
				continue
			}
			if g.label != label || g.id != id {
				lg.Debug("group member disagrees with first member", "sent", tok.SentenceIndex, "group", nerGroup, "label", label, "identifier", id)
			}
			g.start = min(g.start, tok.Start)
			g.end = max(g.end, tok.End)

		case !nerGrouped && !nelGrouped:
			entities = append(entities, annotation.Entity{
				Start:      tok.Start,
				End:        tok.End,
				Label:      label,
				Identifier: NormalizeIdentifier(id),
			})

		default:
			lg.Debug("group suffix on one entity layer only", "sent", tok.SentenceIndex, "token", tok.TokenIndex)
		}
	}

	for _, key := range order {
		g := groups[key]
		entities = append(entities, annotation.Entity{
			Start:      g.start,
			End:        g.end,
			Label:      g.label,
			Identifier: g.id,
		})
	}

	return entities
}
