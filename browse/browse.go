// Package browse is an interactive prompt for filtering the sentences of a
// parsed document by entity and expression annotations.
package browse

import (
	"fmt"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/sasa5linkar/webanno-spacy-converter/annotation"
	"github.com/sasa5linkar/webanno-spacy-converter/render"
	"github.com/sasa5linkar/webanno-spacy-converter/search"
)

const quit = "quit"

type Handler struct {
	Search   *search.Search
	Renderer *render.Renderer

	labels, ids, types, lemmas []string
}

func NewHandler(doc annotation.Document, r *render.Renderer) *Handler {
	s := search.New(doc)
	h := &Handler{Search: s, Renderer: r}
	h.labels, h.ids, h.types, h.lemmas = s.Values()
	return h
}

func (h *Handler) Run() error {
	fmt.Fprintln(h.Renderer.Out, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("wsconv browse"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Renderer.Out, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintf(h.Renderer.Out, "Prefix set to %t\n", h.Renderer.HasPrefix)
				}}),
		)

		if strings.TrimSpace(in) == quit {
			return nil
		}

		history = append(history, in)
		if err := h.Eval(in); err != nil {
			fmt.Fprintf(h.Renderer.Out, "✍  %v\n", err)
		}
	}
}

// Eval runs one filter line and renders its results.
func (h *Handler) Eval(in string) error {
	f, err := search.ParseFilter(strings.Fields(in))
	if err != nil {
		return err
	}

	results := h.Search.Sentences(f)
	h.Renderer.Match(results)
	fmt.Fprintf(h.Renderer.Out, "%d sentences\n", len(results))
	return nil
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	return h.suggestions(in.GetWordBeforeCursor())
}

// suggestions completes the word being typed: a filter key, or the value of
// the key it starts with.
func (h *Handler) suggestions(word string) []prompt.Suggest {
	s := []prompt.Suggest{}
	if word == "" {
		return s
	}

	key, value, ok := strings.Cut(word, ":")
	if !ok {
		for _, k := range search.Keys {
			if strings.HasPrefix(k, strings.ToLower(word)) {
				s = append(s, prompt.Suggest{Text: k, Description: "🔖 filter"})
			}
		}
		return s
	}

	var values []string
	switch strings.ToLower(key) {
	case "label":
		values = h.labels
	case "id":
		values = h.ids
	case "type":
		values = h.types
	case "lemma":
		values = h.lemmas
	}

	for _, v := range values {
		// lemmas contain spaces, which end a filter word
		if strings.Contains(v, " ") {
			v = strings.Fields(v)[0]
		}
		if strings.HasPrefix(v, value) {
			s = append(s, prompt.Suggest{Text: key + ":" + v, Description: key})
		}
	}
	return s
}
