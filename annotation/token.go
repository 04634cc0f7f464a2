package annotation

// Layers maps an annotation layer name to its value. An absent layer has no
// key, it is never stored as an empty string.
type Layers map[string]string

// Get returns the value of the layer and whether it is present.
func (l Layers) Get(name string) (string, bool) {
	v, ok := l[name]
	return v, ok
}

// Token represents one token of a sentence, with its annotation layers.
type Token struct {
	// 1-based index of the owning sentence in the document
	SentenceIndex int `json:"sent"`

	// 1-based index of the token within the sentence
	TokenIndex int `json:"index"`

	// The unmodified word
	Text string `json:"text"`

	// Character offsets relative to the start of the owning sentence, counted in
	// code points.
	Start int `json:"start"`
	End   int `json:"end"`

	Layers Layers `json:"layers,omitempty"`
}

// Layer returns the value of the named layer. An absent layer yields ("", false).
func (t Token) Layer(name string) (string, bool) {
	return t.Layers.Get(name)
}

// HasLayer reports whether the token carries the named layer.
func (t Token) HasLayer(name string) bool {
	_, ok := t.Layers[name]
	return ok
}

// SetLayer adds or replaces a layer value.
func (t *Token) SetLayer(name, value string) {
	if t.Layers == nil {
		t.Layers = Layers{}
	}
	t.Layers[name] = value
}
