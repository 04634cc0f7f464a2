package tsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasa5linkar/webanno-spacy-converter/annotation"
)

func TestReadFileMWE(t *testing.T) {
	doc, err := ReadFile(testdataPath("mwe.tsv"), MWE)
	require.NoError(t, err)
	require.Len(t, doc, 2)

	first := doc[0]
	assert.Empty(t, first.Entities)
	require.Len(t, first.MWEs, 1)
	assert.Equal(t, annotation.MultiWordExpression{
		Lemma:        "uzeti u obzir",
		Type:         "VID",
		TokenCount:   3,
		TokenIndices: []int{2, 4, 5},
		GroupID:      "5",
	}, first.MWEs[0])
	assert.Equal(t, []string{"uzeo u obzir"}, first.ExpressionTexts())

	second := doc[1]
	assert.Empty(t, second.MWEs)
	assert.Equal(t, []annotation.Entity{{Start: 0, End: 14, Label: "PER", Identifier: "*"}}, second.Entities)
}

func TestReadFileNELIgnoresMWELayers(t *testing.T) {
	doc, err := ReadFile(testdataPath("mwe.tsv"), NEL)
	require.NoError(t, err)
	assert.Empty(t, doc[0].MWEs)

	v, ok := doc[0].Tokens[2].Layer(MWEIDLayer)
	require.True(t, ok)
	assert.Equal(t, "5[5]", v)
}

func TestExtractMWEs(t *testing.T) {
	tests := []struct {
		name   string
		tokens []annotation.Token
		want   []annotation.MultiWordExpression
	}{
		{
			name: "discontiguous tokens share a group",
			tokens: []annotation.Token{
				tok(0, 1, annotation.Layers{"MWEid": "5"}),
				tok(2, 3, nil),
				tok(4, 5, annotation.Layers{"MWEid": "5"}),
				tok(6, 7, annotation.Layers{"value": "LOC", "identifier": "Q1"}),
				tok(8, 9, annotation.Layers{"MWEid": "5"}),
			},
			want: []annotation.MultiWordExpression{
				{Lemma: "*", TokenCount: 3, TokenIndices: []int{0, 2, 4}, GroupID: "5"},
			},
		},
		{
			name: "first non star lemma and type",
			tokens: []annotation.Token{
				tok(0, 1, annotation.Layers{"MWEid": "1[1]", "MWElemma": "*[1]", "MWEtype": "*[1]"}),
				tok(2, 3, annotation.Layers{"MWEid": "1[1]", "MWElemma": " imati veze [1]", "MWEtype": "LVC[1]"}),
				tok(4, 5, annotation.Layers{"MWEid": "1[1]", "MWElemma": "other[1]", "MWEtype": "VID[1]"}),
			},
			want: []annotation.MultiWordExpression{
				{Lemma: "imati veze", Type: "LVC", TokenCount: 3, TokenIndices: []int{0, 1, 2}, GroupID: "1"},
			},
		},
		{
			name: "groups in order of first appearance",
			tokens: []annotation.Token{
				tok(0, 1, annotation.Layers{"MWEid": "9"}),
				tok(2, 3, annotation.Layers{"MWEid": "2"}),
				tok(4, 5, annotation.Layers{"MWEid": "9"}),
			},
			want: []annotation.MultiWordExpression{
				{Lemma: "*", TokenCount: 2, TokenIndices: []int{0, 2}, GroupID: "9"},
				{Lemma: "*", TokenCount: 1, TokenIndices: []int{1}, GroupID: "2"},
			},
		},
		{
			name: "stacked ids keep the last group",
			tokens: []annotation.Token{
				tok(0, 1, annotation.Layers{"MWEid": "1[1]|2[2]"}),
				tok(2, 3, annotation.Layers{"MWEid": "1[1]"}),
			},
			want: []annotation.MultiWordExpression{
				{Lemma: "*", TokenCount: 1, TokenIndices: []int{0}, GroupID: "2"},
				{Lemma: "*", TokenCount: 1, TokenIndices: []int{1}, GroupID: "1"},
			},
		},
		{
			name:   "no expressions",
			tokens: []annotation.Token{tok(0, 1, nil)},
			want:   []annotation.MultiWordExpression{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractMWEs(tt.tokens, discard))
		})
	}
}
