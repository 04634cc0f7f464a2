package stat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sasa5linkar/webanno-spacy-converter/annotation"
)

func TestAggregate(t *testing.T) {
	doc := annotation.Document{
		{
			Tokens: make([]annotation.Token, 4),
			Entities: []annotation.Entity{
				{Label: "LOC", Identifier: "Q1"},
				{Label: "PER", Identifier: "*"},
				{Label: "LOC", Identifier: "Q2"},
			},
		},
		{
			Tokens: make([]annotation.Token, 2),
			MWEs:   []annotation.MultiWordExpression{{Type: "VID"}},
		},
	}

	h := NewHandler()
	h.Aggregate(doc)
	h.Aggregate(doc[:1])

	s := h.Get()
	assert.Equal(t, 3, s.NumSentences)
	assert.Equal(t, 10, s.NumTokens)
	assert.Equal(t, 3, s.TokensPerSentenceMean)
	assert.Equal(t, map[int]int{4: 2, 2: 1}, s.TokensPerSentenceDis)
	assert.Equal(t, 6, s.NumEntities)
	assert.Equal(t, 4, s.NumLinked)
	assert.Equal(t, 1, s.NumMWEs)
	assert.Equal(t, []Count{{"LOC", 4}, {"PER", 2}}, Sorted(s.Labels))
	assert.Equal(t, []Count{{"VID", 1}}, Sorted(s.MWETypes))
}

func TestAggregateEmpty(t *testing.T) {
	h := NewHandler()
	h.Aggregate(annotation.Document{})
	assert.Equal(t, 0, h.Get().TokensPerSentenceMean)
	assert.Empty(t, Sorted(h.Get().Labels))
}
