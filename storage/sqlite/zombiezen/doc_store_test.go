package zombiezen

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasa5linkar/webanno-spacy-converter/spacy"
	"github.com/sasa5linkar/webanno-spacy-converter/storage"
)

func newTestStore(t *testing.T) *DocStore {
	t.Helper()
	pool, err := NewPool(filepath.Join(t.TempDir(), "bins.db"))
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return NewDocStore(pool)
}

func testBin(title string) storage.Bin {
	return storage.Bin{
		Title: title,
		Docs: []spacy.Doc{
			{
				Text:   "Tesla i Beograd. ",
				Sents:  []spacy.Span{{Start: 0, End: 16}},
				Ents:   []spacy.Ent{{Start: 0, End: 5, Label: "PER", KBID: "Q9036"}, {Start: 8, End: 15, Label: "LOC", KBID: spacy.NIL}},
				Tokens: []spacy.Token{{ID: 0, Start: 0, End: 5}, {ID: 1, Start: 6, End: 7}, {ID: 2, Start: 8, End: 15}, {ID: 3, Start: 15, End: 16}},
			},
			{
				Text:   "Nikola Tesla. ",
				Sents:  []spacy.Span{{Start: 0, End: 13}},
				Ents:   []spacy.Ent{{Start: 0, End: 12, Label: "PER", KBID: "Q9036"}},
				Tokens: []spacy.Token{{ID: 0, Start: 0, End: 6}, {ID: 1, Start: 7, End: 12}, {ID: 2, Start: 12, End: 13}},
			},
		},
	}
}

func TestDocStoreWriteRead(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Write(testBin("b.tsv"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = store.Write(testBin("a.tsv"))
	require.NoError(t, err)

	b, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, "b.tsv", b.Title)
	assert.Equal(t, 2, b.Sentences)
	assert.Equal(t, testBin("").Docs, b.Docs)

	bins, err := store.List("")
	require.NoError(t, err)
	require.Len(t, bins, 2)
	assert.Equal(t, "a.tsv", bins[0].Title)
	assert.Nil(t, bins[0].Docs)

	bins, err = store.List("b.")
	require.NoError(t, err)
	require.Len(t, bins, 1)
	assert.Equal(t, id, bins[0].ID)
}

func TestDocStoreReplace(t *testing.T) {
	store := newTestStore(t)

	b := testBin("a.tsv")
	b.ID = "fixed"
	_, err := store.Write(b)
	require.NoError(t, err)

	b.Title = "renamed.tsv"
	b.Docs = b.Docs[:1]
	_, err = store.Write(b)
	require.NoError(t, err)

	got, err := store.Read("fixed")
	require.NoError(t, err)
	assert.Equal(t, "renamed.tsv", got.Title)
	assert.Len(t, got.Docs, 1)

	hits, err := store.FindEntity("Q9036")
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestDocStoreNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Read("missing")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestDocStoreFindEntity(t *testing.T) {
	store := newTestStore(t)
	id, err := store.Write(testBin("a.tsv"))
	require.NoError(t, err)

	hits, err := store.FindEntity("Q9036")
	require.NoError(t, err)
	assert.Equal(t, []storage.EntityHit{
		{BinID: id, Title: "a.tsv", Doc: 0, Label: "PER", Text: "Tesla"},
		{BinID: id, Title: "a.tsv", Doc: 1, Label: "PER", Text: "Nikola Tesla"},
	}, hits)

	hits, err = store.FindEntity(spacy.NIL)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestCreateSchemasUnknownScript(t *testing.T) {
	pool, err := NewPool(filepath.Join(t.TempDir(), "bins.db"))
	require.NoError(t, err)
	defer pool.Close()

	assert.Error(t, CreateSchemas(pool, "missing.sql"))
	// idempotent
	assert.NoError(t, CreateSchemas(pool, DocsSchema))
}
