package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasa5linkar/webanno-spacy-converter/spacy"
	"github.com/sasa5linkar/webanno-spacy-converter/storage"
)

func testBin(title string) storage.Bin {
	return storage.Bin{
		Title: title,
		Docs: []spacy.Doc{{
			Text:   "Tesla i Beograd. ",
			Sents:  []spacy.Span{{Start: 0, End: 16}},
			Ents:   []spacy.Ent{{Start: 0, End: 5, Label: "PER", KBID: "Q9036"}, {Start: 8, End: 15, Label: "LOC", KBID: spacy.NIL}},
			Tokens: []spacy.Token{{ID: 0, Start: 0, End: 5}, {ID: 1, Start: 6, End: 7}, {ID: 2, Start: 8, End: 15}, {ID: 3, Start: 15, End: 16}},
		}},
	}
}

func TestDocStoreWriteRead(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDocStore(dir)
	require.NoError(t, err)

	id, err := store.Write(testBin("b.tsv"))
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.FileExists(t, filepath.Join(dir, id+".json"))

	_, err = store.Write(testBin("a.tsv"))
	require.NoError(t, err)

	b, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, "b.tsv", b.Title)
	assert.Equal(t, 1, b.Sentences)
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

func TestDocStoreNotFound(t *testing.T) {
	store, err := NewDocStore(t.TempDir())
	require.NoError(t, err)

	for _, id := range []string{"missing", "", "../x"} {
		_, err = store.Read(id)
		assert.True(t, errors.Is(err, storage.ErrNotFound), id)
	}
}

func TestDocStoreFindEntity(t *testing.T) {
	store, err := NewDocStore(t.TempDir())
	require.NoError(t, err)
	id, err := store.Write(testBin("a.tsv"))
	require.NoError(t, err)

	hits, err := store.FindEntity("Q9036")
	require.NoError(t, err)
	assert.Equal(t, []storage.EntityHit{{BinID: id, Title: "a.tsv", Doc: 0, Label: "PER", Text: "Tesla"}}, hits)

	hits, err = store.FindEntity(spacy.NIL)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestDocStorePreload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDocStore(dir)
	require.NoError(t, err)
	id, err := store.Write(testBin("a.tsv"))
	require.NoError(t, err)
	// not a bin
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	var names []string
	require.NoError(t, store.Preload(func(current, total int, name string) {
		assert.Equal(t, 1, total)
		names = append(names, name)
	}))
	assert.Equal(t, []string{"a.tsv"}, names)

	// served from memory
	require.NoError(t, os.Remove(filepath.Join(dir, id+".json")))
	b, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, "a.tsv", b.Title)
}

func TestNewDocStoreNotDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	_, err := NewDocStore(path)
	assert.Error(t, err)

	_, err = NewDocStore(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
