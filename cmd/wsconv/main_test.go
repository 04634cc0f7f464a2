package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasa5linkar/webanno-spacy-converter/search"
	"github.com/sasa5linkar/webanno-spacy-converter/spacy"
	"github.com/sasa5linkar/webanno-spacy-converter/tsv"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	ui := UI{Out: &out, Err: &errOut}
	err := newApp(ui).Run(append([]string{"wsconv", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestRoundtrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.tsv")

	stdout, err := run(t, "roundtrip", "testdata/nel.tsv", out)
	require.NoError(t, err)
	assert.Equal(t, "✍ 2 sentences written to "+out+"\n", stdout)

	want, err := tsv.ReadFile("testdata/nel.tsv", tsv.NEL)
	require.NoError(t, err)
	got, err := tsv.ReadFile(out, tsv.NEL)
	require.NoError(t, err)

	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Text, got[i].Text)
		assert.Equal(t, want[i].TokenTexts(), got[i].TokenTexts())
		assert.Equal(t, want[i].Entities, got[i].Entities)
	}
}

func TestRoundtripArgs(t *testing.T) {
	_, err := run(t, "roundtrip", "testdata/nel.tsv")
	assert.Error(t, err)
}

func TestRoundtripMissingFile(t *testing.T) {
	_, err := run(t, "roundtrip", "testdata/missing.tsv", filepath.Join(t.TempDir(), "out.tsv"))
	assert.Error(t, err)
}

func TestStores(t *testing.T) {
	tests := []struct {
		name  string
		store func(t *testing.T) string
	}{
		{"filesystem", func(t *testing.T) string { return t.TempDir() }},
		{"sqlite", func(t *testing.T) string { return filepath.Join(t.TempDir(), "bins.db") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := tt.store(t)

			stdout, err := run(t, "--store", store, "tsv2spacy", "testdata/nel.tsv")
			require.NoError(t, err)
			fields := strings.Fields(stdout)
			require.Len(t, fields, 3)
			id := fields[1]
			assert.Equal(t, "nel.tsv", fields[2])

			stdout, err = run(t, "--store", store, "ls")
			require.NoError(t, err)
			assert.Equal(t, "📖 "+id+" nel.tsv (2 sentences)\n", stdout)

			stdout, err = run(t, "--store", store, "ls", "missing")
			require.NoError(t, err)
			assert.Empty(t, stdout)

			stdout, err = run(t, "--store", store, "find", "http://www.wikidata.org/entity/Q3711")
			require.NoError(t, err)
			assert.Equal(t, "📖 "+id+" nel.tsv [doc 0] Beograd/LOC\n", stdout)

			out := filepath.Join(t.TempDir(), "out.tsv")
			stdout, err = run(t, "--store", store, "spacy2tsv", out)
			require.NoError(t, err)
			assert.Equal(t, "✍ 2 sentences written to "+out+"\n", stdout)

			doc, err := tsv.ReadFile(out, tsv.NEL)
			require.NoError(t, err)
			require.Len(t, doc, 2)
			assert.Equal(t, "Novi Sad je grad.", doc[0].Text)
			require.Len(t, doc[1].Entities, 2)
			assert.Equal(t, "Q3711", doc[1].Entities[0].Identifier)
		})
	}
}

func TestMissingStore(t *testing.T) {
	_, err := run(t, "--store", filepath.Join(t.TempDir(), "none.db"), "ls")
	assert.ErrorContains(t, err, "repository not found")
}

func TestImport(t *testing.T) {
	store := t.TempDir()

	stdout, err := run(t, "--store", store, "import", "--workers", "2", "testdata")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " mwe.tsv"))
	assert.True(t, strings.HasSuffix(lines[1], " nel.tsv"))

	stdout, err = run(t, "--store", store, "find", "Q55630")
	require.NoError(t, err)
	assert.Contains(t, stdout, "nel.tsv [doc 0] Novi Sad/LOC")
}

func TestImportEmptyDir(t *testing.T) {
	_, err := run(t, "--store", t.TempDir(), "import", t.TempDir())
	assert.Error(t, err)
}

func TestSpacyFile(t *testing.T) {
	dir := t.TempDir()
	docs := filepath.Join(dir, "docs.json")

	stdout, err := run(t, "tsv2spacy", "--batch-size", "1", "--out", docs, "testdata/nel.tsv")
	require.NoError(t, err)
	assert.Equal(t, "📖 2 docs written to "+docs+"\n", stdout)

	got, err := spacy.ReadFile(docs)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Beograd i Tesla. ", got[1].Text)
	assert.Equal(t, spacy.NIL, got[1].Ents[1].KBID)

	out := filepath.Join(dir, "out.tsv")
	_, err = run(t, "spacy2tsv", "--in", docs, out)
	require.NoError(t, err)

	doc, err := tsv.ReadFile(out, tsv.NEL)
	require.NoError(t, err)
	require.Len(t, doc, 2)
	assert.Equal(t, "Q55630", doc[0].Entities[0].Identifier)
}

func TestNoNER(t *testing.T) {
	docs := filepath.Join(t.TempDir(), "docs.json")

	_, err := run(t, "tsv2spacy", "--no-ner", "--out", docs, "testdata/nel.tsv")
	require.NoError(t, err)

	got, err := spacy.ReadFile(docs)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Ents)
}

func TestStat(t *testing.T) {
	stdout, err := run(t, "stat", "testdata/nel.tsv")
	require.NoError(t, err)

	want := "Num sentences 2, num tokens 9, num tokens per sentence 4\n" +
		"Num entities 3 (2 linked), num expressions 0\n" +
		"  label LOC        2\n" +
		"  label PER        1\n"
	assert.Equal(t, want, stdout)
}

func TestStatMWE(t *testing.T) {
	stdout, err := run(t, "--variant", "mwe", "stat", "testdata/mwe.tsv")
	require.NoError(t, err)
	assert.Contains(t, stdout, "num expressions 1\n")
	assert.Contains(t, stdout, "  type  VID        1\n")
}

func TestShow(t *testing.T) {
	stdout, err := run(t, "show", "--no-color", "--no-prefix", "testdata/nel.tsv")
	require.NoError(t, err)
	assert.Equal(t, "Novi Sad je grad.\nBeograd i Tesla.\n", stdout)

	stdout, err = run(t, "show", "--no-color", "--no-prefix", "--format", "annotations", "testdata/nel.tsv", "label:LOC")
	require.NoError(t, err)
	assert.Equal(t, "Novi Sad/LOC/Q55630\nBeograd/LOC/Q3711\n", stdout)
}

func TestShowJSON(t *testing.T) {
	stdout, err := run(t, "show", "--json", "testdata/nel.tsv", "label:PER")
	require.NoError(t, err)

	var matches []search.Match
	require.NoError(t, json.Unmarshal([]byte(stdout), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].SentenceIndex)
	assert.Equal(t, "*", matches[0].Entities[0].Identifier)
}

func TestShowErrors(t *testing.T) {
	_, err := run(t, "show", "--format", "nope", "testdata/nel.tsv")
	assert.Error(t, err)

	_, err = run(t, "show", "testdata/nel.tsv", "label:")
	assert.Error(t, err)
}

func TestBadVariant(t *testing.T) {
	_, err := run(t, "--variant", "xml", "stat", "testdata/nel.tsv")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "wsconv version dev (commit: none)\n", stdout)
}

func TestBash(t *testing.T) {
	stdout, err := run(t, "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "complete -o bashdefault -o default -F _wsconv_autocomplete wsconv")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "wsconv.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("convert:\n  no_ner: true\n"), 0o644))

	docs := filepath.Join(dir, "docs.json")
	_, err := run(t, "--config", cfg, "tsv2spacy", "--out", docs, "testdata/nel.tsv")
	require.NoError(t, err)

	got, err := spacy.ReadFile(docs)
	require.NoError(t, err)
	assert.Empty(t, got[0].Ents)
}
