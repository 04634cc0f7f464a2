package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/sasa5linkar/webanno-spacy-converter/spacy"
	"github.com/sasa5linkar/webanno-spacy-converter/storage"
)

// DocStore keeps every bin as a <id>.json file in a directory.
type DocStore struct {
	docDir string

	// In-memory cache, filled by Preload
	bins map[string]storage.Bin
}

var (
	_ storage.DocRepository = (*DocStore)(nil)
	_ storage.EntityFinder  = (*DocStore)(nil)
	_ storage.Preloader     = (*DocStore)(nil)
)

// NewDocStore creates a filesystem document store. The directory must exist.
func NewDocStore(docDir string) (*DocStore, error) {
	info, err := os.Stat(docDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", docDir)
	}

	return &DocStore{docDir: docDir}, nil
}

// ids returns the ids of the stored bins, sorted.
func (h *DocStore) ids() ([]string, error) {
	files, err := os.ReadDir(h.docDir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(file.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Preload reads all bins into memory.
func (h *DocStore) Preload(cb func(current, total int, name string)) error {
	ids, err := h.ids()
	if err != nil {
		return err
	}

	bins := make(map[string]storage.Bin, len(ids))
	for i, id := range ids {
		b, err := ReadDoc(h.path(id))
		if err != nil {
			return err
		}
		b.ID = id
		bins[id] = b

		if cb != nil {
			cb(i+1, len(ids), b.Title)
		}
	}

	h.bins = bins
	return nil
}

func (h *DocStore) List(titleMatch string) ([]storage.Bin, error) {
	ids, err := h.ids()
	if err != nil {
		return nil, err
	}

	bins := make([]storage.Bin, 0, len(ids))
	for _, id := range ids {
		b, err := h.Read(id)
		if err != nil {
			return nil, err
		}
		if titleMatch != "" && !strings.Contains(b.Title, titleMatch) {
			continue
		}
		b.Docs = nil
		bins = append(bins, b)
	}

	sort.SliceStable(bins, func(i, j int) bool { return bins[i].Title < bins[j].Title })
	return bins, nil
}

func (h *DocStore) Read(id string) (storage.Bin, error) {
	if b, ok := h.bins[id]; ok {
		return b, nil
	}

	if id == "" || strings.ContainsAny(id, `/\`) {
		return storage.Bin{}, fmt.Errorf("%w: %q", storage.ErrNotFound, id)
	}

	b, err := ReadDoc(h.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.Bin{}, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
		}
		return storage.Bin{}, err
	}
	b.ID = id
	return b, nil
}

func (h *DocStore) Write(b storage.Bin) (string, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Sentences = b.NumSentences()

	data, err := json.Marshal(b)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(h.path(b.ID), data, 0o644); err != nil {
		return "", fmt.Errorf("IO error: %w", err)
	}

	if h.bins != nil {
		h.bins[b.ID] = b
	}
	return b.ID, nil
}

// FindEntity scans all bins for entities linked to kbID. Unlinked entities
// are never found.
func (h *DocStore) FindEntity(kbID string) ([]storage.EntityHit, error) {
	ids, err := h.ids()
	if err != nil {
		return nil, err
	}

	var hits []storage.EntityHit
	for _, id := range ids {
		b, err := h.Read(id)
		if err != nil {
			return nil, err
		}
		for i, d := range b.Docs {
			for _, e := range d.Ents {
				if e.KBID != kbID || e.KBID == spacy.NIL {
					continue
				}
				hits = append(hits, storage.EntityHit{
					BinID: b.ID,
					Title: b.Title,
					Doc:   i,
					Label: e.Label,
					Text:  d.SpanText(e.Start, e.End),
				})
			}
		}
	}
	return hits, nil
}

func (h *DocStore) path(id string) string {
	return filepath.Join(h.docDir, id+".json")
}

// ReadDoc reads a Bin JSON from the given path and unmarshals it.
func ReadDoc(path string) (storage.Bin, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return storage.Bin{}, fmt.Errorf("IO error: %w", err)
	}

	var b storage.Bin
	err = json.Unmarshal(f, &b)
	if err != nil {
		return storage.Bin{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return b, nil
}
