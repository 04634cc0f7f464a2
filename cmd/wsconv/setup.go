package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sasa5linkar/webanno-spacy-converter/storage"
	"github.com/sasa5linkar/webanno-spacy-converter/storage/filesystem"
	"github.com/sasa5linkar/webanno-spacy-converter/storage/sqlite/zombiezen"
)

// Repository is a bin store that can also find entities.
type Repository interface {
	storage.DocRepository
	storage.EntityFinder
}

// NewDocRepository returns the filesystem store when path is a directory and
// the SQLite store otherwise. A missing SQLite file is created only when
// create is set.
func NewDocRepository(p *Pool, path string, create bool) (Repository, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		store, err := filesystem.NewDocStore(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case errors.Is(err, fs.ErrNotExist):
		if !create {
			return nil, fmt.Errorf("repository not found: %s", path)
		}
	case err != nil:
		return nil, err
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}
