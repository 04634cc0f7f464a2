package main

import (
	"fmt"

	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/sasa5linkar/webanno-spacy-converter/storage/sqlite/zombiezen"
)

// Pool holds the SQLite bin database of one command run. The database is
// opened on first use, so commands working on a directory store never
// touch SQLite.
type Pool struct {
	path string
	p    *sqlitex.Pool
}

// Open returns the pool of the database at path, opening it on the first
// call. Later calls must name the same database.
func (p *Pool) Open(path string) (*sqlitex.Pool, error) {
	if p.p != nil {
		if path != p.path {
			return nil, fmt.Errorf("bin database %s already open, cannot open %s", p.path, path)
		}
		return p.p, nil
	}

	pool, err := zombiezen.NewPool(path)
	if err != nil {
		return nil, err
	}
	p.path, p.p = path, pool
	return pool, nil
}

// Close closes the database if it was opened. It is safe to call on a Pool
// that never opened one.
func (p *Pool) Close() error {
	if p.p == nil {
		return nil
	}
	err := p.p.Close()
	p.p = nil
	return err
}
