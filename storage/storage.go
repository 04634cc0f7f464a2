package storage

import (
	"errors"

	"github.com/sasa5linkar/webanno-spacy-converter/spacy"
)

// ErrNotFound is returned when a stored bin does not exist.
var ErrNotFound = errors.New("bin not found")

// Bin is the set of pipeline docs converted from one source file.
type Bin struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// Number of sentences over all docs
	Sentences int `json:"sentences"`

	Docs []spacy.Doc `json:"docs"`
}

// NumSentences counts the sentences of all docs of b.
func (b Bin) NumSentences() int {
	n := 0
	for _, d := range b.Docs {
		n += len(d.Sents)
	}
	return n
}

// EntityHit is a stored entity linked to a knowledge base id.
type EntityHit struct {
	BinID string
	Title string

	// index of the doc inside the bin
	Doc   int
	Label string
	Text  string
}

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (ID, Title, Sentences) of the stored bins.
	// If titleMatch is not empty, only bins whose title contains it are returned.
	// Docs are not loaded.
	List(titleMatch string) ([]Bin, error)

	// Read returns a bin by ID
	Read(id string) (Bin, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a bin and returns its ID. A new ID is assigned when
	// b.ID is empty.
	Write(b Bin) (string, error)
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// EntityFinder finds stored entities by their knowledge base id.
type EntityFinder interface {
	FindEntity(kbID string) ([]EntityHit, error)
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(cb func(current, total int, name string)) error
}
