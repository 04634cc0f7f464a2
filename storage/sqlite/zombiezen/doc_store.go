package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/sasa5linkar/webanno-spacy-converter/spacy"
	"github.com/sasa5linkar/webanno-spacy-converter/storage"
)

// DocStore keeps bins in a SQLite file. Each doc of a bin is one JSON row;
// linked entities are indexed by knowledge base id.
type DocStore struct {
	pool *sqlitex.Pool
}

var (
	_ storage.DocRepository = (*DocStore)(nil)
	_ storage.EntityFinder  = (*DocStore)(nil)
)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List(titleMatch string) ([]storage.Bin, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	bins := []storage.Bin{}
	err = sqlitex.Execute(conn, "SELECT id, title, sentences FROM docs WHERE instr(title, ?) > 0 ORDER BY title, id", &sqlitex.ExecOptions{
		Args: []any{titleMatch},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			bins = append(bins, storage.Bin{
				ID:        stmt.ColumnText(0),
				Title:     stmt.ColumnText(1),
				Sentences: stmt.ColumnInt(2),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return bins, nil
}

func (h *DocStore) Read(id string) (storage.Bin, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return storage.Bin{}, err
	}
	defer h.pool.Put(conn)

	b := storage.Bin{ID: id}
	found := false
	err = sqlitex.Execute(conn, "SELECT title, sentences FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			b.Title = stmt.ColumnText(0)
			b.Sentences = stmt.ColumnInt(1)
			return nil
		},
	})
	if err != nil {
		return storage.Bin{}, err
	}
	if !found {
		return storage.Bin{}, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}

	b.Docs = []spacy.Doc{}
	err = sqlitex.Execute(conn, "SELECT data FROM doc_parts WHERE doc_id = ? ORDER BY seq", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var d spacy.Doc
			if err := json.Unmarshal([]byte(stmt.ColumnText(0)), &d); err != nil {
				return err
			}
			b.Docs = append(b.Docs, d)
			return nil
		},
	})
	if err != nil {
		return storage.Bin{}, err
	}

	return b, nil
}

func (h *DocStore) Write(b storage.Bin) (id string, err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return "", err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	// an existing bin with the same id is replaced, parts and entities cascade
	err = sqlitex.Execute(conn, "DELETE FROM docs WHERE id = ?", &sqlitex.ExecOptions{Args: []any{b.ID}})
	if err != nil {
		return "", err
	}

	err = sqlitex.Execute(conn, "INSERT INTO docs (id, title, sentences) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
		Args: []any{b.ID, b.Title, b.NumSentences()},
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert doc: %w", err)
	}

	for seq, d := range b.Docs {
		data, marshalErr := json.Marshal(d)
		if marshalErr != nil {
			return "", marshalErr
		}

		err = sqlitex.Execute(conn, "INSERT INTO doc_parts (doc_id, seq, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []any{b.ID, seq, string(data)},
		})
		if err != nil {
			return "", fmt.Errorf("failed to insert doc part: %w", err)
		}

		for _, e := range d.Ents {
			if e.KBID == "" || e.KBID == spacy.NIL {
				continue
			}
			err = sqlitex.Execute(conn, "INSERT INTO doc_entities (kb_id, label, text, doc_id, seq) VALUES (?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
				Args: []any{e.KBID, e.Label, d.SpanText(e.Start, e.End), b.ID, seq},
			})
			if err != nil {
				return "", fmt.Errorf("failed to insert entity: %w", err)
			}
		}
	}

	return b.ID, nil
}

// FindEntity returns the indexed entities linked to kbID, in insertion order.
func (h *DocStore) FindEntity(kbID string) ([]storage.EntityHit, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var hits []storage.EntityHit
	query := `SELECT e.doc_id, d.title, e.seq, e.label, e.text
		FROM doc_entities e JOIN docs d ON d.id = e.doc_id
		WHERE e.kb_id = ? ORDER BY e.rowid`
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []any{kbID},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			hits = append(hits, storage.EntityHit{
				BinID: stmt.ColumnText(0),
				Title: stmt.ColumnText(1),
				Doc:   stmt.ColumnInt(2),
				Label: stmt.ColumnText(3),
				Text:  stmt.ColumnText(4),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return hits, nil
}
