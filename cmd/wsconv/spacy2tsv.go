package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/sasa5linkar/webanno-spacy-converter/spacy"
	"github.com/sasa5linkar/webanno-spacy-converter/storage"
)

func spacy2tsvCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "spacy2tsv",
		Usage:     "extract stored bins back into a TSV file",
		ArgsUsage: "<out.tsv>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "id", Usage: "bin id to extract, repeatable (default: all bins)"},
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "read docs from a JSON file instead of the store"},
			&cli.StringFlag{Name: "tag-layer", Usage: "token layer receiving the tags"},
			&cli.StringFlag{Name: "lemma-layer", Usage: "token layer receiving the lemmas"},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("spacy2tsv: expected one output file")
			}
			s, err := loadSettings(c, ui)
			if err != nil {
				return err
			}
			out := c.Args().First()

			if in := c.String("in"); in != "" {
				docs, err := spacy.ReadFile(in)
				if err != nil {
					return err
				}
				return writeDocs(s, docs, out, ui)
			}

			p := &Pool{}
			defer p.Close()
			repo, err := NewDocRepository(p, s.cfg.Store, false)
			if err != nil {
				return err
			}
			return spacy2tsvCommand(repo, s, c.StringSlice("id"), out, ui)
		},
	}
}

func spacy2tsvCommand(repo storage.DocReader, s *settings, ids []string, out string, ui UI) error {
	if pl, ok := repo.(storage.Preloader); ok && len(ids) == 0 {
		if err := preload(pl, ui); err != nil {
			return err
		}
	}

	if len(ids) == 0 {
		bins, err := repo.List("")
		if err != nil {
			return err
		}
		for _, b := range bins {
			ids = append(ids, b.ID)
		}
	}

	var docs []spacy.Doc
	for _, id := range ids {
		b, err := repo.Read(id)
		if err != nil {
			return fmt.Errorf("bin %s: %w", id, err)
		}
		docs = append(docs, b.Docs...)
	}

	return writeDocs(s, docs, out, ui)
}

func writeDocs(s *settings, docs []spacy.Doc, out string, ui UI) error {
	for i, d := range docs {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("doc %d: %w", i, err)
		}
	}

	doc := s.extractor().Extract(docs)
	if err := s.writer().WriteFile(out, doc); err != nil {
		return err
	}

	s.log.Info("extracted", "docs", len(docs), "sentences", len(doc), "out", out)
	fmt.Fprintf(ui.Out, "✍ %d sentences written to %s\n", len(doc), out)
	return nil
}
