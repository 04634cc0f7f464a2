package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/sasa5linkar/webanno-spacy-converter/storage"
	"github.com/sasa5linkar/webanno-spacy-converter/tsv"
)

func findCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "find the stored entities linked to a knowledge base identifier",
		ArgsUsage: "<identifier>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("find: expected one identifier")
			}
			s, err := loadSettings(c, ui)
			if err != nil {
				return err
			}

			p := &Pool{}
			defer p.Close()
			repo, err := NewDocRepository(p, s.cfg.Store, false)
			if err != nil {
				return err
			}
			return findCommand(repo, c.Args().First(), ui)
		},
	}
}

// findCommand accepts both bare identifiers and knowledge base URLs.
func findCommand(repo storage.EntityFinder, kbID string, ui UI) error {
	hits, err := repo.FindEntity(tsv.NormalizeIdentifier(kbID))
	if err != nil {
		return err
	}

	for _, h := range hits {
		fmt.Fprintf(ui.Out, "📖 %s %s [doc %d] %s/%s\n", h.BinID, h.Title, h.Doc, h.Text, h.Label)
	}

	return nil
}
