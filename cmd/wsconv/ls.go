package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/sasa5linkar/webanno-spacy-converter/storage"
)

func lsCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list the stored bins",
		ArgsUsage: "[title]",
		Action: func(c *cli.Context) error {
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
			return lsCommand(repo, c.Args().First(), ui)
		},
	}
}

func lsCommand(repo storage.DocReader, title string, ui UI) error {
	bins, err := repo.List(title)
	if err != nil {
		return err
	}

	for _, b := range bins {
		fmt.Fprintf(ui.Out, "📖 %s %s (%d sentences)\n", b.ID, b.Title, b.Sentences)
	}

	return nil
}
