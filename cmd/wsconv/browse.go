package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/sasa5linkar/webanno-spacy-converter/browse"
	"github.com/sasa5linkar/webanno-spacy-converter/render"
)

func browseCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Usage:     "search the annotations of a TSV file interactively",
		ArgsUsage: "<file.tsv>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("browse: expected one input file")
			}
			s, err := loadSettings(c, ui)
			if err != nil {
				return err
			}
			doc, err := s.parser().ParseFile(c.Args().First())
			if err != nil {
				return err
			}

			r := render.NewRenderer()
			r.Out = ui.Out
			r.HasColor = true
			return browse.NewHandler(doc, r).Run()
		},
	}
}
