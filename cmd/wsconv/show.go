package main

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/urfave/cli/v2"

	"github.com/sasa5linkar/webanno-spacy-converter/annotation"
	"github.com/sasa5linkar/webanno-spacy-converter/render"
	"github.com/sasa5linkar/webanno-spacy-converter/search"
)

type ShowOptions struct {
	JSON      bool
	NoColor   bool
	NoPrefix  bool
	Format    string
	NumHits   int
	Filter    search.Filter
	HasFilter bool
}

func showCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print the sentences of a TSV file, optionally filtered",
		ArgsUsage: "<file.tsv> [label:L] [id:Q] [type:T] [lemma:L] [text...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print JSON"},
			&cli.BoolFlag{Name: "no-color", Usage: "do not highlight annotations"},
			&cli.BoolFlag{Name: "no-prefix", Usage: "do not print the sentence prefix"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: render.Defaultformat, Usage: "all, part or annotations"},
			&cli.IntFlag{Name: "hits", Usage: "print only sentences with at least this number of hits"},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() == 0 {
				return fmt.Errorf("show: no input file")
			}

			opts := ShowOptions{
				JSON:     c.Bool("json"),
				NoColor:  c.Bool("no-color"),
				NoPrefix: c.Bool("no-prefix"),
				Format:   c.String("format"),
				NumHits:  c.Int("hits"),
			}
			if !slices.Contains(render.SupportedFormats(), opts.Format) {
				return fmt.Errorf("show: unknown format %q", opts.Format)
			}

			if words := c.Args().Tail(); len(words) > 0 {
				f, err := search.ParseFilter(words)
				if err != nil {
					return err
				}
				opts.Filter = f
				opts.HasFilter = true
			}

			s, err := loadSettings(c, ui)
			if err != nil {
				return err
			}
			doc, err := s.parser().ParseFile(c.Args().First())
			if err != nil {
				return err
			}
			return showCommand(doc, opts, ui)
		},
	}
}

func showCommand(doc annotation.Document, opts ShowOptions, ui UI) error {
	if !opts.HasFilter {
		if opts.JSON {
			enc := json.NewEncoder(ui.Out)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}

		r := render.NewRenderer()
		r.Out = ui.Out
		r.HasColor = !opts.NoColor
		for i, s := range doc {
			prefix := ""
			if !opts.NoPrefix {
				prefix = fmt.Sprintf("%2d ✍  ", i+1)
			}
			r.Sentence(s, prefix)
		}
		return nil
	}

	matches := search.New(doc).Sentences(opts.Filter)

	var mr render.MatchRenderer
	if opts.JSON {
		mr = render.NewJSONRenderer(ui.Out)
	} else {
		r := render.NewRenderer()
		r.Out = ui.Out
		r.HasColor = !opts.NoColor
		r.HasPrefix = !opts.NoPrefix
		r.Format = opts.Format
		r.NumHits = opts.NumHits
		mr = r
	}
	mr.Match(matches)

	return nil
}
