package main

import (
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/sasa5linkar/webanno-spacy-converter/spacy"
	"github.com/sasa5linkar/webanno-spacy-converter/storage"
)

func tsv2spacyCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "tsv2spacy",
		Usage:     "convert TSV files to docs and store them as bins",
		ArgsUsage: "<file.tsv>...",
		Flags: append(convertFlags(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write the docs to a JSON file instead of the store"},
		),
		Action: func(c *cli.Context) error {
			if c.Args().Len() == 0 {
				return fmt.Errorf("tsv2spacy: no input files")
			}
			s, err := loadSettings(c, ui)
			if err != nil {
				return err
			}

			if out := c.String("out"); out != "" {
				return tsv2spacyFileCommand(s, c.Args().Slice(), out, ui)
			}

			p := &Pool{}
			defer p.Close()
			repo, err := NewDocRepository(p, s.cfg.Store, true)
			if err != nil {
				return err
			}
			return tsv2spacyCommand(repo, s, c.Args().Slice(), ui)
		},
	}
}

// tsv2spacyCommand stores one bin per input file.
func tsv2spacyCommand(repo storage.DocWriter, s *settings, files []string, ui UI) error {
	for _, path := range files {
		docs, err := convertFile(s, path)
		if err != nil {
			return err
		}

		b := storage.Bin{Title: filepath.Base(path), Docs: docs}
		id, err := repo.Write(b)
		if err != nil {
			return err
		}
		s.log.Info("stored bin", "id", id, "file", path, "docs", len(docs))
		fmt.Fprintf(ui.Out, "📖 %s %s\n", id, b.Title)
	}
	return nil
}

// tsv2spacyFileCommand writes the docs of all files to a single JSON file.
func tsv2spacyFileCommand(s *settings, files []string, out string, ui UI) error {
	var all []spacy.Doc
	for _, path := range files {
		docs, err := convertFile(s, path)
		if err != nil {
			return err
		}
		all = append(all, docs...)
	}

	if err := spacy.WriteFile(out, all); err != nil {
		return err
	}
	fmt.Fprintf(ui.Out, "📖 %d docs written to %s\n", len(all), out)
	return nil
}

func convertFile(s *settings, path string) ([]spacy.Doc, error) {
	doc, err := s.parser().ParseFile(path)
	if err != nil {
		return nil, err
	}
	return s.builder().Build(doc), nil
}
