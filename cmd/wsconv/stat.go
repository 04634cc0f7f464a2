package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/sasa5linkar/webanno-spacy-converter/stat"
)

func statCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print annotation counts of TSV files",
		ArgsUsage: "<file.tsv>...",
		Action: func(c *cli.Context) error {
			if c.Args().Len() == 0 {
				return fmt.Errorf("stat: no input files")
			}
			s, err := loadSettings(c, ui)
			if err != nil {
				return err
			}
			return statCommand(s, c.Args().Slice(), ui)
		},
	}
}

func statCommand(s *settings, files []string, ui UI) error {
	hdl := stat.NewHandler()
	for _, path := range files {
		doc, err := s.parser().ParseFile(path)
		if err != nil {
			return err
		}
		hdl.Aggregate(doc)
	}

	stats := hdl.Get()
	fmt.Fprintf(ui.Out, "Num sentences %d, num tokens %d, num tokens per sentence %d\n", stats.NumSentences, stats.NumTokens, stats.TokensPerSentenceMean)
	fmt.Fprintf(ui.Out, "Num entities %d (%d linked), num expressions %d\n", stats.NumEntities, stats.NumLinked, stats.NumMWEs)

	for _, c := range stat.Sorted(stats.Labels) {
		fmt.Fprintf(ui.Out, "  label %-10s %d\n", c.Name, c.N)
	}
	for _, c := range stat.Sorted(stats.MWETypes) {
		fmt.Fprintf(ui.Out, "  type  %-10s %d\n", c.Name, c.N)
	}

	return nil
}
