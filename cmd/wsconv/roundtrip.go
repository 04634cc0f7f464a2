package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func roundtripCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "roundtrip",
		Usage:     "parse a TSV file and write it back",
		ArgsUsage: "<in.tsv> <out.tsv>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 2 {
				return fmt.Errorf("roundtrip: expected input and output files")
			}
			s, err := loadSettings(c, ui)
			if err != nil {
				return err
			}
			return roundtripCommand(s, c.Args().Get(0), c.Args().Get(1), ui)
		},
	}
}

func roundtripCommand(s *settings, in, out string, ui UI) error {
	doc, err := s.parser().ParseFile(in)
	if err != nil {
		return err
	}

	if err := s.writer().WriteFile(out, doc); err != nil {
		return err
	}

	s.log.Info("roundtrip", "in", in, "out", out, "sentences", len(doc))
	fmt.Fprintf(ui.Out, "✍ %d sentences written to %s\n", len(doc), out)
	return nil
}
