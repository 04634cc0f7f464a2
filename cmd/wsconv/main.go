package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// Set with -ldflags at build time.
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "wsconv: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:                 "wsconv",
		Usage:                "convert WebAnno TSV annotations to and from NLP pipeline docs",
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		EnableBashCompletion: true,
		HideVersion:          true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{"WSCONV_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "store",
				Aliases: []string{"s"},
				Usage:   "bin storage: a directory of JSON files or a SQLite file",
			},
			&cli.StringFlag{
				Name:  "variant",
				Usage: "TSV layer variant: base, nel or mwe",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Commands: []*cli.Command{
			roundtripCmd(ui),
			tsv2spacyCmd(ui),
			spacy2tsvCmd(ui),
			importCmd(ui),
			lsCmd(ui),
			findCmd(ui),
			showCmd(ui),
			statCmd(ui),
			browseCmd(ui),
			versionCmd(ui),
			bashCmd(ui),
		},
	}
}
