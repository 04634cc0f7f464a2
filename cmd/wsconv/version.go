package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func versionCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the version",
		Action: func(c *cli.Context) error {
			return versionCommand(ui)
		},
	}
}

func versionCommand(ui UI) error {
	_, err := fmt.Fprintf(ui.Out, "wsconv version %s (commit: %s)\n", BuildTag, BuildCommit)
	return err
}
