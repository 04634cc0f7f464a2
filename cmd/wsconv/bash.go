package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const complete = `#! /bin/bash

_wsconv_autocomplete() {
    local cur opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"

    # the binary lists the commands and flags valid at this position
    opts=$("${COMP_WORDS[@]:0:$COMP_CWORD}" --generate-bash-completion 2>/dev/null)

    if [ $? -eq 0 ]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    fi
}

complete -o bashdefault -o default -F _wsconv_autocomplete wsconv
`

func bashCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "bash",
		Usage: "print the bash completion script",
		Action: func(c *cli.Context) error {
			return bashCommand(ui)
		},
	}
}

func bashCommand(ui UI) error {
	_, err := fmt.Fprint(ui.Out, complete)
	return err
}
