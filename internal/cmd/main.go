// Package cmd wires the storetools subcommands.
package cmd

import (
	"bufio"
	"os"

	"github.com/architeacher/storetools/internal/cmd/commands"
	"github.com/architeacher/storetools/internal/config"
	"github.com/mitchellh/cli"
)

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	cliName := args[0]

	if len(args) == 2 &&
		(args[1] == "-version" ||
			args[1] == "-v") {
		args = []string{cliName, "version"}
	}

	// No subcommand serves tools, which is how rpc clients launch the binary.
	if len(args) == 1 {
		args = append(args, "serve")
	}

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	c := &cli.CLI{
		Name:     cliName,
		Args:     args[1:],
		Version:  config.ServiceVersion,
		Commands: commands.Factories(ui, commands.NewService),
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())

		return 1
	}

	return exitCode
}
