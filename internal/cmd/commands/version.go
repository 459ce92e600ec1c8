package commands

import (
	"fmt"
	goruntime "runtime"

	"github.com/architeacher/storetools/internal/config"
)

type VersionCommand struct {
	*Command
}

func (c *VersionCommand) Synopsis() string {
	return "Print the version"
}

func (c *VersionCommand) Help() string {
	return `Usage: storetools version`
}

func (c *VersionCommand) Run([]string) int {
	version := "storetools " + config.ServiceVersion
	if config.CommitSHA != "" {
		version += " (" + config.CommitSHA + ")"
	}

	c.UI.Output(fmt.Sprintf("%s %s/%s", version, goruntime.GOOS, goruntime.GOARCH))

	return 0
}
