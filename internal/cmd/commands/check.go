package commands

import (
	"fmt"
	"sort"

	"github.com/architeacher/storetools/internal/domain/model"
)

type CheckCommand struct {
	*Command
}

func (c *CheckCommand) Synopsis() string {
	return "Test the connection to the store and the cache"
}

func (c *CheckCommand) Help() string {
	return `Usage: storetools check

  Checks the cache store, the commerce API and, when credentials are set, the
  content API. Exits non-zero when any of them is unreachable.`
}

func (c *CheckCommand) Run(args []string) int {
	if err := c.flagSet("check").Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))

		return 1
	}

	ctx, cancel := signalContext()
	defer cancel()

	svc := c.newService()
	defer svc.Close()

	report, err := svc.CheckConnections(ctx)
	if err != nil {
		c.UI.Error(err.Error())

		return 1
	}

	names := make([]string, 0, len(report.Checks))
	for name := range report.Checks {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		check := report.Checks[name]

		line := fmt.Sprintf("%-10s %-8s %4dms", name, check.Status, check.LatencyMs)
		if check.Error != "" {
			line += "  " + check.Error
		}

		if check.Status == model.DependencyStatusDown {
			c.UI.Error(line)

			continue
		}

		c.UI.Output(line)
	}

	c.UI.Output(fmt.Sprintf("status: %s", report.Status))

	if report.Status != model.HealthStatusOK {
		return 2
	}

	return 0
}
