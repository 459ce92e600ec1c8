package commands

import (
	"context"
	"fmt"
)

type ServeCommand struct {
	*Command
}

func (c *ServeCommand) Synopsis() string {
	return "Serve the tool catalog over stdio"
}

func (c *ServeCommand) Help() string {
	return `Usage: storetools serve

  Reads JSON-RPC 2.0 requests from stdin, one per line, and writes responses
  to stdout. Logs go to stderr. When WEBHOOK_SERVER_ENABLED is set the webhook
  receiver and the health endpoint are served alongside.

  Configuration is read from the environment.`
}

func (c *ServeCommand) Run(args []string) int {
	if err := c.flagSet("serve").Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))

		return 1
	}

	if err := c.newService().Run(context.Background()); err != nil {
		c.UI.Error(err.Error())

		return 1
	}

	return 0
}
