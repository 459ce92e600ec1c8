package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
)

type ToolsCommand struct {
	*Command

	flagJSON  bool
	flagGroup string
}

func (c *ToolsCommand) Synopsis() string {
	return "List the registered tools"
}

func (c *ToolsCommand) Help() string {
	return `Usage: storetools tools [-json] [-group=<name>]

  Prints the tools that serve would publish with the current configuration.

  -json     print the tools/list descriptors instead of a table
  -group    only print tools of the group: commerce, content or seo`
}

func (c *ToolsCommand) Run(args []string) int {
	f := c.flagSet("tools")
	f.BoolVar(&c.flagJSON, "json", false, "")
	f.StringVar(&c.flagGroup, "group", "", "")

	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))

		return 1
	}

	ctx, cancel := signalContext()
	defer cancel()

	svc := c.newService()
	defer svc.Close()

	catalog, err := svc.Catalog(ctx)
	if err != nil {
		c.UI.Error(err.Error())

		return 1
	}

	type descriptor struct {
		Name        string `json:"name"`
		Group       string `json:"group"`
		Description string `json:"description"`
		InputSchema any    `json:"inputSchema"`
	}

	var selected []descriptor

	for _, tool := range catalog.Tools() {
		if c.flagGroup != "" && tool.Group != c.flagGroup {
			continue
		}

		selected = append(selected, descriptor{
			Name:        tool.Name,
			Group:       tool.Group,
			Description: tool.Description,
			InputSchema: tool.Schema.JSONSchema(),
		})
	}

	if c.flagJSON {
		out, err := json.MarshalIndent(selected, "", "  ")
		if err != nil {
			c.UI.Error(err.Error())

			return 1
		}

		c.UI.Output(string(out))

		return 0
	}

	var b strings.Builder

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, d := range selected {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, d.Group, d.Description)
	}

	_ = w.Flush()

	c.UI.Output(strings.TrimRight(b.String(), "\n"))
	c.UI.Output(fmt.Sprintf("%d tools", len(selected)))

	return 0
}
