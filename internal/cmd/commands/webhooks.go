package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/architeacher/storetools/internal/adapters/services"
	"github.com/mitchellh/cli"
)

type WebhooksCommand struct {
	*Command
}

func (c *WebhooksCommand) Synopsis() string {
	return "Manage webhook subscriptions on the store"
}

func (c *WebhooksCommand) Help() string {
	return `Usage: storetools webhooks <subcommand>

  This command groups subcommands for the store's webhook subscriptions.`
}

func (c *WebhooksCommand) Run([]string) int {
	return cli.RunResultHelp
}

type WebhooksSetupCommand struct {
	*Command
}

func (c *WebhooksSetupCommand) Synopsis() string {
	return "Register the default webhook subscriptions"
}

func (c *WebhooksSetupCommand) Help() string {
	return `Usage: storetools webhooks setup

  Registers one subscription per topic in WEBHOOK_TOPICS, delivered to
  WEBHOOK_BASE_URL/webhooks/<resource>/<event> and signed with WEBHOOK_SECRET.
  Subscriptions that already exist for the same topic and URL are kept.`
}

func (c *WebhooksSetupCommand) Run(args []string) int {
	if err := c.flagSet("webhooks setup").Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))

		return 1
	}

	ctx, cancel := signalContext()
	defer cancel()

	svc := c.newService()
	defer svc.Close()

	webhooks, err := svc.Webhooks(ctx)
	if err != nil {
		c.UI.Error(err.Error())

		return 1
	}

	setup, err := webhooks.Setup(ctx)
	if err != nil {
		c.UI.Error(err.Error())

		return 1
	}

	for _, webhook := range setup.Existing {
		c.UI.Output(fmt.Sprintf("exists   %s -> %s (id %d)", webhook.Topic, webhook.DeliveryURL, webhook.ID))
	}

	for _, webhook := range setup.Created {
		c.UI.Output(fmt.Sprintf("created  %s -> %s (id %d)", webhook.Topic, webhook.DeliveryURL, webhook.ID))
	}

	return 0
}

type WebhooksListCommand struct {
	*Command
}

func (c *WebhooksListCommand) Synopsis() string {
	return "List the webhook subscriptions on the store"
}

func (c *WebhooksListCommand) Help() string {
	return `Usage: storetools webhooks list`
}

func (c *WebhooksListCommand) Run(args []string) int {
	if err := c.flagSet("webhooks list").Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))

		return 1
	}

	ctx, cancel := signalContext()
	defer cancel()

	svc := c.newService()
	defer svc.Close()

	webhooks, err := svc.Webhooks(ctx)
	if err != nil {
		c.UI.Error(err.Error())

		return 1
	}

	list, err := webhooks.List(ctx)
	if err != nil {
		c.UI.Error(err.Error())

		return 1
	}

	if len(list) == 0 {
		c.UI.Output("no webhooks registered")

		return 0
	}

	c.UI.Output(webhookTable(list))

	return 0
}

func webhookTable(list []services.Webhook) string {
	var b strings.Builder

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTOPIC\tSTATUS\tDELIVERY URL")

	for _, webhook := range list {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", webhook.ID, webhook.Topic, webhook.Status, webhook.DeliveryURL)
	}

	_ = w.Flush()

	return strings.TrimRight(b.String(), "\n")
}
