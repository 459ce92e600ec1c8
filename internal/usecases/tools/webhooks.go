package tools

import (
	"github.com/architeacher/storetools/internal/usecases/keyspaces"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/pkg/validation"
)

var webhookFields = validation.Schema{
	"name":         str("Friendly name."),
	"status":       enum("Delivery status.", "active", "paused", "disabled"),
	"topic":        topic(),
	"delivery_url": link("URL the payload is delivered to."),
	"secret":       str("Secret used to sign deliveries."),
}

func topic() validation.Constraint {
	c := str("Event topic, e.g. order.created.")
	c.Pattern = `^[a-z_]+\.[a-z_]+$`

	return c
}

func webhookResource() resource {
	return resource{
		group:    GroupCommerce,
		upstream: ports.UpstreamCommerce,
		keys:     keyspaces.Webhooks,
		path:     "webhooks",
		singular: "webhook",
		plural:   "webhooks",
		label:    "webhook subscriptions",
		fields:   webhookFields,
		required: []string{"topic", "delivery_url"},
		filters: validation.Merge(orderingSchema, validation.Schema{
			"search": str("Full text search."),
			"status": enum("Delivery status.", "all", "active", "paused", "disabled"),
		}),
		forceDelete: true,
	}
}

func (b builder) webhookTools() []Tool {
	return webhookResource().tools(b)
}
