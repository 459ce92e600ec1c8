package tools

import (
	"github.com/architeacher/storetools/internal/usecases/keyspaces"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/internal/usecases/commands"
	"github.com/architeacher/storetools/pkg/validation"
)

var (
	orderStatuses = []string{"pending", "processing", "on-hold", "completed", "cancelled", "refunded", "failed", "trash"}

	addressFields = validation.Schema{
		"first_name": str("First name."),
		"last_name":  str("Last name."),
		"company":    str("Company."),
		"address_1":  str("Address line 1."),
		"address_2":  str("Address line 2."),
		"city":       str("City."),
		"state":      str("State or county code."),
		"postcode":   str("Postal code."),
		"country":    str("ISO 3166-1 alpha-2 country code."),
		"email":      email("Email address."),
		"phone":      str("Phone number."),
	}

	orderFields = validation.Schema{
		"status":               enum("Order status.", orderStatuses...),
		"currency":             str("ISO 4217 currency code."),
		"customer_id":          customerRef(),
		"customer_note":        str("Note left by the customer."),
		"billing":              objectOf("Billing address.", addressFields),
		"shipping":             objectOf("Shipping address.", addressFields),
		"payment_method":       str("Payment method id."),
		"payment_method_title": str("Payment method title."),
		"set_paid":             boolean("Mark the order paid and move it to processing."),
		"line_items": arrayOf("Ordered products.", objectOf("Line item.", validation.Schema{
			"product_id":   integer("Product id."),
			"variation_id": integer("Variation id."),
			"quantity":     required(integer("Quantity.")),
		})),
		"shipping_lines": arrayOf("Shipping lines.", object("Shipping line.")),
		"fee_lines":      arrayOf("Fee lines.", object("Fee line.")),
		"coupon_lines":   arrayOf("Coupons applied.", objectOf("Coupon line.", validation.Schema{"code": required(str("Coupon code."))})),
		"meta_data":      arrayOf("Meta data entries.", object("Key and value.")),
	}

	orderFilters = validation.Merge(orderingSchema, validation.Schema{
		"search":   str("Full text search."),
		"status":   enum("Order status.", append([]string{"any"}, orderStatuses...)...),
		"customer": customerRef(),
		"product":  integer("Only orders containing this product."),
		"after":    dateTime("Only orders created after this time."),
		"before":   dateTime("Only orders created before this time."),
		"include":  arrayOf("Limit to these ids.", integer("Id.")),
	})

	noteFields = validation.Schema{
		"note":          str("Note text."),
		"customer_note": boolean("Show the note to the customer and notify them."),
		"added_by_user": boolean("Attribute the note to the current user."),
	}

	refundFields = validation.Schema{
		"amount":      price("Refund amount as a decimal string."),
		"reason":      str("Reason shown on the order."),
		"refunded_by": integer("User id of the refunder."),
		"api_refund":  boolean("Refund through the payment gateway."),
		"line_items":  arrayOf("Refunded line items.", object("Line item.")),
	}
)

func customerRef() validation.Constraint {
	c := integer("Customer id, 0 for guests.")
	c.Min = validation.Float(0)

	return c
}

func dateTime(description string) validation.Constraint {
	c := str(description)
	c.Format = validation.FormatDateTime

	return c
}

func orderResources() []resource {
	return []resource{
		{
			group:    GroupCommerce,
			upstream: ports.UpstreamCommerce,
			keys:     keyspaces.Orders,
			path:     "orders",
			singular: "order",
			plural:   "orders",
			label:    "orders",
			fields:   orderFields,
			required: []string{"line_items"},
			filters:  orderFilters,
			related:  []string{keyspaces.Reports.Pattern()},
		},
		{
			group:       GroupCommerce,
			upstream:    ports.UpstreamCommerce,
			keys:        keyspaces.OrderNotes,
			path:        "orders/%d/notes",
			singular:    "order_note",
			plural:      "order_notes",
			label:       "notes of an order",
			parent:      "order_id",
			parentKeys:  &keyspaces.Orders,
			fields:      noteFields,
			required:    []string{"note"},
			filters:     validation.Schema{"type": enum("Note type.", "any", "customer", "internal")},
			forceDelete: true,
		},
		{
			group:       GroupCommerce,
			upstream:    ports.UpstreamCommerce,
			keys:        keyspaces.Refunds,
			path:        "orders/%d/refunds",
			singular:    "order_refund",
			plural:      "order_refunds",
			label:       "refunds of an order",
			parent:      "order_id",
			parentKeys:  &keyspaces.Orders,
			fields:      refundFields,
			required:    []string{"amount"},
			forceDelete: true,
			related:     []string{keyspaces.Orders.ListPattern(), keyspaces.Reports.Pattern()},
		},
	}
}

type UpdateOrderStatusRequest struct {
	ID     int    `mapstructure:"id" validate:"required,gt=0"`
	Status string `mapstructure:"status" validate:"required,oneof=pending processing on-hold completed cancelled refunded failed trash"`
}

func (b builder) orderTools() []Tool {
	resources := orderResources()

	tools := resources[0].tools(b)
	tools = append(tools, without(resources[1].tools(b), "update")...)
	tools = append(tools, without(resources[2].tools(b), "update")...)

	return append(tools, b.updateOrderStatusTool(resources[0]))
}

func (b builder) updateOrderStatusTool(orders resource) Tool {
	const name = "update_order_status"

	return Tool{
		Name:        name,
		Description: "Move an order to another status.",
		Group:       GroupCommerce,
		Schema: validation.Schema{
			"id":     required(integer("Order id.")),
			"status": required(enum("New status.", orderStatuses...)),
		},
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := validation.Bind[UpdateOrderStatusRequest](args)
			if err != nil {
				return nil, err
			}

			return b.write(ctx, commands.WriteUpstreamCommand{
				Tool:       name,
				Upstream:   ports.UpstreamCommerce,
				Method:     http.MethodPut,
				Path:       fmt.Sprintf("orders/%d", req.ID),
				Body:       map[string]any{"status": req.Status},
				Invalidate: orders.invalidation(0, req.ID),
			})
		},
	}
}
