package tools

import (
	"github.com/architeacher/storetools/internal/usecases/keyspaces"
	"context"
	"encoding/json"
	"fmt"

	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/pkg/cachekey"
	"github.com/architeacher/storetools/pkg/validation"
)

var (
	customerFields = validation.Schema{
		"email":      email("Email address."),
		"first_name": str("First name."),
		"last_name":  str("Last name."),
		"username":   str("Login name."),
		"password":   str("Password, generated when omitted."),
		"billing":    objectOf("Billing address.", addressFields),
		"shipping":   objectOf("Shipping address.", addressFields),
		"meta_data":  arrayOf("Meta data entries.", object("Key and value.")),
	}

	customerFilters = validation.Merge(orderingSchema, validation.Schema{
		"search": str("Full text search."),
		"email":  email("Exact email address."),
		"role":   enum("User role.", "all", "administrator", "editor", "author", "contributor", "subscriber", "customer", "shop_manager"),
	})
)

type (
	CustomerOrdersRequest struct {
		CustomerID int    `mapstructure:"customer_id" validate:"required,gt=0"`
		Status     string `mapstructure:"status"`
		Page       int    `mapstructure:"page" validate:"omitempty,gte=1"`
		PerPage    int    `mapstructure:"per_page" validate:"omitempty,gte=1,lte=100"`
	}

	FindCustomerByEmailRequest struct {
		Email string `mapstructure:"email" validate:"required,email"`
	}
)

func customerResource() resource {
	return resource{
		group:       GroupCommerce,
		upstream:    ports.UpstreamCommerce,
		keys:        keyspaces.Customers,
		path:        "customers",
		singular:    "customer",
		plural:      "customers",
		label:       "customers",
		fields:      customerFields,
		required:    []string{"email"},
		filters:     customerFilters,
		forceDelete: true,
	}
}

func (b builder) customerTools() []Tool {
	return append(customerResource().tools(b), b.customerOrdersTool(), b.findCustomerByEmailTool())
}

func (b builder) customerOrdersTool() Tool {
	const name = "get_customer_orders"

	return Tool{
		Name:        name,
		Description: "List the orders placed by a customer.",
		Group:       GroupCommerce,
		Schema: validation.Merge(paginationSchema, validation.Schema{
			"customer_id": required(integer("Customer id.")),
			"status":      enum("Order status.", append([]string{"any"}, orderStatuses...)...),
		}),
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := validation.Bind[CustomerOrdersRequest](args)
			if err != nil {
				return nil, err
			}

			filters := map[string]any{"customer": req.CustomerID}
			if req.Status != "" {
				filters["status"] = req.Status
			}

			params := ListRequest{Page: req.Page, PerPage: req.PerPage, Filters: filters}.Params()

			return b.read(ctx, name, ports.UpstreamCommerce, "orders", params, listKey(keyspaces.Orders, "orders", params), b.app.TTL.List)
		},
	}
}

func (b builder) findCustomerByEmailTool() Tool {
	const name = "find_customer_by_email"

	return Tool{
		Name:        name,
		Description: "Find the customer registered with an email address.",
		Group:       GroupCommerce,
		Schema:      validation.Schema{"email": required(email("Email address."))},
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := validation.Bind[FindCustomerByEmailRequest](args)
			if err != nil {
				return nil, err
			}

			return b.findFirst(ctx, name, keyspaces.Customers, "customers", map[string]any{"email": req.Email},
				fmt.Sprintf("customer with email %q", req.Email))
		},
	}
}

// findFirst reads a filtered collection through the cache and returns its first
// element, or model.ErrNotFound when the collection is empty.
func (b builder) findFirst(ctx context.Context, tool string, keys cachekey.Keyspace, path string, params map[string]any, what string) (json.RawMessage, error) {
	raw, err := b.read(ctx, tool, ports.UpstreamCommerce, path, params, listKey(keys, path, params), b.app.TTL.List)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", what, model.ErrNotFound)
	}

	return items[0], nil
}
