package tools

import (
	"github.com/architeacher/storetools/internal/usecases/keyspaces"
	"context"
	"encoding/json"
	"fmt"

	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/pkg/validation"
)

var couponFields = validation.Schema{
	"code":                 str("Coupon code."),
	"discount_type":        enum("Discount type.", "percent", "fixed_cart", "fixed_product"),
	"amount":               price("Discount amount as a decimal string."),
	"description":          str("Internal description."),
	"date_expires":         str("Expiry date in the site timezone, YYYY-MM-DDTHH:MM:SS."),
	"individual_use":       boolean("Cannot be combined with other coupons."),
	"product_ids":          arrayOf("Products the coupon applies to.", integer("Id.")),
	"excluded_product_ids": arrayOf("Products the coupon never applies to.", integer("Id.")),
	"usage_limit":          integer("Total usage limit."),
	"usage_limit_per_user": integer("Usage limit per customer."),
	"free_shipping":        boolean("Grants free shipping."),
	"minimum_amount":       price("Minimum order amount."),
	"maximum_amount":       price("Maximum order amount."),
	"email_restrictions":   arrayOf("Allowed billing emails.", str("Email or wildcard pattern.")),
}

type FindCouponByCodeRequest struct {
	Code string `mapstructure:"code" validate:"required"`
}

func couponResource() resource {
	return resource{
		group:       GroupCommerce,
		upstream:    ports.UpstreamCommerce,
		keys:        keyspaces.Coupons,
		path:        "coupons",
		singular:    "coupon",
		plural:      "coupons",
		label:       "coupons",
		fields:      couponFields,
		required:    []string{"code"},
		filters:     validation.Merge(orderingSchema, validation.Schema{"search": str("Full text search."), "code": str("Exact code.")}),
		forceDelete: true,
	}
}

func (b builder) couponTools() []Tool {
	return append(couponResource().tools(b), b.findCouponByCodeTool())
}

func (b builder) findCouponByCodeTool() Tool {
	const name = "find_coupon_by_code"

	return Tool{
		Name:        name,
		Description: "Find a coupon by its code.",
		Group:       GroupCommerce,
		Schema:      validation.Schema{"code": required(str("Coupon code."))},
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := validation.Bind[FindCouponByCodeRequest](args)
			if err != nil {
				return nil, err
			}

			return b.findFirst(ctx, name, keyspaces.Coupons, "coupons", map[string]any{"code": req.Code},
				fmt.Sprintf("coupon with code %q", req.Code))
		},
	}
}
