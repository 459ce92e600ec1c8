package tools

import (
	"github.com/architeacher/storetools/internal/usecases/keyspaces"
	"context"
	"encoding/json"

	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/pkg/validation"
)

type (
	ReportRequest struct {
		Period  string `mapstructure:"period" validate:"omitempty,oneof=week month last_month year"`
		DateMin string `mapstructure:"date_min" validate:"omitempty,datetime=2006-01-02"`
		DateMax string `mapstructure:"date_max" validate:"omitempty,datetime=2006-01-02"`
	}

	DateRangeRequest struct {
		DateMin string `mapstructure:"date_min" validate:"required,datetime=2006-01-02"`
		DateMax string `mapstructure:"date_max" validate:"required,datetime=2006-01-02"`
	}

	report struct {
		name        string
		description string
		path        string
		// dated reports take a period or a date range.
		dated bool
	}
)

var reportSchema = validation.Schema{
	"period":   enum("Reporting period.", "week", "month", "last_month", "year"),
	"date_min": date("Start date, YYYY-MM-DD."),
	"date_max": date("End date, YYYY-MM-DD."),
}

func (r ReportRequest) Params() (map[string]any, error) {
	if r.DateMin != "" && r.DateMax != "" && r.DateMin > r.DateMax {
		return nil, validation.NewFieldError("date_max", "must not be before date_min")
	}

	params := map[string]any{}

	if r.Period != "" {
		params["period"] = r.Period
	}

	if r.DateMin != "" {
		params["date_min"] = r.DateMin
	}

	if r.DateMax != "" {
		params["date_max"] = r.DateMax
	}

	return params, nil
}

func (b builder) analyticsTools() []Tool {
	reports := []report{
		{name: "get_sales_report", description: "Sales totals for a period or date range.", path: "reports/sales", dated: true},
		{name: "get_top_sellers_report", description: "Best selling products for a period or date range.", path: "reports/top_sellers", dated: true},
		{name: "get_order_totals_report", description: "Order counts per status.", path: "reports/orders/totals"},
		{name: "get_customers_report", description: "Customer counts, paying and non paying.", path: "reports/customers/totals"},
		{name: "get_coupons_report", description: "Coupon counts per discount type.", path: "reports/coupons/totals"},
	}

	tools := make([]Tool, 0, len(reports)+1)
	for _, r := range reports {
		tools = append(tools, b.reportTool(r))
	}

	return append(tools, b.revenueByDateRangeTool())
}

func (b builder) reportTool(r report) Tool {
	schema := validation.Schema{}
	if r.dated {
		schema = reportSchema
	}

	return Tool{
		Name:        r.name,
		Description: r.description,
		Group:       GroupCommerce,
		Schema:      schema,
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			var params map[string]any

			if r.dated {
				req, err := validation.Bind[ReportRequest](args)
				if err != nil {
					return nil, err
				}

				if params, err = req.Params(); err != nil {
					return nil, err
				}
			}

			return b.read(ctx, r.name, ports.UpstreamCommerce, r.path, params, listKey(keyspaces.Reports, r.path, params), b.app.TTL.Reports)
		},
	}
}

func (b builder) revenueByDateRangeTool() Tool {
	const (
		name = "get_revenue_by_date_range"
		path = "reports/sales"
	)

	return Tool{
		Name:        name,
		Description: "Revenue between two dates, inclusive.",
		Group:       GroupCommerce,
		Schema: validation.Schema{
			"date_min": required(date("Start date, YYYY-MM-DD.")),
			"date_max": required(date("End date, YYYY-MM-DD.")),
		},
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := validation.Bind[DateRangeRequest](args)
			if err != nil {
				return nil, err
			}

			params, err := ReportRequest{DateMin: req.DateMin, DateMax: req.DateMax}.Params()
			if err != nil {
				return nil, err
			}

			return b.read(ctx, name, ports.UpstreamCommerce, path, params, listKey(keyspaces.Reports, path, params), b.app.TTL.Reports)
		},
	}
}
