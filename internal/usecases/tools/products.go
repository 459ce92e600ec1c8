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
	stockStatus = enum("Stock status.", "instock", "outofstock", "onbackorder")

	productFields = validation.Schema{
		"name":              str("Product name."),
		"slug":              str("URL slug."),
		"type":              enum("Product type.", "simple", "grouped", "external", "variable"),
		"status":            enum("Publication status.", "draft", "pending", "private", "publish"),
		"featured":          boolean("Featured product."),
		"description":       str("Full description, HTML allowed."),
		"short_description": str("Short description, HTML allowed."),
		"sku":               str("Stock keeping unit."),
		"regular_price":     price("Regular price as a decimal string."),
		"sale_price":        price("Sale price as a decimal string."),
		"manage_stock":      boolean("Track stock at product level."),
		"stock_quantity":    stockQuantity(),
		"stock_status":      stockStatus,
		"categories":        idRefs("Categories, by id."),
		"tags":              idRefs("Tags, by id."),
		"images":            arrayOf("Images by id or src.", object("Image.")),
		"attributes":        arrayOf("Product attributes.", object("Attribute.")),
		"meta_data":         arrayOf("Meta data entries.", object("Key and value.")),
	}

	productFilters = validation.Merge(orderingSchema, validation.Schema{
		"search":       str("Full text search."),
		"status":       enum("Publication status.", "any", "draft", "pending", "private", "publish"),
		"category":     str("Category id."),
		"tag":          str("Tag id."),
		"sku":          str("Exact SKU."),
		"featured":     boolean("Only featured products."),
		"on_sale":      boolean("Only products on sale."),
		"min_price":    price("Minimum price."),
		"max_price":    price("Maximum price."),
		"stock_status": stockStatus,
		"include":      arrayOf("Limit to these ids.", integer("Id.")),
	})

	variationFields = validation.Schema{
		"description":    str("Variation description."),
		"sku":            str("Stock keeping unit."),
		"status":         enum("Publication status.", "draft", "pending", "private", "publish"),
		"regular_price":  price("Regular price as a decimal string."),
		"sale_price":     price("Sale price as a decimal string."),
		"manage_stock":   boolean("Track stock for the variation."),
		"stock_quantity": stockQuantity(),
		"stock_status":   stockStatus,
		"image":          object("Image by id or src."),
		"attributes":     arrayOf("Attribute options defining the variation.", object("Name and option.")),
	}
)

func stockQuantity() validation.Constraint {
	c := integer("Stock quantity.")
	c.Min = validation.Float(0)

	return c
}

func productResources() []resource {
	return []resource{
		{
			group:    GroupCommerce,
			upstream: ports.UpstreamCommerce,
			keys:     keyspaces.Products,
			path:     "products",
			singular: "product",
			plural:   "products",
			label:    "products",
			fields:   productFields,
			required: []string{"name"},
			filters:  productFilters,
			related:  []string{keyspaces.Variations.ListPattern()},
		},
		{
			group:      GroupCommerce,
			upstream:   ports.UpstreamCommerce,
			keys:       keyspaces.Variations,
			path:       "products/%d/variations",
			singular:   "product_variation",
			plural:     "product_variations",
			label:      "variations of a variable product",
			parent:     "product_id",
			parentKeys: &keyspaces.Products,
			fields:     variationFields,
			required:   []string{"attributes"},
			filters:    validation.Merge(orderingSchema, validation.Schema{"sku": str("Exact SKU.")}),
			related:    []string{keyspaces.Products.ListPattern()},
		},
	}
}

type (
	BatchProductsRequest struct {
		Create []map[string]any `mapstructure:"create"`
		Update []map[string]any `mapstructure:"update" validate:"dive,required"`
		Delete []int            `mapstructure:"delete" validate:"dive,gt=0"`
	}

	ProductsByTermRequest struct {
		TermID  int `mapstructure:"term_id" validate:"required,gt=0"`
		Page    int `mapstructure:"page" validate:"omitempty,gte=1"`
		PerPage int `mapstructure:"per_page" validate:"omitempty,gte=1,lte=100"`
	}

	AssignTermsRequest struct {
		ProductID int   `mapstructure:"product_id" validate:"required,gt=0"`
		TermIDs   []int `mapstructure:"term_ids" validate:"required,min=1,dive,gt=0"`
		Append    bool  `mapstructure:"append"`
	}
)

func (b builder) productTools() []Tool {
	tools := make([]Tool, 0, 16)

	for _, r := range productResources() {
		tools = append(tools, r.tools(b)...)
	}

	return append(tools, b.batchProductsTool())
}

func (b builder) batchProductsTool() Tool {
	const name = "batch_update_products"

	return Tool{
		Name:        name,
		Description: "Create, update and delete products in one request.",
		Group:       GroupCommerce,
		Schema: validation.Schema{
			"create": arrayOf("Products to create.", objectOf("Product.", requireFields(productFields, "name"))),
			"update": arrayOf("Products to update, each with its id.", objectOf("Product.", validation.Merge(productFields, validation.Schema{"id": required(integer("Id."))}))),
			"delete": arrayOf("Ids of products to delete.", integer("Id.")),
		},
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := validation.Bind[BatchProductsRequest](args)
			if err != nil {
				return nil, err
			}

			if len(req.Create)+len(req.Update)+len(req.Delete) == 0 {
				return nil, validation.NewFieldError("create", "at least one of create, update or delete must be given")
			}

			body := map[string]any{}
			if len(req.Create) > 0 {
				body["create"] = req.Create
			}

			if len(req.Update) > 0 {
				body["update"] = req.Update
			}

			if len(req.Delete) > 0 {
				body["delete"] = req.Delete
			}

			return b.write(ctx, commands.WriteUpstreamCommand{
				Tool:       name,
				Upstream:   ports.UpstreamCommerce,
				Method:     http.MethodPost,
				Path:       "products/batch",
				Body:       body,
				Invalidate: []string{keyspaces.Products.Pattern(), keyspaces.Variations.Pattern()},
			})
		},
	}
}

// productsByTermTool lists products filtered by a category or tag id.
func (b builder) productsByTermTool(name, filter, label string) Tool {
	return Tool{
		Name:        name,
		Description: fmt.Sprintf("List the products assigned to a product %s.", label),
		Group:       GroupCommerce,
		Schema: validation.Merge(paginationSchema, validation.Schema{
			"term_id": required(integer(fmt.Sprintf("Id of the %s.", label))),
		}),
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := validation.Bind[ProductsByTermRequest](args)
			if err != nil {
				return nil, err
			}

			params := ListRequest{Page: req.Page, PerPage: req.PerPage, Filters: map[string]any{filter: req.TermID}}.Params()

			return b.read(ctx, name, ports.UpstreamCommerce, "products", params, listKey(keyspaces.Products, "products", params), b.app.TTL.List)
		},
	}
}

// assignTermsTool sets the categories or tags of a product. With append the
// product's current terms are kept.
func (b builder) assignTermsTool(name, field, label, termPattern string) Tool {
	return Tool{
		Name:        name,
		Description: fmt.Sprintf("Assign product %s to a product, replacing them unless append is set.", label),
		Group:       GroupCommerce,
		Schema: validation.Schema{
			"product_id": required(integer("Product id.")),
			"term_ids":   required(arrayOf(fmt.Sprintf("Ids of the %s.", label), integer("Id."))),
			"append":     boolean("Keep the terms already assigned."),
		},
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := validation.Bind[AssignTermsRequest](args)
			if err != nil {
				return nil, err
			}

			ids := req.TermIDs

			if req.Append {
				current, err := b.currentRefs(ctx, name, req.ProductID, field)
				if err != nil {
					return nil, err
				}

				ids = mergeIDs(current, ids)
			}

			path := fmt.Sprintf("products/%d", req.ProductID)

			return b.write(ctx, commands.WriteUpstreamCommand{
				Tool:     name,
				Upstream: ports.UpstreamCommerce,
				Method:   http.MethodPut,
				Path:     path,
				Body:     map[string]any{field: refs(ids)},
				Invalidate: []string{
					keyspaces.Products.Item(req.ProductID),
					keyspaces.Products.ListPattern(),
					termPattern,
				},
			})
		},
	}
}

// currentRefs reads the ids referenced by field ("categories", "tags", "images")
// on the product, bypassing the cache.
func (b builder) currentRefs(ctx context.Context, tool string, productID int, field string) ([]int, error) {
	raw, err := b.fresh(ctx, tool, ports.UpstreamCommerce, fmt.Sprintf("products/%d", productID))
	if err != nil {
		return nil, err
	}

	var product map[string]json.RawMessage
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, fmt.Errorf("decoding product %d: %w", productID, err)
	}

	var entries []struct {
		ID int `json:"id"`
	}

	if list, ok := product[field]; ok && len(list) > 0 {
		if err := json.Unmarshal(list, &entries); err != nil {
			return nil, fmt.Errorf("decoding %s of product %d: %w", field, productID, err)
		}
	}

	ids := make([]int, 0, len(entries))
	for _, entry := range entries {
		if entry.ID > 0 {
			ids = append(ids, entry.ID)
		}
	}

	return ids, nil
}

func mergeIDs(current, added []int) []int {
	seen := make(map[int]struct{}, len(current)+len(added))
	merged := make([]int, 0, len(current)+len(added))

	for _, id := range append(append([]int(nil), current...), added...) {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		merged = append(merged, id)
	}

	return merged
}

func refs(ids []int) []map[string]any {
	out := make([]map[string]any, len(ids))
	for i, id := range ids {
		out[i] = map[string]any{"id": id}
	}

	return out
}
