package tools

import (
	"github.com/architeacher/storetools/internal/usecases/keyspaces"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/pkg/validation"
)

var (
	termFilters = validation.Merge(orderingSchema, validation.Schema{
		"search":     str("Full text search."),
		"slug":       str("Exact slug."),
		"hide_empty": boolean("Skip terms without products."),
		"product":    integer("Only terms assigned to this product."),
	})

	categoryFields = validation.Schema{
		"name":        str("Category name."),
		"slug":        str("URL slug."),
		"parent":      integer("Parent category id."),
		"description": str("Description, HTML allowed."),
		"display":     enum("Archive display type.", "default", "products", "subcategories", "both"),
		"image":       object("Image by id or src."),
		"menu_order":  menuOrder(),
	}

	tagFields = validation.Schema{
		"name":        str("Tag name."),
		"slug":        str("URL slug."),
		"description": str("Description, HTML allowed."),
	}

	attributeFields = validation.Schema{
		"name":         str("Attribute name."),
		"slug":         str("Attribute slug, pa_ prefixed by the platform."),
		"type":         enum("Attribute type.", "select"),
		"order_by":     enum("Default sort order of terms.", "menu_order", "name", "name_num", "id"),
		"has_archives": boolean("Enable archive pages."),
	}

	attributeTermFields = validation.Schema{
		"name":        str("Term name."),
		"slug":        str("URL slug."),
		"description": str("Description, HTML allowed."),
		"menu_order":  menuOrder(),
	}
)

func menuOrder() validation.Constraint {
	c := integer("Sort position.")
	c.Min = validation.Float(0)

	return c
}

func taxonomyResources() []resource {
	return []resource{
		{
			group:       GroupCommerce,
			upstream:    ports.UpstreamCommerce,
			keys:        keyspaces.Categories,
			path:        "products/categories",
			singular:    "product_category",
			plural:      "product_categories",
			label:       "product categories",
			fields:      categoryFields,
			required:    []string{"name"},
			filters:     validation.Merge(termFilters, validation.Schema{"parent": integer("Parent category id.")}),
			forceDelete: true,
			related:     []string{keyspaces.Products.Pattern()},
		},
		{
			group:       GroupCommerce,
			upstream:    ports.UpstreamCommerce,
			keys:        keyspaces.Tags,
			path:        "products/tags",
			singular:    "product_tag",
			plural:      "product_tags",
			label:       "product tags",
			fields:      tagFields,
			required:    []string{"name"},
			filters:     termFilters,
			forceDelete: true,
			related:     []string{keyspaces.Products.Pattern()},
		},
		{
			group:       GroupCommerce,
			upstream:    ports.UpstreamCommerce,
			keys:        keyspaces.Attributes,
			path:        "products/attributes",
			singular:    "product_attribute",
			plural:      "product_attributes",
			label:       "global product attributes",
			fields:      attributeFields,
			required:    []string{"name"},
			forceDelete: true,
			related:     []string{keyspaces.AttributeTerms.Pattern()},
		},
		{
			group:       GroupCommerce,
			upstream:    ports.UpstreamCommerce,
			keys:        keyspaces.AttributeTerms,
			path:        "products/attributes/%d/terms",
			singular:    "attribute_term",
			plural:      "attribute_terms",
			label:       "terms of a product attribute",
			parent:      "attribute_id",
			parentKeys:  &keyspaces.Attributes,
			fields:      attributeTermFields,
			required:    []string{"name"},
			filters:     termFilters,
			forceDelete: true,
		},
	}
}

func (b builder) taxonomyTools() []Tool {
	tools := make([]Tool, 0, 24)

	for _, r := range taxonomyResources() {
		tools = append(tools, r.tools(b)...)
	}

	return append(tools,
		b.productsByTermTool("list_products_by_category", "category", "category"),
		b.productsByTermTool("list_products_by_tag", "tag", "tag"),
		b.assignTermsTool("assign_categories_to_product", "categories", "categories", keyspaces.Categories.ListPattern()),
		b.assignTermsTool("assign_tags_to_product", "tags", "tags", keyspaces.Tags.ListPattern()),
	)
}
