package tools

import "github.com/architeacher/storetools/pkg/validation"

const pricePattern = `^\d+(\.\d{1,4})?$`

var (
	paginationSchema = validation.Schema{
		"page":     integer("Page of the collection, starting at 1."),
		"per_page": bounded(integer("Items per page."), 1, 100),
	}

	orderingSchema = validation.Schema{
		"order":   enum("Sort direction.", "asc", "desc"),
		"orderby": str("Field to sort by."),
	}
)

func str(description string) validation.Constraint {
	return validation.Constraint{Type: validation.TypeString, Description: description}
}

func integer(description string) validation.Constraint {
	return validation.Constraint{Type: validation.TypeInteger, Description: description, Min: validation.Float(1)}
}

func number(description string) validation.Constraint {
	return validation.Constraint{Type: validation.TypeNumber, Description: description}
}

func boolean(description string) validation.Constraint {
	return validation.Constraint{Type: validation.TypeBoolean, Description: description}
}

func object(description string) validation.Constraint {
	return validation.Constraint{Type: validation.TypeObject, Description: description}
}

func anyValue(description string) validation.Constraint {
	return validation.Constraint{Type: validation.TypeAny, Description: description}
}

func price(description string) validation.Constraint {
	c := str(description)
	c.Pattern = pricePattern

	return c
}

func email(description string) validation.Constraint {
	c := str(description)
	c.Format = validation.FormatEmail

	return c
}

func link(description string) validation.Constraint {
	c := str(description)
	c.Format = validation.FormatURL

	return c
}

func date(description string) validation.Constraint {
	c := str(description)
	c.Format = validation.FormatDate

	return c
}

func enum(description string, values ...string) validation.Constraint {
	c := str(description)
	c.Enum = make([]any, len(values))

	for i, v := range values {
		c.Enum[i] = v
	}

	return c
}

func arrayOf(description string, items validation.Constraint) validation.Constraint {
	return validation.Constraint{Type: validation.TypeArray, Description: description, Items: &items}
}

func objectOf(description string, properties validation.Schema) validation.Constraint {
	c := object(description)
	c.Properties = properties

	return c
}

func required(c validation.Constraint) validation.Constraint {
	c.Required = true

	return c
}

func bounded(c validation.Constraint, lower, upper float64) validation.Constraint {
	c.Min = validation.Float(lower)
	c.Max = validation.Float(upper)

	return c
}

func idRefs(description string) validation.Constraint {
	return arrayOf(description, objectOf("Reference by id.", validation.Schema{"id": required(integer("Id."))}))
}

// requireFields returns a copy of schema with the named fields marked required.
func requireFields(schema validation.Schema, names ...string) validation.Schema {
	out := validation.Merge(schema)

	for _, name := range names {
		c := out[name]
		c.Required = true
		out[name] = c
	}

	return out
}
