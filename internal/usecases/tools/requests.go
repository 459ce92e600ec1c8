package tools

// parentRef is the key the resource's parent id parameter is renamed to before
// binding, so that one request type serves every nested collection.
const parentRef = "parent_ref"

type (
	ListRequest struct {
		Parent  int            `mapstructure:"parent_ref" validate:"omitempty,gt=0"`
		Page    int            `mapstructure:"page" validate:"omitempty,gte=1"`
		PerPage int            `mapstructure:"per_page" validate:"omitempty,gte=1,lte=100"`
		Filters map[string]any `mapstructure:",remain"`
	}

	ItemRequest struct {
		Parent int  `mapstructure:"parent_ref" validate:"omitempty,gt=0"`
		ID     int  `mapstructure:"id" validate:"required,gt=0"`
		Force  bool `mapstructure:"force"`
	}

	CreateRequest struct {
		Parent int            `mapstructure:"parent_ref" validate:"omitempty,gt=0"`
		Fields map[string]any `mapstructure:",remain"`
	}

	UpdateRequest struct {
		Parent int            `mapstructure:"parent_ref" validate:"omitempty,gt=0"`
		ID     int            `mapstructure:"id" validate:"required,gt=0"`
		Fields map[string]any `mapstructure:",remain"`
	}
)

// Params merges pagination into the filters sent upstream.
func (r ListRequest) Params() map[string]any {
	params := make(map[string]any, len(r.Filters)+2)

	for key, value := range r.Filters {
		if value != nil {
			params[key] = value
		}
	}

	if r.Page > 0 {
		params["page"] = r.Page
	}

	if r.PerPage > 0 {
		params["per_page"] = r.PerPage
	}

	return params
}

func (r CreateRequest) Body() map[string]any {
	return nonNil(r.Fields)
}

func (r UpdateRequest) Body() map[string]any {
	return nonNil(r.Fields)
}

func nonNil(fields map[string]any) map[string]any {
	body := make(map[string]any, len(fields))

	for key, value := range fields {
		if value != nil {
			body[key] = value
		}
	}

	return body
}
