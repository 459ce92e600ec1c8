// Package tools maps every callable tool onto the read and write handlers of the
// application: parameters are checked against the tool schema, bound to a typed
// request and turned into a cached read or an invalidating write.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/architeacher/storetools/pkg/validation"
)

const (
	GroupCommerce = "commerce"
	GroupContent  = "content"
	GroupSEO      = "seo"
)

type (
	Handler func(ctx context.Context, args map[string]any) (json.RawMessage, error)

	Tool struct {
		Name        string
		Description string
		Group       string
		Schema      validation.Schema
		Handler     Handler
	}

	// Catalog is the immutable set of registered tools, ordered by name.
	Catalog struct {
		tools []Tool
		index map[string]int
	}
)

// Call validates args against the schema before any cache or network access.
func (t Tool) Call(ctx context.Context, args map[string]any) (json.RawMessage, error) {
	if args == nil {
		args = map[string]any{}
	}

	if err := validation.Validate(args, t.Schema); err != nil {
		return nil, err
	}

	return t.Handler(ctx, args)
}

func NewCatalog(tools ...Tool) (*Catalog, error) {
	sorted := append([]Tool(nil), tools...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	index := make(map[string]int, len(sorted))

	for i, tool := range sorted {
		if tool.Name == "" || tool.Handler == nil {
			return nil, fmt.Errorf("tool %d: name and handler are required", i)
		}

		if _, exists := index[tool.Name]; exists {
			return nil, fmt.Errorf("tool %q is registered twice", tool.Name)
		}

		index[tool.Name] = i
	}

	return &Catalog{tools: sorted, index: index}, nil
}

func (c *Catalog) Lookup(name string) (Tool, bool) {
	i, ok := c.index[name]
	if !ok {
		return Tool{}, false
	}

	return c.tools[i], true
}

func (c *Catalog) Tools() []Tool {
	return append([]Tool(nil), c.tools...)
}

func (c *Catalog) Len() int {
	return len(c.tools)
}

// Groups counts the tools per group.
func (c *Catalog) Groups() map[string]int {
	groups := make(map[string]int)
	for _, tool := range c.tools {
		groups[tool.Group]++
	}

	return groups
}
