package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/architeacher/storetools/internal/usecases"
	"github.com/architeacher/storetools/internal/usecases/commands"
	"github.com/architeacher/storetools/internal/usecases/queries"
	"github.com/architeacher/storetools/pkg/cachekey"
	"github.com/architeacher/storetools/pkg/validation"
)

type (
	// builder turns tool requests into application reads and writes.
	builder struct {
		app *usecases.Application
	}

	// resource describes one REST collection and derives its CRUD tools.
	resource struct {
		group    string
		upstream string
		keys     cachekey.Keyspace
		// path is the collection path; nested collections carry one %d for the parent id.
		path     string
		singular string
		plural   string
		label    string

		parent     string
		parentKeys *cachekey.Keyspace

		fields   validation.Schema
		required []string
		filters  validation.Schema
		// forceDelete sends force=true on delete, for resources without a trash.
		forceDelete bool
		// related patterns are invalidated by every write to the resource.
		related []string
	}
)

func (b builder) read(ctx context.Context, tool, upstream, path string, params map[string]any, cacheKey string, ttl time.Duration) (json.RawMessage, error) {
	return b.app.Queries.ReadUpstream.Execute(ctx, queries.ReadUpstreamQuery{
		Tool:     tool,
		Upstream: upstream,
		Path:     path,
		Params:   params,
		CacheKey: cacheKey,
		TTL:      ttl,
	})
}

// fresh reads without consulting or populating the cache, for read-modify-write flows.
func (b builder) fresh(ctx context.Context, tool, upstream, path string) (json.RawMessage, error) {
	return b.read(ctx, tool, upstream, path, nil, "", 0)
}

func (b builder) write(ctx context.Context, cmd commands.WriteUpstreamCommand) (json.RawMessage, error) {
	return b.app.Commands.WriteUpstream.Handle(ctx, cmd)
}

// listKey hashes the path together with the parameters, so that collections of
// different parents never share an entry.
func listKey(keys cachekey.Keyspace, path string, params map[string]any) string {
	return keys.List(map[string]any{"path": path, "params": params})
}

func (r resource) collectionPath(parent int) string {
	if r.parent == "" {
		return r.path
	}

	return fmt.Sprintf(r.path, parent)
}

func (r resource) itemPath(parent, id int) string {
	return fmt.Sprintf("%s/%d", r.collectionPath(parent), id)
}

func (r resource) itemKey(parent, id int) string {
	if r.parent == "" {
		return r.keys.Item(id)
	}

	return r.keys.Item(parent, id)
}

// invalidation lists what a write makes stale: the entity, every collection view,
// the parent entity and the related patterns.
func (r resource) invalidation(parent, id int) []string {
	targets := []string{r.keys.ListPattern()}

	if id > 0 {
		targets = append(targets, r.itemKey(parent, id))
	}

	if r.parentKeys != nil && parent > 0 {
		targets = append(targets, r.parentKeys.Item(parent))
	}

	return append(targets, r.related...)
}

func (r resource) parentSchema() validation.Schema {
	if r.parent == "" {
		return nil
	}

	return validation.Schema{r.parent: required(integer("Id of the parent entity."))}
}

// bindArgs renames the parent parameter to parentRef and binds the typed request.
func bindArgs[R any](r resource, args map[string]any) (R, error) {
	if r.parent == "" {
		return validation.Bind[R](args)
	}

	copied := make(map[string]any, len(args))
	for key, value := range args {
		copied[key] = value
	}

	if value, ok := copied[r.parent]; ok {
		delete(copied, r.parent)
		copied[parentRef] = value
	}

	return validation.Bind[R](copied)
}

func (r resource) tools(b builder) []Tool {
	return []Tool{r.listTool(b), r.getTool(b), r.createTool(b), r.updateTool(b), r.deleteTool(b)}
}

func (r resource) listTool(b builder) Tool {
	name := "list_" + r.plural

	return Tool{
		Name:        name,
		Description: fmt.Sprintf("List %s with optional filters and pagination.", r.label),
		Group:       r.group,
		Schema:      validation.Merge(r.parentSchema(), paginationSchema, r.filters),
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := bindArgs[ListRequest](r, args)
			if err != nil {
				return nil, err
			}

			path := r.collectionPath(req.Parent)
			params := req.Params()

			return b.read(ctx, name, r.upstream, path, params, listKey(r.keys, path, params), b.app.TTL.List)
		},
	}
}

func (r resource) getTool(b builder) Tool {
	name := "get_" + r.singular

	return Tool{
		Name:        name,
		Description: fmt.Sprintf("Get one of the %s by id.", r.label),
		Group:       r.group,
		Schema:      validation.Merge(r.parentSchema(), validation.Schema{"id": required(integer("Id."))}),
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := bindArgs[ItemRequest](r, args)
			if err != nil {
				return nil, err
			}

			return b.read(ctx, name, r.upstream, r.itemPath(req.Parent, req.ID), nil, r.itemKey(req.Parent, req.ID), b.app.TTL.Detail)
		},
	}
}

func (r resource) createTool(b builder) Tool {
	name := "create_" + r.singular

	return Tool{
		Name:        name,
		Description: fmt.Sprintf("Create one of the %s.", r.label),
		Group:       r.group,
		Schema:      validation.Merge(r.parentSchema(), requireFields(r.fields, r.required...)),
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := bindArgs[CreateRequest](r, args)
			if err != nil {
				return nil, err
			}

			return b.write(ctx, commands.WriteUpstreamCommand{
				Tool:       name,
				Upstream:   r.upstream,
				Method:     http.MethodPost,
				Path:       r.collectionPath(req.Parent),
				Body:       req.Body(),
				Invalidate: r.invalidation(req.Parent, 0),
			})
		},
	}
}

func (r resource) updateTool(b builder) Tool {
	name := "update_" + r.singular

	return Tool{
		Name:        name,
		Description: fmt.Sprintf("Update one of the %s. Only the given fields change.", r.label),
		Group:       r.group,
		Schema:      validation.Merge(r.parentSchema(), r.fields, validation.Schema{"id": required(integer("Id."))}),
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := bindArgs[UpdateRequest](r, args)
			if err != nil {
				return nil, err
			}

			return b.write(ctx, commands.WriteUpstreamCommand{
				Tool:       name,
				Upstream:   r.upstream,
				Method:     http.MethodPut,
				Path:       r.itemPath(req.Parent, req.ID),
				Body:       req.Body(),
				Invalidate: r.invalidation(req.Parent, req.ID),
			})
		},
	}
}

func (r resource) deleteTool(b builder) Tool {
	name := "delete_" + r.singular

	schema := validation.Schema{"id": required(integer("Id."))}
	if !r.forceDelete {
		schema["force"] = boolean("Delete permanently instead of moving to the trash.")
	}

	return Tool{
		Name:        name,
		Description: fmt.Sprintf("Delete one of the %s.", r.label),
		Group:       r.group,
		Schema:      validation.Merge(r.parentSchema(), schema),
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := bindArgs[ItemRequest](r, args)
			if err != nil {
				return nil, err
			}

			var params map[string]any
			if r.forceDelete || req.Force {
				params = map[string]any{"force": true}
			}

			return b.write(ctx, commands.WriteUpstreamCommand{
				Tool:       name,
				Upstream:   r.upstream,
				Method:     http.MethodDelete,
				Path:       r.itemPath(req.Parent, req.ID),
				Params:     params,
				Invalidate: r.invalidation(req.Parent, req.ID),
			})
		},
	}
}

// without drops tools whose name starts with one of the given verbs, for collections
// that only support part of CRUD.
func without(tools []Tool, verbs ...string) []Tool {
	kept := tools[:0]

	for _, tool := range tools {
		drop := false

		for _, verb := range verbs {
			if strings.HasPrefix(tool.Name, verb+"_") {
				drop = true

				break
			}
		}

		if !drop {
			kept = append(kept, tool)
		}
	}

	return kept
}
