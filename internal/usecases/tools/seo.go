package tools

import (
	"github.com/architeacher/storetools/internal/usecases/keyspaces"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/internal/usecases/commands"
	"github.com/architeacher/storetools/pkg/cachekey"
	"github.com/architeacher/storetools/pkg/validation"
)

type (
	PostRefRequest struct {
		PostID int `mapstructure:"post_id" validate:"required,gt=0"`
	}

	YoastMetaRequest struct {
		PostID          int    `mapstructure:"post_id" validate:"required,gt=0"`
		Title           string `mapstructure:"title"`
		MetaDescription string `mapstructure:"meta_description" validate:"omitempty,max=320"`
		FocusKeyword    string `mapstructure:"focus_keyword"`
		MetaKeywords    string `mapstructure:"meta_keywords"`
	}

	RankMathMetaRequest struct {
		PostID            int    `mapstructure:"post_id" validate:"required,gt=0"`
		Title             string `mapstructure:"title"`
		Description       string `mapstructure:"description" validate:"omitempty,max=320"`
		FocusKeyword      string `mapstructure:"focus_keyword"`
		SecondaryKeywords string `mapstructure:"secondary_keywords"`
	}

	CreateRedirectRequest struct {
		Source      string `mapstructure:"source" validate:"required"`
		Destination string `mapstructure:"destination" validate:"required"`
		Type        int    `mapstructure:"type" validate:"omitempty,oneof=301 302 307 410 451"`
	}

	RedirectRequest struct {
		ID int `mapstructure:"id" validate:"required,gt=0"`
	}

	// seoPlugin describes where a plugin reads post meta and which post meta keys it writes.
	seoPlugin struct {
		name     string
		label    string
		upstream string
		keys     cachekey.Keyspace
	}
)

var (
	yoast    = seoPlugin{name: "yoast", label: "Yoast SEO", upstream: ports.UpstreamYoast, keys: keyspaces.Yoast}
	rankMath = seoPlugin{name: "rankmath", label: "Rank Math", upstream: ports.UpstreamRankMath, keys: keyspaces.RankMath}
)

func (r YoastMetaRequest) Meta() map[string]any {
	return setMeta(map[string]string{
		"_yoast_wpseo_title":        r.Title,
		"_yoast_wpseo_metadesc":     r.MetaDescription,
		"_yoast_wpseo_focuskw":      r.FocusKeyword,
		"_yoast_wpseo_metakeywords": r.MetaKeywords,
	})
}

func (r RankMathMetaRequest) Meta() map[string]any {
	return setMeta(map[string]string{
		"rank_math_title":              r.Title,
		"rank_math_description":        r.Description,
		"rank_math_focus_keyword":      r.FocusKeyword,
		"rank_math_secondary_keywords": r.SecondaryKeywords,
	})
}

func setMeta(values map[string]string) map[string]any {
	meta := make(map[string]any, len(values))

	for key, value := range values {
		if value != "" {
			meta[key] = value
		}
	}

	return meta
}

func (b builder) seoTools(upstreams ports.Upstreams) []Tool {
	var tools []Tool

	if _, ok := upstreams[ports.UpstreamYoast]; ok {
		tools = append(tools,
			b.getSEOMetaTool(yoast),
			b.updateSEOMetaTool(yoast, validation.Schema{
				"title":            str("SEO title."),
				"meta_description": str("Meta description."),
				"focus_keyword":    str("Focus keyphrase."),
				"meta_keywords":    str("Meta keywords."),
			}, func(args map[string]any) (int, map[string]any, error) {
				req, err := validation.Bind[YoastMetaRequest](args)

				return req.PostID, req.Meta(), err
			}),
		)
	}

	if _, ok := upstreams[ports.UpstreamRankMath]; ok {
		tools = append(tools,
			b.getSEOMetaTool(rankMath),
			b.updateSEOMetaTool(rankMath, validation.Schema{
				"title":              str("SEO title."),
				"description":        str("Meta description."),
				"focus_keyword":      str("Focus keyword."),
				"secondary_keywords": str("Comma separated secondary keywords."),
			}, func(args map[string]any) (int, map[string]any, error) {
				req, err := validation.Bind[RankMathMetaRequest](args)

				return req.PostID, req.Meta(), err
			}),
		)
		tools = append(tools, b.redirectTools()...)
	}

	return tools
}

func (b builder) getSEOMetaTool(p seoPlugin) Tool {
	name := fmt.Sprintf("get_%s_post_meta", p.name)

	return Tool{
		Name:        name,
		Description: fmt.Sprintf("Get the %s metadata of a post or page.", p.label),
		Group:       GroupSEO,
		Schema:      validation.Schema{"post_id": required(integer("Post or page id."))},
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := validation.Bind[PostRefRequest](args)
			if err != nil {
				return nil, err
			}

			return b.read(ctx, name, p.upstream, fmt.Sprintf("meta/%d", req.PostID), nil, p.keys.Item(req.PostID), b.app.TTL.Detail)
		},
	}
}

// updateSEOMetaTool merges the plugin's meta keys into the post's existing meta
// and saves the post through the content API.
func (b builder) updateSEOMetaTool(p seoPlugin, fields validation.Schema, bind func(map[string]any) (int, map[string]any, error)) Tool {
	name := fmt.Sprintf("update_%s_post_meta", p.name)

	return Tool{
		Name:        name,
		Description: fmt.Sprintf("Update the %s metadata of a post. Omitted fields keep their value.", p.label),
		Group:       GroupSEO,
		Schema:      validation.Merge(fields, validation.Schema{"post_id": required(integer("Post id."))}),
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			postID, changes, err := bind(args)
			if err != nil {
				return nil, err
			}

			if len(changes) == 0 {
				return nil, validation.NewFieldError("title", "at least one SEO field must be given")
			}

			path := fmt.Sprintf("posts/%d", postID)

			raw, err := b.fresh(ctx, name, ports.UpstreamContent, path)
			if err != nil {
				return nil, err
			}

			var post struct {
				Meta map[string]any `json:"meta"`
			}

			if err := json.Unmarshal(raw, &post); err != nil {
				return nil, fmt.Errorf("decoding post %d: %w", postID, err)
			}

			meta := make(map[string]any, len(post.Meta)+len(changes))
			for key, value := range post.Meta {
				meta[key] = value
			}

			for key, value := range changes {
				meta[key] = value
			}

			return b.write(ctx, commands.WriteUpstreamCommand{
				Tool:       name,
				Upstream:   ports.UpstreamContent,
				Method:     http.MethodPut,
				Path:       path,
				Body:       map[string]any{"meta": meta},
				Invalidate: []string{p.keys.Item(postID), keyspaces.Posts.Item(postID), keyspaces.Posts.ListPattern()},
			})
		},
	}
}

func (b builder) redirectTools() []Tool {
	return []Tool{
		{
			Name:        "list_rankmath_redirects",
			Description: "List the Rank Math redirections.",
			Group:       GroupSEO,
			Schema:      paginationSchema,
			Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
				req, err := validation.Bind[ListRequest](args)
				if err != nil {
					return nil, err
				}

				params := req.Params()

				return b.read(ctx, "list_rankmath_redirects", ports.UpstreamRankMath, "redirections", params,
					listKey(keyspaces.Redirects, "redirections", params), b.app.TTL.List)
			},
		},
		{
			Name:        "create_rankmath_redirect",
			Description: "Create a Rank Math redirection from an exact source path.",
			Group:       GroupSEO,
			Schema: validation.Schema{
				"source":      required(str("Source path, matched exactly.")),
				"destination": required(str("Destination URL or path.")),
				"type": validation.Constraint{
					Type:        validation.TypeInteger,
					Description: "HTTP status, 301 by default.",
					Enum:        []any{301, 302, 307, 410, 451},
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
				req, err := validation.Bind[CreateRedirectRequest](args)
				if err != nil {
					return nil, err
				}

				status := req.Type
				if status == 0 {
					status = http.StatusMovedPermanently
				}

				return b.write(ctx, commands.WriteUpstreamCommand{
					Tool:     "create_rankmath_redirect",
					Upstream: ports.UpstreamRankMath,
					Method:   http.MethodPost,
					Path:     "redirections",
					Body: map[string]any{
						"sources":     []map[string]any{{"pattern": req.Source, "comparison": "exact"}},
						"url_to":      req.Destination,
						"header_code": status,
					},
					Invalidate: []string{keyspaces.Redirects.ListPattern()},
				})
			},
		},
		{
			Name:        "delete_rankmath_redirect",
			Description: "Delete a Rank Math redirection.",
			Group:       GroupSEO,
			Schema:      validation.Schema{"id": required(integer("Redirection id."))},
			Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
				req, err := validation.Bind[RedirectRequest](args)
				if err != nil {
					return nil, err
				}

				return b.write(ctx, commands.WriteUpstreamCommand{
					Tool:       "delete_rankmath_redirect",
					Upstream:   ports.UpstreamRankMath,
					Method:     http.MethodDelete,
					Path:       fmt.Sprintf("redirections/%d", req.ID),
					Invalidate: []string{keyspaces.Redirects.ListPattern()},
				})
			},
		},
	}
}
