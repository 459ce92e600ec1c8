package tools

import (
	"github.com/architeacher/storetools/internal/usecases/keyspaces"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/pkg/validation"
)

var (
	postStatus = enum("Publication status.", "publish", "future", "draft", "pending", "private")

	postFields = validation.Schema{
		"title":          str("Title."),
		"content":        str("Content, HTML allowed."),
		"excerpt":        str("Excerpt."),
		"status":         postStatus,
		"slug":           str("URL slug."),
		"author":         integer("Author user id."),
		"date":           str("Publication date in the site timezone."),
		"categories":     arrayOf("Category ids.", integer("Id.")),
		"tags":           arrayOf("Tag ids.", integer("Id.")),
		"featured_media": integer("Featured image media id."),
		"meta":           object("Registered meta fields."),
	}

	pageFields = validation.Schema{
		"title":          str("Title."),
		"content":        str("Content, HTML allowed."),
		"excerpt":        str("Excerpt."),
		"status":         postStatus,
		"slug":           str("URL slug."),
		"parent":         integer("Parent page id."),
		"menu_order":     menuOrder(),
		"template":       str("Theme template file."),
		"featured_media": integer("Featured image media id."),
	}

	contentFilters = validation.Merge(orderingSchema, validation.Schema{
		"search": str("Full text search."),
		"status": enum("Publication status.", "any", "publish", "future", "draft", "pending", "private"),
		"author": integer("Author user id."),
		"after":  dateTime("Only items published after this time."),
		"before": dateTime("Only items published before this time."),
	})
)

func contentResources() []resource {
	return []resource{
		{
			group:    GroupContent,
			upstream: ports.UpstreamContent,
			keys:     keyspaces.Posts,
			path:     "posts",
			singular: "post",
			plural:   "posts",
			label:    "blog posts",
			fields:   postFields,
			required: []string{"title"},
			filters: validation.Merge(contentFilters, validation.Schema{
				"categories": arrayOf("Category ids.", integer("Id.")),
				"tags":       arrayOf("Tag ids.", integer("Id.")),
			}),
			related: []string{keyspaces.Yoast.Pattern(), keyspaces.RankMath.Pattern()},
		},
		{
			group:    GroupContent,
			upstream: ports.UpstreamContent,
			keys:     keyspaces.Pages,
			path:     "pages",
			singular: "page",
			plural:   "pages",
			label:    "pages",
			fields:   pageFields,
			required: []string{"title"},
			filters:  validation.Merge(contentFilters, validation.Schema{"parent": integer("Parent page id.")}),
		},
		{
			group:    GroupContent,
			upstream: ports.UpstreamContent,
			keys:     keyspaces.Comments,
			path:     "comments",
			singular: "comment",
			plural:   "comments",
			label:    "comments",
			filters: validation.Merge(orderingSchema, validation.Schema{
				"post":         integer("Only comments on this post."),
				"status":       enum("Moderation status.", "approve", "hold", "spam", "trash"),
				"search":       str("Full text search."),
				"author_email": email("Commenter email."),
			}),
		},
	}
}

func (b builder) contentTools() []Tool {
	resources := contentResources()

	tools := append(resources[0].tools(b), resources[1].tools(b)...)

	return append(tools, resources[2].listTool(b))
}
