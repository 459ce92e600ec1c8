package tools

import (
	"github.com/architeacher/storetools/internal/usecases/keyspaces"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/internal/usecases/commands"
	"github.com/architeacher/storetools/pkg/validation"
)

const defaultContentType = "application/octet-stream"

var mediaFields = validation.Schema{
	"title":       str("Title."),
	"caption":     str("Caption, HTML allowed."),
	"alt_text":    str("Alternative text."),
	"description": str("Description, HTML allowed."),
	"post":        integer("Post the media is attached to."),
}

type (
	UploadMediaRequest struct {
		Filename    string `mapstructure:"filename" validate:"required"`
		Data        string `mapstructure:"data" validate:"required"`
		ContentType string `mapstructure:"content_type"`
		Title       string `mapstructure:"title"`
		Caption     string `mapstructure:"caption"`
		AltText     string `mapstructure:"alt_text"`
		Description string `mapstructure:"description"`
		Post        int    `mapstructure:"post" validate:"omitempty,gt=0"`
	}

	AssignMediaRequest struct {
		ProductID int   `mapstructure:"product_id" validate:"required,gt=0"`
		MediaID   int   `mapstructure:"media_id" validate:"required,gt=0"`
		Featured  *bool `mapstructure:"featured"`
	}
)

// File decodes the base64 payload, accepting a data URL prefix, and resolves the
// content type from the file extension when none is given.
func (r UploadMediaRequest) File() (*commands.MediaFile, error) {
	payload := r.Data
	if _, encoded, ok := strings.Cut(payload, ";base64,"); ok {
		payload = encoded
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, validation.NewFieldError("data", "must be base64 encoded")
	}

	if len(data) == 0 {
		return nil, validation.NewFieldError("data", "must not be empty")
	}

	contentType := r.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(r.Filename)))
	}

	if contentType == "" {
		contentType = defaultContentType
	}

	return &commands.MediaFile{
		Filename:    filepath.Base(r.Filename),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Metadata returns the fields set after the upload, nil when there are none.
func (r UploadMediaRequest) Metadata() map[string]any {
	fields := map[string]any{}

	for key, value := range map[string]string{
		"title":       r.Title,
		"caption":     r.Caption,
		"alt_text":    r.AltText,
		"description": r.Description,
	} {
		if value != "" {
			fields[key] = value
		}
	}

	if r.Post > 0 {
		fields["post"] = r.Post
	}

	if len(fields) == 0 {
		return nil
	}

	return fields
}

func mediaResource() resource {
	return resource{
		group:    GroupContent,
		upstream: ports.UpstreamContent,
		keys:     keyspaces.Media,
		path:     "media",
		singular: "media",
		plural:   "media",
		label:    "media library items",
		fields:   mediaFields,
		filters: validation.Merge(orderingSchema, validation.Schema{
			"search":     str("Full text search."),
			"media_type": enum("Media type.", "image", "video", "text", "application", "audio"),
			"mime_type":  str("Exact MIME type."),
			"parent":     integer("Only media attached to this post."),
		}),
		forceDelete: true,
	}
}

func (b builder) mediaTools() []Tool {
	r := mediaResource()

	tools := without(r.tools(b), "create")

	return append(tools, b.uploadMediaTool(r), b.assignMediaToProductTool())
}

func (b builder) uploadMediaTool(r resource) Tool {
	const name = "upload_media"

	return Tool{
		Name:        name,
		Description: "Upload a file to the media library from base64 data.",
		Group:       GroupContent,
		Schema: validation.Merge(mediaFields, validation.Schema{
			"filename":     required(str("File name including the extension.")),
			"data":         required(str("File content, base64 encoded, optionally as a data URL.")),
			"content_type": str("MIME type, derived from the extension when omitted."),
		}),
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := validation.Bind[UploadMediaRequest](args)
			if err != nil {
				return nil, err
			}

			file, err := req.File()
			if err != nil {
				return nil, err
			}

			uploaded, err := b.write(ctx, commands.WriteUpstreamCommand{
				Tool:       name,
				Upstream:   ports.UpstreamContent,
				Method:     http.MethodPost,
				Upload:     file,
				Invalidate: r.invalidation(0, 0),
			})
			if err != nil {
				return nil, err
			}

			metadata := req.Metadata()
			if metadata == nil {
				return uploaded, nil
			}

			var created struct {
				ID int `json:"id"`
			}

			if err := json.Unmarshal(uploaded, &created); err != nil || created.ID == 0 {
				return uploaded, nil
			}

			return b.write(ctx, commands.WriteUpstreamCommand{
				Tool:       name,
				Upstream:   ports.UpstreamContent,
				Method:     http.MethodPost,
				Path:       r.itemPath(0, created.ID),
				Body:       metadata,
				Invalidate: r.invalidation(0, created.ID),
			})
		},
	}
}

// assignMediaToProductTool attaches a media item to a product gallery. A featured
// image goes first; otherwise it is appended. The gallery is read fresh so that
// existing images are kept.
func (b builder) assignMediaToProductTool() Tool {
	const name = "assign_media_to_product"

	return Tool{
		Name:        name,
		Description: "Attach a media library image to a product, as the featured image by default.",
		Group:       GroupContent,
		Schema: validation.Schema{
			"product_id": required(integer("Product id.")),
			"media_id":   required(integer("Media id.")),
			"featured":   boolean("Use as the main product image, default true."),
		},
		Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
			req, err := validation.Bind[AssignMediaRequest](args)
			if err != nil {
				return nil, err
			}

			current, err := b.currentRefs(ctx, name, req.ProductID, "images")
			if err != nil {
				return nil, err
			}

			featured := req.Featured == nil || *req.Featured

			var images []int
			if featured {
				images = mergeIDs([]int{req.MediaID}, current)
			} else {
				images = mergeIDs(current, []int{req.MediaID})
			}

			return b.write(ctx, commands.WriteUpstreamCommand{
				Tool:     name,
				Upstream: ports.UpstreamCommerce,
				Method:   http.MethodPut,
				Path:     fmt.Sprintf("products/%d", req.ProductID),
				Body:     map[string]any{"images": refs(images)},
				Invalidate: []string{
					keyspaces.Products.Item(req.ProductID),
					keyspaces.Products.ListPattern(),
				},
			})
		},
	}
}
