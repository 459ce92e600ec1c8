//go:generate go tool github.com/maxbrunsfeld/counterfeiter/v6 -generate

package ports

//counterfeiter:generate -o ../mocks/rest_upstream.go . RESTUpstream

import (
	"context"
	"fmt"

	"github.com/architeacher/storetools/internal/domain/model"
)

const (
	UpstreamCommerce = "commerce"
	UpstreamContent  = "content"
	UpstreamYoast    = "yoast"
	UpstreamRankMath = "rankmath"
)

// Upstream is an authenticated REST API rooted at a fixed base path.
type Upstream interface {
	Name() string
	Get(ctx context.Context, path string, params map[string]any) (*model.UpstreamResponse, error)
	Post(ctx context.Context, path string, body any) (*model.UpstreamResponse, error)
	Put(ctx context.Context, path string, body any) (*model.UpstreamResponse, error)
	Delete(ctx context.Context, path string, params map[string]any) (*model.UpstreamResponse, error)
	CheckConnection(ctx context.Context) error
}

// MediaUploader sends raw file bodies to the content API.
type MediaUploader interface {
	UploadMedia(ctx context.Context, filename, contentType string, body []byte) (*model.UpstreamResponse, error)
}

// BatchUpstream groups create, update and delete operations into one request.
type BatchUpstream interface {
	Upstream
	Batch(ctx context.Context, endpoint string, payload any) (*model.UpstreamResponse, error)
}

// ContentUpstream is the content API: posts, pages, comments and media.
type ContentUpstream interface {
	Upstream
	MediaUploader
}

// RESTUpstream is the full surface of a REST client.
type RESTUpstream interface {
	BatchUpstream
	MediaUploader
}

// Upstreams maps upstream names to their clients. Content namespaces are absent
// when content credentials are not configured.
type Upstreams map[string]Upstream

func (u Upstreams) Lookup(name string) (Upstream, error) {
	if upstream, ok := u[name]; ok && upstream != nil {
		return upstream, nil
	}

	return nil, &model.ConfigError{Field: "upstream", Reason: fmt.Sprintf("%q is not configured", name)}
}
