package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/pkg/decorator"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/architeacher/storetools/pkg/metrics"
	"github.com/architeacher/storetools/pkg/retry"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	// MediaFile is a raw upload sent instead of a JSON body.
	MediaFile struct {
		Filename    string
		ContentType string
		Data        []byte
	}

	// WriteUpstreamCommand is one mutating call. After the upstream accepts it, every
	// entry of Invalidate is removed from the cache before Handle returns. Entries
	// ending in '*' are prefix patterns.
	WriteUpstreamCommand struct {
		Tool       string
		Upstream   string
		Method     string
		Path       string
		Body       any
		Params     map[string]any
		Upload     *MediaFile
		Invalidate []string
	}

	WriteUpstreamCommandHandler = decorator.CommandHandler[WriteUpstreamCommand, json.RawMessage]

	writeUpstreamCommandHandler struct {
		upstreams ports.Upstreams
		cache     ports.ResponseCache
		retryOpts []retry.Option
	}
)

func (c WriteUpstreamCommand) ActionName() string {
	return c.Tool
}

func NewWriteUpstreamCommandHandler(
	upstreams ports.Upstreams,
	cache ports.ResponseCache,
	retryOpts []retry.Option,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) WriteUpstreamCommandHandler {
	return decorator.ApplyCommandDecorators[WriteUpstreamCommand, json.RawMessage](
		writeUpstreamCommandHandler{upstreams: upstreams, cache: cache, retryOpts: retryOpts},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h writeUpstreamCommandHandler) Handle(ctx context.Context, cmd WriteUpstreamCommand) (json.RawMessage, error) {
	upstream, err := h.upstreams.Lookup(cmd.Upstream)
	if err != nil {
		return nil, err
	}

	send, err := sender(upstream, cmd)
	if err != nil {
		return nil, err
	}

	resp, err := retry.Do(ctx, send, h.retryOpts...)
	if err != nil {
		return nil, err
	}

	if h.cache != nil && len(cmd.Invalidate) > 0 {
		h.cache.Invalidate(ctx, cmd.Invalidate...)
	}

	return resp.Data, nil
}

func sender(upstream ports.Upstream, cmd WriteUpstreamCommand) (func(context.Context) (*model.UpstreamResponse, error), error) {
	if cmd.Upload != nil {
		uploader, ok := upstream.(ports.MediaUploader)
		if !ok {
			return nil, &model.ConfigError{Field: "upstream", Reason: fmt.Sprintf("%q does not accept media uploads", cmd.Upstream)}
		}

		return func(ctx context.Context) (*model.UpstreamResponse, error) {
			return uploader.UploadMedia(ctx, cmd.Upload.Filename, cmd.Upload.ContentType, cmd.Upload.Data)
		}, nil
	}

	switch cmd.Method {
	case http.MethodPost:
		return func(ctx context.Context) (*model.UpstreamResponse, error) {
			return upstream.Post(ctx, cmd.Path, cmd.Body)
		}, nil
	case http.MethodPut:
		return func(ctx context.Context) (*model.UpstreamResponse, error) {
			return upstream.Put(ctx, cmd.Path, cmd.Body)
		}, nil
	case http.MethodDelete:
		return func(ctx context.Context) (*model.UpstreamResponse, error) {
			return upstream.Delete(ctx, cmd.Path, cmd.Params)
		}, nil
	default:
		return nil, &model.ConfigError{Field: "method", Reason: fmt.Sprintf("%q is not a write method", cmd.Method)}
	}
}
