package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/pkg/circuitbreaker"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/rs/zerolog"
)

const (
	stageNotSent     = "not_sent"
	stageNoResponse  = "no_response"
	stageErrorStatus = "error_status"

	maxLoggedBody = 1024
)

// Client is an authenticated JSON client for one REST namespace such as wc/v3 or wp/v2.
// Failures are classified into *model.ConfigError, *model.NetworkError and
// *model.HTTPError; a cancelled context is returned unchanged.
type Client struct {
	name       string
	baseURL    *url.URL
	httpClient *http.Client
	auth       Authenticator
	cb         *circuitbreaker.CircuitBreaker[*model.UpstreamResponse]
	logger     logger.Logger
	userAgent  string
}

var (
	_ ports.ContentUpstream = (*Client)(nil)
	_ ports.RESTUpstream    = (*Client)(nil)
)

type request struct {
	method      string
	path        string
	params      map[string]any
	body        io.Reader
	contentType string
	header      http.Header
}

// NewClient builds a client rooted at baseURL. A trailing slash is added so that
// relative paths resolve below it.
func NewClient(name, baseURL string, auth Authenticator, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &model.ConfigError{Field: name + " base URL", Reason: "cannot be parsed", Err: err}
	}

	if base.Scheme == "" || base.Host == "" {
		return nil, &model.ConfigError{Field: name + " base URL", Reason: fmt.Sprintf("%q is not an absolute URL", baseURL)}
	}

	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	client := &Client{
		name:       name,
		baseURL:    base,
		httpClient: http.DefaultClient,
		auth:       auth,
		logger:     logger.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func (c *Client) Name() string {
	return c.name
}

// BaseURL returns the namespace root every path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// BreakerState reports the state of the client's circuit breaker.
func (c *Client) BreakerState() circuitbreaker.State {
	return c.cb.State()
}

func (c *Client) Get(ctx context.Context, path string, params map[string]any) (*model.UpstreamResponse, error) {
	return c.execute(ctx, request{method: http.MethodGet, path: path, params: params})
}

func (c *Client) Delete(ctx context.Context, path string, params map[string]any) (*model.UpstreamResponse, error) {
	return c.execute(ctx, request{method: http.MethodDelete, path: path, params: params})
}

func (c *Client) Post(ctx context.Context, path string, body any) (*model.UpstreamResponse, error) {
	return c.executeJSON(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*model.UpstreamResponse, error) {
	return c.executeJSON(ctx, http.MethodPut, path, body)
}

// Batch posts create/update/delete groups to <endpoint>/batch.
func (c *Client) Batch(ctx context.Context, endpoint string, payload any) (*model.UpstreamResponse, error) {
	return c.Post(ctx, strings.TrimRight(endpoint, "/")+"/batch", payload)
}

// SystemStatus fetches the commerce platform environment report.
func (c *Client) SystemStatus(ctx context.Context) (*model.UpstreamResponse, error) {
	return c.Get(ctx, "system_status", nil)
}

// CheckConnection requests the namespace index; any 2xx answer means the API is
// reachable with the configured credentials.
func (c *Client) CheckConnection(ctx context.Context) error {
	_, err := c.Get(ctx, "", nil)

	return err
}

// UploadMedia posts a raw file body, as the media endpoint expects.
func (c *Client) UploadMedia(ctx context.Context, filename, contentType string, body []byte) (*model.UpstreamResponse, error) {
	header := http.Header{}
	header.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, strings.ReplaceAll(filename, `"`, "")))

	return c.execute(ctx, request{
		method:      http.MethodPost,
		path:        "media",
		body:        bytes.NewReader(body),
		contentType: contentType,
		header:      header,
	})
}

func (c *Client) executeJSON(ctx context.Context, method, path string, body any) (*model.UpstreamResponse, error) {
	req := request{method: method, path: path, contentType: "application/json"}

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			cfgErr := &model.ConfigError{Field: "body", Reason: "cannot be encoded as JSON", Err: err}
			c.logFailure(ctx, stageNotSent, method, path, cfgErr).Send()

			return nil, cfgErr
		}

		req.body = bytes.NewReader(payload)
	}

	return c.execute(ctx, req)
}

func (c *Client) execute(ctx context.Context, req request) (*model.UpstreamResponse, error) {
	return circuitbreaker.Execute(c.cb, func() (*model.UpstreamResponse, error) {
		return c.send(ctx, req)
	})
}

func (c *Client) send(ctx context.Context, r request) (*model.UpstreamResponse, error) {
	target, err := c.resolve(r.path, r.params)
	if err != nil {
		c.logFailure(ctx, stageNotSent, r.method, r.path, err).Send()

		return nil, err
	}

	// The URL is captured before authentication so query credentials never reach logs or errors.
	redacted := target.String()

	req, err := http.NewRequestWithContext(ctx, r.method, redacted, r.body)
	if err != nil {
		cfgErr := &model.ConfigError{Field: "request", Reason: "cannot be built", Err: err}
		c.logFailure(ctx, stageNotSent, r.method, redacted, cfgErr).Send()

		return nil, cfgErr
	}

	req.Header.Set("Accept", "application/json")

	if r.contentType != "" && r.body != nil {
		req.Header.Set("Content-Type", r.contentType)
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	for key, values := range r.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	if c.auth != nil {
		if err := c.auth.Authenticate(req); err != nil {
			cfgErr := &model.ConfigError{Field: "credentials", Reason: "cannot sign request", Err: err}
			c.logFailure(ctx, stageNotSent, r.method, redacted, cfgErr).Send()

			return nil, cfgErr
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		netErr := &model.NetworkError{Method: r.method, URL: redacted, Err: err}
		c.logFailure(ctx, stageNoResponse, r.method, redacted, netErr).Send()

		return nil, netErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		netErr := &model.NetworkError{Method: r.method, URL: redacted, Err: fmt.Errorf("reading response body: %w", err)}
		c.logFailure(ctx, stageNoResponse, r.method, redacted, netErr).Send()

		return nil, netErr
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		httpErr := &model.HTTPError{Method: r.method, URL: redacted, Status: resp.StatusCode, Body: body}
		c.logFailure(ctx, stageErrorStatus, r.method, redacted, httpErr).
			Int("status", resp.StatusCode).
			Str("body", truncate(body, maxLoggedBody)).
			Send()

		return nil, httpErr
	}

	log := c.logger.WithContext(ctx)
	log.Debug().
		Str("upstream", c.name).
		Str("method", r.method).
		Str("url", redacted).
		Int("status", resp.StatusCode).
		Msg("upstream call succeeded")

	return &model.UpstreamResponse{
		Status: resp.StatusCode,
		Data:   asJSON(body),
		Header: resp.Header,
	}, nil
}

func (c *Client) resolve(path string, params map[string]any) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, &model.ConfigError{Field: "path", Reason: fmt.Sprintf("%q cannot be parsed", path), Err: err}
	}

	if ref.IsAbs() || ref.Host != "" {
		return nil, &model.ConfigError{Field: "path", Reason: fmt.Sprintf("%q must be relative to the API root", path)}
	}

	target := c.baseURL.ResolveReference(ref)

	query := target.Query()
	for key, value := range EncodeParams(params) {
		query[key] = value
	}

	target.RawQuery = query.Encode()

	return target, nil
}

func (c *Client) logFailure(ctx context.Context, stage, method, target string, err error) *zerolog.Event {
	log := c.logger.WithContext(ctx)

	var event *zerolog.Event
	if stage == stageErrorStatus && !model.IsServerError(err) {
		event = log.Warn()
	} else {
		event = log.Error()
	}

	return event.
		Err(err).
		Str("upstream", c.name).
		Str("stage", stage).
		Str("method", method).
		Str("url", target)
}

// EncodeParams flattens a parameter bag into query values. Nil values are dropped,
// slices become comma separated lists and nested objects are sent as JSON.
func EncodeParams(params map[string]any) url.Values {
	values := url.Values{}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		if encoded, ok := encodeValue(params[key]); ok {
			values.Set(key, encoded)
		}
	}

	return values
}

func encodeValue(v any) (string, bool) {
	switch value := v.(type) {
	case nil:
		return "", false
	case string:
		return value, true
	case bool:
		return strconv.FormatBool(value), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case uint:
		return strconv.FormatUint(uint64(value), 10), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case json.Number:
		return value.String(), true
	case []string:
		return strings.Join(value, ","), true
	case []int:
		parts := make([]string, len(value))
		for i, n := range value {
			parts[i] = strconv.Itoa(n)
		}

		return strings.Join(parts, ","), true
	case []any:
		parts := make([]string, 0, len(value))
		for _, item := range value {
			if encoded, ok := encodeValue(item); ok {
				parts = append(parts, encoded)
			}
		}

		return strings.Join(parts, ","), true
	case map[string]any:
		payload, err := json.Marshal(value)
		if err != nil {
			return "", false
		}

		return string(payload), true
	default:
		return fmt.Sprint(value), true
	}
}

func asJSON(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage("null")
	}

	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}

	quoted, _ := json.Marshal(string(trimmed))

	return quoted
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}

	return string(body[:limit]) + "..."
}
