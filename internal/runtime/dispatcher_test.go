package runtime

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates service context with default values", func(t *testing.T) {
		t.Parallel()

		serviceCtx := New()

		require.NotNil(t, serviceCtx)
		require.NotNil(t, serviceCtx.shutdownChannel)
		require.Equal(t, os.Stdin, serviceCtx.in)
		require.Equal(t, os.Stdout, serviceCtx.out)
		require.Nil(t, serviceCtx.deps)
		require.Nil(t, serviceCtx.serverReady)
	})

	t.Run("creates service context with options", func(t *testing.T) {
		t.Parallel()

		ch := make(chan os.Signal, 1)
		in := strings.NewReader("")
		out := &bytes.Buffer{}

		serviceCtx := New(
			WithServiceTermination(ch),
			WithWaitingForServer(),
			WithStreams(in, out),
		)

		require.NotNil(t, serviceCtx)
		require.Equal(t, ch, serviceCtx.shutdownChannel)
		require.NotNil(t, serviceCtx.serverReady)
		require.Equal(t, in, serviceCtx.in)
		require.Equal(t, out, serviceCtx.out)
	})
}

func setupStore(t *testing.T) *atomic.Int32 {
	t.Helper()

	var hits atomic.Int32

	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)

		w.Header().Set("Content-Type", "application/json")

		if strings.HasSuffix(r.URL.Path, "/products/7") {
			_, _ = w.Write([]byte(`{"id":7,"name":"Shirt"}`))

			return
		}

		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(store.Close)

	t.Setenv("WOOCOMMERCE_URL", store.URL)
	t.Setenv("WOOCOMMERCE_KEY", "ck_test")
	t.Setenv("WOOCOMMERCE_SECRET", "cs_test")
	t.Setenv("WORDPRESS_USERNAME", "")
	t.Setenv("WORDPRESS_PASSWORD", "")
	t.Setenv("USE_REDIS", "false")
	t.Setenv("VAULT_ENABLED", "false")
	t.Setenv("WEBHOOK_SERVER_ENABLED", "false")
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")

	return &hits
}

func TestRunServesUntilInputCloses(t *testing.T) {
	hits := setupStore(t)

	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"get_product","arguments":{"id":7}}}`,
	}, "\n") + "\n"

	out := &bytes.Buffer{}

	err := New(WithStreams(strings.NewReader(in), out)).Run(t.Context())
	require.NoError(t, err)

	responses := map[string]json.RawMessage{}

	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		var resp struct {
			ID     json.RawMessage `json:"id"`
			Result json.RawMessage `json:"result"`
		}

		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))

		responses[string(resp.ID)] = resp.Result
	}

	require.Len(t, responses, 2)
	require.Contains(t, string(responses["1"]), `"protocolVersion"`)
	require.Contains(t, string(responses["2"]), `Shirt`)
	require.NotContains(t, string(responses["2"]), `"isError":true`)
	require.Equal(t, int32(1), hits.Load())
}

func TestCatalogOmitsContentToolsWithoutCredentials(t *testing.T) {
	setupStore(t)

	serviceCtx := New()
	t.Cleanup(serviceCtx.Close)

	catalog, err := serviceCtx.Catalog(t.Context())
	require.NoError(t, err)

	_, ok := catalog.Lookup("list_products")
	require.True(t, ok)

	_, ok = catalog.Lookup("list_posts")
	require.False(t, ok)
}

func TestCatalogIncludesContentToolsWithCredentials(t *testing.T) {
	setupStore(t)
	t.Setenv("WORDPRESS_USERNAME", "editor")
	t.Setenv("WORDPRESS_PASSWORD", "app-password")

	serviceCtx := New()
	t.Cleanup(serviceCtx.Close)

	catalog, err := serviceCtx.Catalog(t.Context())
	require.NoError(t, err)

	for _, name := range []string{"list_posts", "upload_media", "get_yoast_post_meta", "list_rankmath_redirects"} {
		_, ok := catalog.Lookup(name)
		require.True(t, ok, name)
	}
}

func TestRunFailsOnInvalidConfiguration(t *testing.T) {
	setupStore(t)
	t.Setenv("WOOCOMMERCE_URL", "")

	err := New(WithStreams(strings.NewReader(""), &bytes.Buffer{})).Run(t.Context())
	require.ErrorContains(t, err, "invalid service configuration")
}

func TestWaitForServerReturnsWhenWebhookServerIsDisabled(t *testing.T) {
	setupStore(t)

	serviceCtx := New(WithWaitingForServer(), WithStreams(strings.NewReader(""), &bytes.Buffer{}))

	done := make(chan error, 1)
	go func() { done <- serviceCtx.Run(t.Context()) }()

	serviceCtx.WaitForServer()
	require.NoError(t, <-done)
}
