package config

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/mocks"
	"github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCommerceEnv(t *testing.T, url string) {
	t.Helper()

	t.Setenv("WOOCOMMERCE_URL", url)
	t.Setenv("WOOCOMMERCE_KEY", "ck_test")
	t.Setenv("WOOCOMMERCE_SECRET", "cs_test")
}

func TestInit(t *testing.T) {
	setCommerceEnv(t, "https://shop.example.com")
	t.Setenv("APP_ENVIRONMENT", "sandbox")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WORDPRESS_USERNAME", "editor")
	t.Setenv("WORDPRESS_PASSWORD", "app-password")
	t.Setenv("USE_REDIS", "true")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")

	cfg, err := Init()
	require.NoError(t, err)

	assert.Equal(t, "sandbox", cfg.App.Env.Name)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "ck_test", cfg.Commerce.ConsumerKey)
	assert.True(t, cfg.Content.HasCredentials())
	assert.Equal(t, "https://shop.example.com", cfg.Content.BaseURL(cfg.Commerce))
	assert.True(t, cfg.Cache.UseRedis)
	assert.Equal(t, "redis://cache:6379/2", cfg.Cache.RedisURL)
}

func TestInit_DefaultValues(t *testing.T) {
	setCommerceEnv(t, "https://shop.example.com/")

	cfg, err := Init()
	require.NoError(t, err)

	assert.Equal(t, "storetools", cfg.App.ServiceName)
	assert.Equal(t, AuthModeAuto, cfg.Commerce.AuthMode)
	assert.Equal(t, "wp-json/wc/v3", cfg.Commerce.APIPath)
	assert.Equal(t, "wp-json/wp/v2", cfg.Content.APIPath)
	assert.False(t, cfg.Content.HasCredentials())

	assert.Equal(t, uint(3), cfg.Retry.MaxRetries)
	assert.Equal(t, 300*time.Millisecond, cfg.Retry.InitialDelay)
	assert.InDelta(t, 2.0, cfg.Retry.BackoffFactor, 0.0001)
	assert.Equal(t, 10*time.Second, cfg.Retry.MaxDelay)

	assert.True(t, cfg.Cache.Enabled)
	assert.False(t, cfg.Cache.UseRedis)
	assert.Equal(t, 300*time.Second, cfg.Cache.TTL.Default)
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL.Detail)
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL.List)
	assert.Equal(t, time.Hour, cfg.Cache.TTL.Settings)
	assert.Equal(t, 300*time.Second, cfg.Cache.TTL.Reports)

	assert.False(t, cfg.SecretsStorage.Enabled)
	assert.False(t, cfg.WebhookServer.Enabled)
	assert.Equal(t, []string{"order.created", "order.updated", "product.updated", "customer.created"}, cfg.Webhook.Topics)
}

func TestInit_ReportsEveryProblem(t *testing.T) {
	t.Setenv("WOOCOMMERCE_URL", "http://shop.local")
	t.Setenv("WOOCOMMERCE_AUTH_MODE", "query")
	t.Setenv("WORDPRESS_USERNAME", "editor")

	_, err := Init()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "ServiceConfig.Commerce.ConsumerKey")
	assert.Contains(t, msg, "ServiceConfig.Commerce.ConsumerSecret")
	assert.Contains(t, msg, "query credentials require an https URL")
	assert.Contains(t, msg, "WORDPRESS_PASSWORD")
	assert.True(t, model.IsConfigError(err))
}

func TestCommerce_ResolveAuthMode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		url     string
		mode    string
		want    string
		wantErr bool
	}{
		{name: "auto over https", url: "https://shop.example.com", mode: AuthModeAuto, want: AuthModeQuery},
		{name: "auto over http", url: "http://shop.local", mode: AuthModeAuto, want: AuthModeOAuth1},
		{name: "empty mode is auto", url: "http://shop.local", mode: "", want: AuthModeOAuth1},
		{name: "explicit oauth1 over https", url: "https://shop.example.com", mode: AuthModeOAuth1, want: AuthModeOAuth1},
		{name: "explicit query over https", url: "https://shop.example.com", mode: "QUERY", want: AuthModeQuery},
		{name: "query over http rejected", url: "http://shop.local", mode: AuthModeQuery, wantErr: true},
		{name: "unknown mode", url: "https://shop.example.com", mode: "jwt", wantErr: true},
		{name: "relative url", url: "shop.example.com", mode: AuthModeAuto, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Commerce{URL: tc.url, AuthMode: tc.mode}.ResolveAuthMode()
			if tc.wantErr {
				require.Error(t, err)
				require.True(t, model.IsConfigError(err))

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvironment(t *testing.T) {
	cases := []struct {
		name     string
		env      string
		expected int
	}{
		{name: "production", env: "production", expected: Production},
		{name: "prod shorthand", env: "prod", expected: Production},
		{name: "staging", env: "staging", expected: Staging},
		{name: "stg shorthand", env: "stg", expected: Staging},
		{name: "sandbox", env: "sandbox", expected: Sandbox},
		{name: "sbx shorthand", env: "sbx", expected: Sandbox},
		{name: "unknown defaults to development", env: "unknown", expected: Development},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &ServiceConfig{App: App{Env: Environment{Name: tc.env}}}

			assert.Equal(t, tc.expected, cfg.GetEnvironment())
			assert.Equal(t, tc.expected == Production, cfg.IsProduction())
		})
	}
}

func secretsRepository(secret *api.Secret) *mocks.FakeSecretsRepository {
	repo := &mocks.FakeSecretsRepository{}
	repo.GetSecretsReturns(secret, nil)
	repo.WriteWithContextReturns(&api.Secret{Auth: &api.SecretAuth{ClientToken: "approle-token"}}, nil)

	return repo
}

func lastToken(repo *mocks.FakeSecretsRepository) string {
	if repo.SetTokenCallCount() == 0 {
		return ""
	}

	return repo.SetTokenArgsForCall(repo.SetTokenCallCount() - 1)
}

func vaultSecret(version float64) *api.Secret {
	return &api.Secret{Data: map[string]any{
		"data": map[string]any{
			"WOOCOMMERCE_KEY":    "ck_vault",
			"WOOCOMMERCE_SECRET": "cs_vault",
			"WEBHOOK_SECRET":     "whsec",
		},
		"metadata": map[string]any{"version": version},
	}}
}

func vaultConfig(method string) *ServiceConfig {
	return &ServiceConfig{SecretsStorage: SecretsStorage{
		Enabled:    true,
		AuthMethod: method,
		Token:      "root",
		RoleID:     "role",
		SecretID:   "secret",
		MountPath:  "storetools",
		Timeout:    30 * time.Second,
		MaxRetries: 2,
	}}
}

func TestLoader_Load(t *testing.T) {
	t.Setenv("WOOCOMMERCE_KEY", "")
	t.Setenv("WOOCOMMERCE_SECRET", "")
	t.Setenv("WEBHOOK_SECRET", "")

	repo := secretsRepository(vaultSecret(4))
	cfg := vaultConfig("approle")

	version, err := NewLoader(cfg, repo, 0).Load(context.Background(), repo, cfg)
	require.NoError(t, err)

	assert.Equal(t, uint(4), version)
	assert.Equal(t, "approle-token", lastToken(repo))
	assert.Equal(t, "ck_vault", cfg.Commerce.ConsumerKey)
	assert.Equal(t, "cs_vault", cfg.Commerce.ConsumerSecret)
	assert.Equal(t, "whsec", cfg.Webhook.Secret)
	require.Equal(t, 1, repo.WriteWithContextCallCount())

	_, path, login := repo.WriteWithContextArgsForCall(0)
	assert.Equal(t, "auth/approle/login", path)
	assert.Equal(t, "role", login["role_id"])
}

func TestLoader_Load_RetriesTransientVaultFailures(t *testing.T) {
	t.Setenv("WOOCOMMERCE_KEY", "")
	t.Setenv("WOOCOMMERCE_SECRET", "")
	t.Setenv("WEBHOOK_SECRET", "")

	repo := secretsRepository(vaultSecret(1))
	repo.GetSecretsReturnsOnCall(0, nil, errors.New("vault sealed"))
	cfg := vaultConfig("token")

	version, err := NewLoader(cfg, repo, 0).Load(context.Background(), repo, cfg)
	require.NoError(t, err)

	assert.Equal(t, uint(1), version)
	assert.Equal(t, "root", lastToken(repo))
	assert.Equal(t, 2, repo.GetSecretsCallCount())
}

func TestLoader_Load_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  func() *ServiceConfig
	}{
		{
			name: "storage disabled",
			cfg:  func() *ServiceConfig { return &ServiceConfig{} },
		},
		{
			name: "missing token",
			cfg: func() *ServiceConfig {
				cfg := vaultConfig("token")
				cfg.SecretsStorage.Token = ""

				return cfg
			},
		},
		{
			name: "unsupported auth method",
			cfg:  func() *ServiceConfig { return vaultConfig("kubernetes") },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := secretsRepository(vaultSecret(1))
			cfg := tc.cfg()

			_, err := NewLoader(cfg, repo, 0).Load(context.Background(), repo, cfg)
			require.Error(t, err)
			require.Zero(t, repo.GetSecretsCallCount())
		})
	}
}

func TestLoader_DumpConfigRedactsCredentials(t *testing.T) {
	t.Parallel()

	cfg := &ServiceConfig{
		Commerce: Commerce{URL: "https://shop.example.com", ConsumerKey: "ck_visible", ConsumerSecret: "cs_hidden"},
		Content:  Content{Username: "editor", Password: "pw_hidden"},
		Webhook:  Webhook{Secret: "wh_hidden"},
	}

	var buf bytes.Buffer

	loader := NewLoader(cfg, nil, 0)
	loader.dumpWriter = &buf
	loader.DumpConfig()

	out := buf.String()
	assert.Contains(t, out, "Configuration Dump")
	assert.Contains(t, out, "https://shop.example.com")
	assert.NotContains(t, out, "cs_hidden")
	assert.NotContains(t, out, "pw_hidden")
	assert.NotContains(t, out, "wh_hidden")
}
