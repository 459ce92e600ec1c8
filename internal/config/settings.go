package config

import (
	"strings"
	"time"
)

// Compile time variables are set by -ldflags.
var (
	ServiceVersion = "dev"
	CommitSHA      string
)

const (
	Development = 1 << iota
	Sandbox
	Staging
	Production
)

const (
	AuthModeAuto   = "auto"
	AuthModeOAuth1 = "oauth1"
	AuthModeQuery  = "query"
)

type (
	ServiceConfig struct {
		App                   App                   `json:"app"`
		SecretsStorage        SecretsStorage        `json:"secrets_storage"`
		Commerce              Commerce              `json:"commerce"`
		Content               Content               `json:"content"`
		HTTPClient            HTTPClient            `json:"http_client"`
		Retry                 Retry                 `json:"retry"`
		CircuitBreaker        CircuitBreakerConfig  `json:"circuit_breaker"`
		Cache                 Cache                 `json:"cache"`
		RPCServer             RPCServer             `json:"rpc_server"`
		WebhookServer         WebhookServer         `json:"webhook_server"`
		Webhook               Webhook               `json:"webhook"`
		ThrottledRateLimiting ThrottledRateLimiting `json:"throttled_rate_limiting"`
		Logging               Logging               `json:"logging"`
		Telemetry             Telemetry             `json:"telemetry"`
	}

	App struct {
		ServiceName string      `envconfig:"APP_SERVICE_NAME" default:"storetools" json:"service_name"`
		Env         Environment `json:"environment"`
	}

	Environment struct {
		Name string `envconfig:"APP_ENVIRONMENT" default:"development" json:"env"`
	}

	SecretsStorage struct {
		Enabled       bool          `envconfig:"VAULT_ENABLED" default:"false" json:"enabled"`
		Address       string        `envconfig:"VAULT_ADDRESS" default:"http://vault:8200" json:"address"`
		Token         string        `envconfig:"VAULT_TOKEN" default:"" json:"-"`
		RoleID        string        `envconfig:"VAULT_ROLE_ID" default:"" json:"role_id,omitempty"`
		SecretID      string        `envconfig:"VAULT_SECRET_ID" default:"" json:"-"`
		AuthMethod    string        `envconfig:"VAULT_AUTH_METHOD" default:"token" json:"auth_method" validate:"omitempty,oneof=token approle"`
		MountPath     string        `envconfig:"VAULT_MOUNT_PATH" default:"storetools" json:"mount_path"`
		Namespace     string        `envconfig:"VAULT_NAMESPACE" default:"" json:"namespace,omitempty"`
		Timeout       time.Duration `envconfig:"VAULT_TIMEOUT" default:"30s" json:"timeout"`
		MaxRetries    uint          `envconfig:"VAULT_MAX_RETRIES" default:"3" json:"max_retries"`
		TLSSkipVerify bool          `envconfig:"VAULT_TLS_SKIP_VERIFY" default:"false" json:"tls_skip_verify"`
		PollInterval  time.Duration `envconfig:"VAULT_POLL_INTERVAL" default:"24h" json:"poll_interval"`
	}

	// Commerce holds the WooCommerce REST API settings.
	Commerce struct {
		URL            string `envconfig:"WOOCOMMERCE_URL" json:"url" validate:"required,url"`
		ConsumerKey    string `envconfig:"WOOCOMMERCE_KEY" json:"consumer_key,omitempty" validate:"required"`
		ConsumerSecret string `envconfig:"WOOCOMMERCE_SECRET" json:"-" validate:"required"`
		AuthMode       string `envconfig:"WOOCOMMERCE_AUTH_MODE" default:"auto" json:"auth_mode" validate:"oneof=auto oauth1 query"`
		APIPath        string `envconfig:"WOOCOMMERCE_API_PATH" default:"wp-json/wc/v3" json:"api_path"`
	}

	// Content holds the WordPress REST API settings. Both credentials are optional;
	// content tools are only registered when they are set.
	Content struct {
		URL      string `envconfig:"WORDPRESS_URL" json:"url,omitempty" validate:"omitempty,url"`
		Username string `envconfig:"WORDPRESS_USERNAME" json:"username,omitempty"`
		Password string `envconfig:"WORDPRESS_PASSWORD" json:"-"`
		APIPath  string `envconfig:"WORDPRESS_API_PATH" default:"wp-json/wp/v2" json:"api_path"`
	}

	HTTPClient struct {
		Timeout   time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"30s" json:"timeout" validate:"gt=0"`
		UserAgent string        `envconfig:"HTTP_CLIENT_USER_AGENT" default:"storetools" json:"user_agent"`
	}

	Retry struct {
		MaxRetries    uint          `envconfig:"RETRY_MAX_RETRIES" default:"3" json:"max_retries" validate:"gte=1"`
		InitialDelay  time.Duration `envconfig:"RETRY_INITIAL_DELAY" default:"300ms" json:"initial_delay" validate:"gt=0"`
		BackoffFactor float64       `envconfig:"RETRY_BACKOFF_FACTOR" default:"2" json:"backoff_factor" validate:"gte=1"`
		MaxDelay      time.Duration `envconfig:"RETRY_MAX_DELAY" default:"10s" json:"max_delay" validate:"gtefield=InitialDelay"`
	}

	CircuitBreakerConfig struct {
		Enabled          bool          `envconfig:"UPSTREAM_CB_ENABLED" default:"true" json:"enabled"`
		MaxRequests      uint          `envconfig:"UPSTREAM_CB_MAX_REQUESTS" default:"5" json:"max_requests"`
		Interval         time.Duration `envconfig:"UPSTREAM_CB_INTERVAL" default:"60s" json:"interval"`
		Timeout          time.Duration `envconfig:"UPSTREAM_CB_TIMEOUT" default:"30s" json:"timeout"`
		FailureThreshold uint          `envconfig:"UPSTREAM_CB_FAILURE_THRESHOLD" default:"5" json:"failure_threshold"`
	}

	Cache struct {
		Enabled      bool          `envconfig:"CACHE_ENABLED" default:"true" json:"enabled"`
		UseRedis     bool          `envconfig:"USE_REDIS" default:"false" json:"use_redis"`
		RedisURL     string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0" json:"-" validate:"required_if=UseRedis true"`
		PoolSize     uint          `envconfig:"CACHE_POOL_SIZE" default:"10" json:"pool_size"`
		DialTimeout  time.Duration `envconfig:"CACHE_DIAL_TIMEOUT" default:"5s" json:"dial_timeout"`
		ReadTimeout  time.Duration `envconfig:"CACHE_READ_TIMEOUT" default:"3s" json:"read_timeout"`
		WriteTimeout time.Duration `envconfig:"CACHE_WRITE_TIMEOUT" default:"3s" json:"write_timeout"`
		ScanCount    int64         `envconfig:"CACHE_SCAN_COUNT" default:"100" json:"scan_count" validate:"gt=0"`
		TTL          CacheTTL      `json:"ttl"`
	}

	CacheTTL struct {
		Default  time.Duration `envconfig:"CACHE_TTL_DEFAULT" default:"300s" json:"default"`
		Detail   time.Duration `envconfig:"CACHE_TTL_DETAIL" default:"60s" json:"detail"`
		List     time.Duration `envconfig:"CACHE_TTL_LIST" default:"60s" json:"list"`
		Settings time.Duration `envconfig:"CACHE_TTL_SETTINGS" default:"3600s" json:"settings"`
		Reports  time.Duration `envconfig:"CACHE_TTL_REPORTS" default:"300s" json:"reports"`
	}

	RPCServer struct {
		MaxConcurrentCalls int64 `envconfig:"RPC_MAX_CONCURRENT_CALLS" default:"8" json:"max_concurrent_calls" validate:"gte=1"`
		MaxMessageBytes    int   `envconfig:"RPC_MAX_MESSAGE_BYTES" default:"16777216" json:"max_message_bytes" validate:"gte=4096"`
	}

	WebhookServer struct {
		Enabled         bool          `envconfig:"WEBHOOK_SERVER_ENABLED" default:"false" json:"enabled"`
		Host            string        `envconfig:"WEBHOOK_SERVER_HOST" default:"0.0.0.0" json:"host"`
		Port            uint          `envconfig:"WEBHOOK_SERVER_PORT" default:"8090" json:"port"`
		ReadTimeout     time.Duration `envconfig:"WEBHOOK_SERVER_READ_TIMEOUT" default:"15s" json:"read_timeout"`
		WriteTimeout    time.Duration `envconfig:"WEBHOOK_SERVER_WRITE_TIMEOUT" default:"15s" json:"write_timeout"`
		IdleTimeout     time.Duration `envconfig:"WEBHOOK_SERVER_IDLE_TIMEOUT" default:"60s" json:"idle_timeout"`
		ShutdownTimeout time.Duration `envconfig:"WEBHOOK_SERVER_SHUTDOWN_TIMEOUT" default:"30s" json:"shutdown_timeout"`
		MaxBodyBytes    int64         `envconfig:"WEBHOOK_SERVER_MAX_BODY_BYTES" default:"1048576" json:"max_body_bytes"`
	}

	Webhook struct {
		BaseURL string   `envconfig:"WEBHOOK_BASE_URL" json:"base_url,omitempty" validate:"omitempty,url"`
		Secret  string   `envconfig:"WEBHOOK_SECRET" json:"-"`
		Topics  []string `envconfig:"WEBHOOK_TOPICS" default:"order.created,order.updated,product.updated,customer.created" json:"topics"`
	}

	ThrottledRateLimiting struct {
		Enabled           bool     `envconfig:"RATE_LIMITING_ENABLED" default:"true" json:"enabled"`
		RequestsPerSecond uint     `envconfig:"RATE_LIMITING_REQUESTS_PER_SECOND" default:"10" json:"requests_per_second"`
		BurstSize         uint     `envconfig:"RATE_LIMITING_BURST_SIZE" default:"20" json:"burst_size"`
		MaxKeys           int      `envconfig:"RATE_LIMITING_MAX_KEYS" default:"1000" json:"max_keys"`
		SkipPaths         []string `envconfig:"RATE_LIMITING_SKIP_PATHS" default:"/health" json:"skip_paths"`
	}

	Logging struct {
		Level     string    `envconfig:"LOG_LEVEL" default:"info" json:"level"`
		Format    string    `envconfig:"LOG_FORMAT" default:"json" json:"format"`
		AccessLog AccessLog `json:"access_log"`
	}

	AccessLog struct {
		Enabled         bool `envconfig:"ACCESS_LOG_ENABLED" default:"true" json:"enabled"`
		LogHealthChecks bool `envconfig:"ACCESS_LOG_HEALTH_CHECKS" default:"false" json:"log_health_checks"`
	}

	Telemetry struct {
		Enabled      bool   `envconfig:"OTEL_ENABLED" default:"false" json:"enabled"`
		ExporterType string `envconfig:"OTEL_EXPORTER" default:"grpc" json:"exporter_type" validate:"oneof=grpc stdout"`

		OtelGRPCHost       string `envconfig:"OTEL_HOST" default:"localhost" json:"otel_grpc_host"`
		OtelGRPCPort       string `envconfig:"OTEL_PORT" default:"4317" json:"otel_grpc_port"`
		OtelProductCluster string `envconfig:"OTEL_PRODUCT_CLUSTER" json:"otel_product_cluster"`

		Traces Traces `json:"traces"`
	}

	Traces struct {
		SamplerRatio float64 `envconfig:"TRACES_SAMPLER_RATIO" default:"1.0" json:"sampler_ratio" validate:"gte=0,lte=1"`
	}
)

func (c *ServiceConfig) GetEnvironment() int {
	switch c.App.Env.Name {
	case "production", "prod":
		return Production
	case "staging", "stg":
		return Staging
	case "sandbox", "sbx":
		return Sandbox
	default:
		return Development
	}
}

func (c *ServiceConfig) IsProduction() bool {
	return c.GetEnvironment() == Production
}

// BaseURL returns the content site root, defaulting to the commerce site.
func (c Content) BaseURL(commerce Commerce) string {
	if c.URL != "" {
		return strings.TrimRight(c.URL, "/")
	}

	return strings.TrimRight(commerce.URL, "/")
}

// HasCredentials reports whether content tools can authenticate.
func (c Content) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}
