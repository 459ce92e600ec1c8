package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/cenkalti/backoff/v5"
	"github.com/hashicorp/vault/api"
	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/mapstructure"
)

type Loader struct {
	cfg              *ServiceConfig
	secretsRepo      ports.SecretsRepository
	configSignalChan chan os.Signal
	reloadErrors     chan error
	ticker           *time.Ticker
	lastVersion      uint
	dumpWriter       io.Writer
}

func NewLoader(cfg *ServiceConfig, secretsRepo ports.SecretsRepository, initialVersion uint) *Loader {
	return &Loader{
		cfg:              cfg,
		secretsRepo:      secretsRepo,
		configSignalChan: make(chan os.Signal, 1),
		reloadErrors:     make(chan error, 1),
		lastVersion:      initialVersion,
		dumpWriter:       os.Stderr,
	}
}

// WatchConfigSignals reloads secrets on SIGHUP or on the poll interval and dumps the
// redacted configuration on SIGUSR1.
func (l *Loader) WatchConfigSignals(ctx context.Context) <-chan error {
	signal.Notify(l.configSignalChan, syscall.SIGHUP, syscall.SIGUSR1)

	if l.cfg.SecretsStorage.Enabled && l.cfg.SecretsStorage.PollInterval > 0 {
		l.ticker = time.NewTicker(l.cfg.SecretsStorage.PollInterval)
	}

	go func() {
		defer signal.Stop(l.configSignalChan)
		defer close(l.reloadErrors)

		if l.ticker != nil {
			defer l.ticker.Stop()
		}

		var reloadTickerChan <-chan time.Time
		if l.ticker != nil {
			reloadTickerChan = l.ticker.C
		}

		for {
			select {
			case <-ctx.Done():
				return

			case <-reloadTickerChan:
				l.handleConfigReload(ctx)

			case sig := <-l.configSignalChan:
				switch sig {
				case syscall.SIGHUP:
					l.handleConfigReload(ctx)

				case syscall.SIGUSR1:
					l.DumpConfig()
				}
			}
		}
	}()

	return l.reloadErrors
}

// DumpConfig writes the configuration as JSON. Credential fields are excluded by their json tags.
func (l *Loader) DumpConfig() {
	configJSON, err := json.MarshalIndent(l.cfg, "", "  ")
	if err != nil {
		fmt.Fprintf(l.dumpWriter, "Error marshaling config: %v\n", err)

		return
	}

	fmt.Fprintf(l.dumpWriter, "\n=== Configuration Dump ===\n%s\n=== End Configuration ===\n\n", string(configJSON))
}

// Load authenticates against vault, applies the credential secrets to cfg and
// returns the secret version.
func (l *Loader) Load(ctx context.Context, secretsRepo ports.SecretsRepository, cfg *ServiceConfig) (uint, error) {
	if !cfg.SecretsStorage.Enabled {
		return 0, errSecretsDisabled
	}

	if err := authenticate(ctx, secretsRepo, cfg.SecretsStorage); err != nil {
		return 0, fmt.Errorf("authenticating with vault: %w", err)
	}

	secret, err := readSecret(ctx, secretsRepo, cfg.SecretsStorage)
	if err != nil {
		return 0, err
	}

	var creds vaultCredentials
	if err := mapstructure.Decode(secret.section("data"), &creds); err != nil {
		return 0, fmt.Errorf("decoding secrets at %s: %w", secretPath(cfg.SecretsStorage), err)
	}

	creds.apply(cfg)

	return secret.version()
}

// Init reads the configuration from the environment and validates it.
func Init() (*ServiceConfig, error) {
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid service configuration: %w", err)
	}

	return cfg, nil
}

// Parse reads the configuration from the environment without validating it.
func Parse() (*ServiceConfig, error) {
	cfg := &ServiceConfig{}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("unable to parse service configuration: %w", err)
	}

	return cfg, nil
}

func (l *Loader) handleConfigReload(ctx context.Context) {
	secret, err := readSecret(ctx, l.secretsRepo, l.cfg.SecretsStorage)
	if err != nil {
		l.reportReloadStatus(err)

		return
	}

	current, err := secret.version()
	if err != nil {
		l.reportReloadStatus(err)

		return
	}

	if current == l.lastVersion {
		return
	}

	version, err := l.Load(ctx, l.secretsRepo, l.cfg)
	if err != nil {
		l.reportReloadStatus(err)

		return
	}

	l.lastVersion = version
	l.reportReloadStatus(nil)
}

func (l *Loader) reportReloadStatus(err error) {
	select {
	case l.reloadErrors <- err:
	default:
	}
}

var errSecretsDisabled = errors.New("secret storage is not enabled")

// vaultCredentials are the keys read from the kv secret. Empty values leave the
// environment configuration in place.
type vaultCredentials struct {
	CommerceKey     string `mapstructure:"WOOCOMMERCE_KEY"`
	CommerceSecret  string `mapstructure:"WOOCOMMERCE_SECRET"`
	ContentUsername string `mapstructure:"WORDPRESS_USERNAME"`
	ContentPassword string `mapstructure:"WORDPRESS_PASSWORD"`
	WebhookSecret   string `mapstructure:"WEBHOOK_SECRET"`
	RedisURL        string `mapstructure:"REDIS_URL"`
}

func (c vaultCredentials) apply(cfg *ServiceConfig) {
	for _, field := range []struct {
		value  string
		target *string
	}{
		{c.CommerceKey, &cfg.Commerce.ConsumerKey},
		{c.CommerceSecret, &cfg.Commerce.ConsumerSecret},
		{c.ContentUsername, &cfg.Content.Username},
		{c.ContentPassword, &cfg.Content.Password},
		{c.WebhookSecret, &cfg.Webhook.Secret},
		{c.RedisURL, &cfg.Cache.RedisURL},
	} {
		if field.value != "" {
			*field.target = field.value
		}
	}
}

func authenticate(ctx context.Context, client ports.SecretsRepository, storage SecretsStorage) error {
	switch strings.ToLower(storage.AuthMethod) {
	case "token":
		if storage.Token == "" {
			return &model.ConfigError{Field: "VAULT_TOKEN", Reason: "is required for token auth"}
		}

		client.SetToken(storage.Token)

		return nil

	case "approle":
		if storage.RoleID == "" || storage.SecretID == "" {
			return &model.ConfigError{Field: "VAULT_ROLE_ID", Reason: "and VAULT_SECRET_ID are required for approle auth"}
		}

		resp, err := client.WriteWithContext(ctx, "auth/approle/login", map[string]any{
			"role_id":   storage.RoleID,
			"secret_id": storage.SecretID,
		})
		if err != nil {
			return fmt.Errorf("approle login: %w", err)
		}

		if resp == nil || resp.Auth == nil {
			return errors.New("approle login returned no token")
		}

		client.SetToken(resp.Auth.ClientToken)

		return nil

	default:
		return &model.ConfigError{Field: "VAULT_AUTH_METHOD", Reason: fmt.Sprintf("unsupported method %q", storage.AuthMethod)}
	}
}

func secretPath(storage SecretsStorage) string {
	return "apps/data/" + storage.MountPath
}

// kvSecret is a kv v2 read: {"data": {...}, "metadata": {"version": n}}.
type kvSecret struct {
	path string
	raw  *api.Secret
}

// readSecret retries vault reads with exponential backoff within the storage timeout.
func readSecret(ctx context.Context, client ports.SecretsRepository, storage SecretsStorage) (kvSecret, error) {
	path := secretPath(storage)

	ctx, cancel := context.WithTimeout(ctx, storage.Timeout)
	defer cancel()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = time.Second

	secret, err := backoff.Retry(ctx, func() (*api.Secret, error) {
		return client.GetSecrets(ctx, path)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(storage.MaxRetries+1),
		backoff.WithMaxElapsedTime(0),
	)
	if err != nil {
		return kvSecret{}, fmt.Errorf("reading %s after %d retries: %w", path, storage.MaxRetries, err)
	}

	return kvSecret{path: path, raw: secret}, nil
}

func (s kvSecret) section(name string) map[string]any {
	if s.raw == nil || s.raw.Data == nil {
		return nil
	}

	section, _ := s.raw.Data[name].(map[string]any)

	return section
}

func (s kvSecret) version() (uint, error) {
	metadata := s.section("metadata")

	raw, ok := metadata["version"]
	if !ok {
		raw, ok = metadata["current_version"]
	}

	if !ok {
		return 0, nil
	}

	switch v := raw.(type) {
	case float64:
		return uint(v), nil
	case int:
		return uint(v), nil
	case uint:
		return v, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("parsing version of %s: %w", s.path, err)
		}

		return uint(n), nil
	default:
		return 0, fmt.Errorf("unexpected version type %T at %s", raw, s.path)
	}
}
