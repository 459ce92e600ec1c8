package repos

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/architeacher/storetools/internal/config"
	"github.com/hashicorp/vault/api"
)

// VaultRepository reads application secrets from HashiCorp Vault.
type VaultRepository struct {
	client *api.Client
}

func NewVaultRepository(client *api.Client) *VaultRepository {
	return &VaultRepository{client: client}
}

// NewVaultClient builds a vault client from the secrets storage settings.
func NewVaultClient(cfg config.SecretsStorage) (*api.Client, error) {
	vaultConfig := api.DefaultConfig()
	vaultConfig.Address = cfg.Address
	vaultConfig.Timeout = cfg.Timeout

	if cfg.TLSSkipVerify {
		transport, ok := vaultConfig.HttpClient.Transport.(*http.Transport)
		if ok {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for local vault
		}
	}

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("creating vault client: %w", err)
	}

	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	return client, nil
}

func (r *VaultRepository) GetSecrets(ctx context.Context, path string) (*api.Secret, error) {
	secret, err := r.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("reading secret %s: %w", path, err)
	}

	return secret, nil
}

func (r *VaultRepository) WriteWithContext(ctx context.Context, path string, data map[string]any) (*api.Secret, error) {
	secret, err := r.client.Logical().WriteWithContext(ctx, path, data)
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	return secret, nil
}

func (r *VaultRepository) SetToken(token string) {
	r.client.SetToken(token)
}
