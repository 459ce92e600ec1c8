package repos_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/architeacher/storetools/internal/adapters/repos"
	"github.com/architeacher/storetools/internal/config"
	"github.com/stretchr/testify/suite"
)

type VaultRepositoryTestSuite struct {
	suite.Suite

	server *httptest.Server
	repo   *repos.VaultRepository
	tokens []string
}

func TestVaultRepositoryTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(VaultRepositoryTestSuite))
}

func (s *VaultRepositoryTestSuite) SetupTest() {
	s.tokens = nil

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/apps/data/storetools", func(w http.ResponseWriter, r *http.Request) {
		s.tokens = append(s.tokens, r.Header.Get("X-Vault-Token"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"data":     map[string]any{"WOOCOMMERCE_KEY": "ck_vault"},
				"metadata": map[string]any{"version": 3},
			},
		})
	})
	mux.HandleFunc("PUT /v1/auth/approle/login", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"auth": map[string]any{"client_token": "issued-token"},
		})
	})

	s.server = httptest.NewServer(mux)
	s.T().Cleanup(s.server.Close)

	client, err := repos.NewVaultClient(config.SecretsStorage{
		Address:   s.server.URL,
		Timeout:   5 * time.Second,
		Namespace: "team",
	})
	s.Require().NoError(err)

	s.repo = repos.NewVaultRepository(client)
}

func (s *VaultRepositoryTestSuite) TestGetSecrets() {
	s.repo.SetToken("root")

	secret, err := s.repo.GetSecrets(context.Background(), "apps/data/storetools")
	s.Require().NoError(err)
	s.Require().NotNil(secret)

	data, ok := secret.Data["data"].(map[string]any)
	s.Require().True(ok)
	s.Require().Equal("ck_vault", data["WOOCOMMERCE_KEY"])
	s.Require().Equal([]string{"root"}, s.tokens)
}

func (s *VaultRepositoryTestSuite) TestApproleLogin() {
	secret, err := s.repo.WriteWithContext(context.Background(), "auth/approle/login", map[string]any{
		"role_id":   "role",
		"secret_id": "secret",
	})
	s.Require().NoError(err)
	s.Require().NotNil(secret.Auth)
	s.Require().Equal("issued-token", secret.Auth.ClientToken)
}

func (s *VaultRepositoryTestSuite) TestGetSecretsFailure() {
	s.server.Close()

	_, err := s.repo.GetSecrets(context.Background(), "apps/data/storetools")
	s.Require().ErrorContains(err, "reading secret apps/data/storetools")
}
