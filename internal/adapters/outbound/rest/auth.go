package rest

import (
	"net/http"

	"github.com/architeacher/storetools/internal/config"
	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/pkg/logger"
)

// Authenticator attaches credentials to a fully built request.
type Authenticator interface {
	Name() string
	Authenticate(req *http.Request) error
}

type (
	// QueryCredentials sends consumer_key and consumer_secret as query parameters.
	// Only safe over https.
	QueryCredentials struct {
		ConsumerKey    string
		ConsumerSecret string
	}

	// BasicAuth sends an Authorization: Basic header, used with WordPress application passwords.
	BasicAuth struct {
		Username string
		Password string
	}
)

func (QueryCredentials) Name() string { return "query" }

func (a QueryCredentials) Authenticate(req *http.Request) error {
	query := req.URL.Query()
	query.Set("consumer_key", a.ConsumerKey)
	query.Set("consumer_secret", a.ConsumerSecret)
	req.URL.RawQuery = query.Encode()

	return nil
}

func (BasicAuth) Name() string { return "basic" }

func (a BasicAuth) Authenticate(req *http.Request) error {
	req.SetBasicAuth(a.Username, a.Password)

	return nil
}

// NewCommerceAuthenticator picks the commerce signing strategy from the configured
// auth mode. When the mode is auto, the inferred strategy is logged as a warning.
func NewCommerceAuthenticator(cfg config.Commerce, log logger.Logger) (Authenticator, error) {
	if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" {
		return nil, &model.ConfigError{Field: "WOOCOMMERCE_KEY", Reason: "consumer key and secret are required"}
	}

	mode, err := cfg.ResolveAuthMode()
	if err != nil {
		return nil, err
	}

	if cfg.AuthMode == "" || cfg.AuthMode == config.AuthModeAuto {
		log.Warn().
			Str("auth_mode", mode).
			Str("url", cfg.URL).
			Msg("commerce auth mode inferred from URL scheme; set WOOCOMMERCE_AUTH_MODE explicitly when TLS terminates at a proxy")
	}

	if mode == config.AuthModeQuery {
		return QueryCredentials{ConsumerKey: cfg.ConsumerKey, ConsumerSecret: cfg.ConsumerSecret}, nil
	}

	return NewOAuth1Signer(cfg.ConsumerKey, cfg.ConsumerSecret), nil
}

// NewContentAuthenticator returns Basic auth for the content API, or a ConfigError
// when the credentials are not configured.
func NewContentAuthenticator(cfg config.Content) (Authenticator, error) {
	if !cfg.HasCredentials() {
		return nil, &model.ConfigError{
			Field:  "WORDPRESS_USERNAME",
			Reason: "content credentials are not configured",
			Err:    model.ErrContentCredentialsMissing,
		}
	}

	return BasicAuth{Username: cfg.Username, Password: cfg.Password}, nil
}
