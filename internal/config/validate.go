package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the loaded configuration and reports every problem at once.
func (c *ServiceConfig) Validate() error {
	var result *multierror.Error

	if err := structValidator.Struct(c); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return fmt.Errorf("validating configuration: %w", err)
		}

		for _, fe := range fieldErrors {
			result = multierror.Append(result, &model.ConfigError{
				Field:  fe.Namespace(),
				Reason: describe(fe),
			})
		}
	}

	if _, err := c.Commerce.ResolveAuthMode(); err != nil {
		result = multierror.Append(result, err)
	}

	if c.Content.Username != "" && c.Content.Password == "" {
		result = multierror.Append(result, &model.ConfigError{
			Field:  "WORDPRESS_PASSWORD",
			Reason: "is required when WORDPRESS_USERNAME is set",
		})
	}

	return result.ErrorOrNil()
}

// ResolveAuthMode returns the effective commerce auth mode. Auto picks OAuth 1.0a
// over plain http and query credentials over https.
func (c Commerce) ResolveAuthMode() (string, error) {
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", &model.ConfigError{Field: "WOOCOMMERCE_URL", Reason: "must be an absolute URL", Err: err}
	}

	secure := strings.EqualFold(u.Scheme, "https")

	switch strings.ToLower(c.AuthMode) {
	case AuthModeOAuth1:
		return AuthModeOAuth1, nil
	case AuthModeQuery:
		if !secure {
			return "", &model.ConfigError{
				Field:  "WOOCOMMERCE_AUTH_MODE",
				Reason: "query credentials require an https URL",
			}
		}

		return AuthModeQuery, nil
	case AuthModeAuto, "":
		if secure {
			return AuthModeQuery, nil
		}

		return AuthModeOAuth1, nil
	default:
		return "", &model.ConfigError{
			Field:  "WOOCOMMERCE_AUTH_MODE",
			Reason: fmt.Sprintf("unsupported mode %q", c.AuthMode),
		}
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be no less than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be no greater than %s", fe.Param())
	case "gtefield":
		return fmt.Sprintf("must be no less than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q", fe.Tag())
	}
}
