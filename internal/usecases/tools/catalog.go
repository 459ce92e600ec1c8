package tools

import (
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/internal/usecases"
	"github.com/architeacher/storetools/pkg/logger"
)

// Build registers the commerce tools and, when the content upstreams are configured,
// the content, media and SEO tools.
func Build(app *usecases.Application, log logger.Logger) (*Catalog, error) {
	b := builder{app: app}

	groups := [][]Tool{
		b.productTools(),
		b.taxonomyTools(),
		b.orderTools(),
		b.customerTools(),
		b.couponTools(),
		b.settingTools(),
		b.analyticsTools(),
		b.webhookTools(),
		b.systemTools(),
	}

	if _, ok := app.Upstreams[ports.UpstreamContent]; ok {
		groups = append(groups, b.contentTools(), b.mediaTools(), b.seoTools(app.Upstreams))
	} else {
		log.Warn().Msg("content credentials are not configured, content, media and SEO tools are disabled")
	}

	var all []Tool
	for _, group := range groups {
		all = append(all, group...)
	}

	catalog, err := NewCatalog(all...)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("tools", catalog.Len()).
		Interface("groups", catalog.Groups()).
		Msg("tool catalog built")

	return catalog, nil
}
