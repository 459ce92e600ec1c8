// Package keyspaces names the cache keyspace of every upstream resource and maps
// platform events to the entries they make stale.
package keyspaces

import "github.com/architeacher/storetools/pkg/cachekey"

var (
	Products       = cachekey.MustNew("products")
	Variations     = cachekey.MustNew("products.variations")
	Categories     = cachekey.MustNew("products.categories")
	Tags           = cachekey.MustNew("products.tags")
	Attributes     = cachekey.MustNew("products.attributes")
	AttributeTerms = cachekey.MustNew("products.attributes.terms")
	Orders         = cachekey.MustNew("orders")
	OrderNotes     = cachekey.MustNew("orders.notes")
	Refunds        = cachekey.MustNew("orders.refunds")
	Customers      = cachekey.MustNew("customers")
	Coupons        = cachekey.MustNew("coupons")
	Settings       = cachekey.MustNew("settings")
	Reports        = cachekey.MustNew("reports")
	Webhooks       = cachekey.MustNew("webhooks")
	System         = cachekey.MustNew("system")
	Posts          = cachekey.MustNew("posts")
	Pages          = cachekey.MustNew("pages")
	Comments       = cachekey.MustNew("comments")
	Media          = cachekey.MustNew("media")
	Yoast          = cachekey.MustNew("seo.yoast")
	RankMath       = cachekey.MustNew("seo.rankmath")
	Redirects      = cachekey.MustNew("seo.redirects")

	eventTargets = map[string]cachekey.Keyspace{
		"product":  Products,
		"order":    Orders,
		"customer": Customers,
		"coupon":   Coupons,
	}
)

// InvalidationForEvent returns the cache entries a platform event makes stale:
// the entity itself when id is known, and every collection view of its resource.
// Order events also drop cached reports.
func InvalidationForEvent(resource string, id int) ([]string, bool) {
	keys, ok := eventTargets[resource]
	if !ok {
		return nil, false
	}

	targets := []string{keys.ListPattern()}

	if id > 0 {
		targets = append(targets, keys.Item(id))
	}

	if resource == "order" {
		targets = append(targets, Reports.Pattern())
	}

	return targets, true
}
