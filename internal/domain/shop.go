package domain

import (
	"regexp"
	"strings"
)

var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-]*\.myshopify\.com$`)

// NormalizeShopDomain turns a bare shop handle into its myshopify domain and strips
// scheme and trailing slashes from full domains.
func NormalizeShopDomain(shop string) string {
	shop = strings.TrimSpace(shop)
	shop = strings.TrimPrefix(shop, "https://")
	shop = strings.TrimPrefix(shop, "http://")
	shop = strings.TrimSuffix(shop, "/")
	if shop == "" {
		return ""
	}
	if !strings.Contains(shop, ".") {
		shop += ".myshopify.com"
	}
	return shop
}

// IsValidShopDomain reports whether shop is a myshopify.com hostname.
// Used before redirecting a browser to a shop supplied in a query string.
func IsValidShopDomain(shop string) bool {
	return shopDomainPattern.MatchString(shop)
}
