package content

import (
	"strings"

	"github.com/gzhole/browsershield/internal/trust"
)

// detectPhishing reports a brand keyword that appears in the page's visible
// text while the page is not hosted on an official domain for that brand.
// Loopback URLs are always eligible to trigger, so controlled test harnesses
// can simulate brand-impersonation pages.
// Returns the matched brand keyword, or "".
func detectPhishing(visibleText, url string, cfg *trust.Config) string {
	text := strings.ToLower(visibleText)
	local := trust.IsLocalURL(url)

	for _, brand := range cfg.BrandKeywords {
		if !strings.Contains(text, brand) {
			continue
		}
		if local {
			return brand
		}
		if !onOfficialDomain(brand, url, cfg) {
			return brand
		}
	}
	return ""
}

// onOfficialDomain reports whether the URL matches a trusted domain that
// itself carries the brand name (e.g. brand "google" → google.com). Brands
// with no configured official domain are never considered official anywhere.
func onOfficialDomain(brand, url string, cfg *trust.Config) bool {
	for _, domain := range cfg.TrustedDomains {
		if strings.Contains(domain, brand) && strings.Contains(url, domain) {
			return true
		}
	}
	return false
}
