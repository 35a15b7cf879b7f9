package services

import (
	"net/url"
	"strings"

	"linkgate/internal/models"
)

// DestinationClassifier decides at creation time whether a destination needs
// the interstitial confirmation step. The heuristic is an injected
// capability so deployments can swap it without touching the service.
type DestinationClassifier func(destinationURL string) models.LinkKind

// Domains whose links always get the confirmation step.
var sensitiveDomains = []string{
	"onlyfans.com",
	"fansly.com",
	"fanvue.com",
	"patreon.com",
	"gofundme.com",
	"cash.app",
	"paypal.me",
	"venmo.com",
}

// Path/keyword fragments that mark a destination sensitive on any domain.
var sensitiveKeywords = []string{
	"nsfw",
	"adult",
	"casino",
	"gambling",
	"crypto",
	"onlyfans",
}

// ClassifyDestination is the default DestinationClassifier: a domain-suffix
// and keyword table over the parsed URL.
func ClassifyDestination(destinationURL string) models.LinkKind {
	u, err := url.Parse(destinationURL)
	if err != nil {
		return models.LinkKindNormal
	}

	host := strings.ToLower(u.Hostname())
	for _, domain := range sensitiveDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return models.LinkKindSensitive
		}
	}

	lower := strings.ToLower(u.Path + "?" + u.RawQuery)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(lower, kw) {
			return models.LinkKindSensitive
		}
	}

	return models.LinkKindNormal
}
