// Package botdetect classifies inbound traffic by User-Agent. It separates
// Meta-owned crawlers, which may be blocked on narrow endpoints, from the
// general crawler population, which must always see real pages so search and
// preview engines never flag the service for cloaking.
package botdetect

import (
	"strings"
)

// SensitiveAPIPrefix is the only path prefix on which a crawler is ever
// blocked, and only for Meta signatures.
const SensitiveAPIPrefix = "/api/link/"

type Classification struct {
	IsBot  bool
	IsMeta bool
	Reason string
}

// metaSignatures match crawlers operated by Meta. These can fetch the
// verification endpoint without executing the interstitial script, so they
// are the one family the sensitive endpoints refuse.
var metaSignatures = []string{
	"facebookexternalhit",
	"facebookcatalog",
	"facebot",
	"meta-externalagent",
	"meta-externalfetcher",
	"instagram",
	"whatsapp",
}

// knownCrawlers are benign search/preview bots. Never blocked anywhere.
var knownCrawlers = []string{
	"googlebot",
	"adsbot-google",
	"apis-google",
	"bingbot",
	"bingpreview",
	"slurp",
	"duckduckbot",
	"yandexbot",
	"baiduspider",
	"applebot",
	"twitterbot",
	"linkedinbot",
	"pinterestbot",
	"discordbot",
	"telegrambot",
	"slackbot",
}

// scriptSignatures identify scripting/CLI clients for the suspicious-request
// heuristic. A leading "Mozilla/" overrides: browsers embed tool names in
// extensions often enough that the prefix wins.
var scriptSignatures = []string{
	"curl",
	"wget",
	"python-requests",
	"python-urllib",
	"go-http-client",
	"java/",
	"libwww-perl",
	"scrapy",
	"httpie",
	"okhttp",
	"node-fetch",
	"axios",
	"aiohttp",
}

// Classify maps a User-Agent to a Classification. Rules run top-down, first
// match wins. An empty User-Agent is not a bot signal by itself.
func Classify(userAgent string) Classification {
	if userAgent == "" {
		return Classification{Reason: "empty user agent"}
	}

	ua := strings.ToLower(userAgent)

	for _, sig := range metaSignatures {
		if strings.Contains(ua, sig) {
			return Classification{IsBot: true, IsMeta: true, Reason: "meta crawler: " + sig}
		}
	}

	for _, sig := range knownCrawlers {
		if strings.Contains(ua, sig) {
			return Classification{IsBot: true, Reason: "known crawler: " + sig}
		}
	}

	return Classification{Reason: "no crawler signature"}
}

// ShouldBlock reports whether a classified request must be refused. Only
// Meta crawlers on the sensitive API prefix are ever blocked.
func ShouldBlock(cls Classification, path string) bool {
	return cls.IsMeta && strings.HasPrefix(path, SensitiveAPIPrefix)
}

// IsSuspicious flags empty user agents and scripting-tool clients. It is an
// independent heuristic and never feeds the block decision.
func IsSuspicious(userAgent string) bool {
	if userAgent == "" {
		return true
	}
	if strings.HasPrefix(userAgent, "Mozilla/") {
		return false
	}

	ua := strings.ToLower(userAgent)
	for _, sig := range scriptSignatures {
		if strings.Contains(ua, sig) {
			return true
		}
	}
	return false
}
