package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"linkgate/internal/botdetect"
	"linkgate/internal/config"
	"linkgate/internal/metrics"
	"linkgate/internal/services"
	"linkgate/pkg/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	nonceContextKey    = "csp_nonce"
	visitorCookie      = "lg_visitor"
	identifiedCookie   = "lg_identified"
	cookieMaxAge       = 365 * 24 * 3600
	defaultLandingPath = "/app/dashboard"
	signinPath         = "/signin"
)

// Fixed development/testing paths the gate leaves completely alone.
var devBypassPaths = map[string]bool{
	"/dev/preview": true,
	"/dev/smoke":   true,
}

// Debug routes that must not exist in production.
var prodBlockedPaths = map[string]bool{
	"/debug/state":   true,
	"/debug/session": true,
}

// Prefixes that require an authenticated session.
var protectedPrefixes = []string{"/app", "/dashboard", "/account", "/billing"}

// Gate is the single request-interception layer. It runs before every route
// handler and composes, in order: CSP nonce, Meta-crawler blocking on the
// sensitive API prefix, dev-path bypass, production debug blocking, geo
// consent signaling, the authentication redirect policy, and cookie issuance.
func (h *Handler) Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		if devBypassPaths[path] {
			c.Next()
			return
		}

		nonce, err := utils.GenerateNonce()
		if err != nil {
			// Without entropy there is no per-request nonce; the CSP below
			// then simply allow-lists nothing inline.
			h.logger.Error("Gate: nonce generation failed", "error", err)
		}
		c.Set(nonceContextKey, nonce)

		if strings.HasPrefix(path, botdetect.SensitiveAPIPrefix) {
			cls := botdetect.Classify(c.Request.UserAgent())
			if botdetect.ShouldBlock(cls, path) {
				// Empty success: indistinguishable from a no-op so the
				// crawler learns nothing about the detection.
				metrics.BlockedBotsTotal.Inc()
				h.logger.Debug("Gate: blocked crawler", "path", path, "reason", cls.Reason)
				h.finishGate(c, nonce, start)
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
		}

		if h.cfg.IsProduction() && prodBlockedPaths[path] {
			h.finishGate(c, nonce, start)
			c.HTML(http.StatusNotFound, "404.html", gin.H{})
			c.Abort()
			return
		}

		country, region := h.geoIPService.GetCountryRegion(c.ClientIP())
		if services.RequiresConsentBanner(country, region) {
			c.Header("X-Show-Cookie-Banner", "1")
		}

		authenticated := h.resolveAuthenticated(c)
		h.issueCookies(c, authenticated)

		if target, ok := gateRedirect(path, c.Query("redirect_url"), authenticated); ok {
			h.finishGate(c, nonce, start)
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		h.finishGate(c, nonce, start)
		c.Next()
	}
}

// finishGate attaches the response headers every gated request carries.
// Called on every exit path so failure responses get the same bundle.
func (h *Handler) finishGate(c *gin.Context, nonce string, start time.Time) {
	path := c.Request.URL.Path
	durMs := float64(time.Since(start).Microseconds()) / 1000.0

	c.Header("Server-Timing", fmt.Sprintf("gate;dur=%.1f", durMs))
	c.Header("Content-Security-Policy", buildCSP(nonce))

	if strings.HasPrefix(path, "/api/") {
		c.Header("X-API-Response-Time", fmt.Sprintf("%.1fms", durMs))
	}

	if strings.HasPrefix(path, "/go/") || strings.HasPrefix(path, "/out/") || strings.HasPrefix(path, "/api/") {
		c.Header("X-Robots-Tag", "noindex, nofollow, nosnippet, noarchive")
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Header("Referrer-Policy", "no-referrer")
	}
}

func buildCSP(nonce string) string {
	return fmt.Sprintf(
		"default-src 'self'; script-src 'self' 'nonce-%s'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'; frame-ancestors 'none'; base-uri 'self'",
		nonce,
	)
}

// resolveAuthenticated reads session state. A failure resolving auth never
// fails the request; it degrades to unauthenticated pass-through.
func (h *Handler) resolveAuthenticated(c *gin.Context) (authenticated bool) {
	if h.cfg.AuthMode == config.AuthModeDisabled {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			h.logger.Warn("Gate: auth resolution failed, passing through unauthenticated", "error", r)
			authenticated = false
		}
	}()

	session := sessions.Default(c)
	return session.Get("user_id") != nil
}

func (h *Handler) issueCookies(c *gin.Context, authenticated bool) {
	secure := h.cfg.IsProduction()
	c.SetSameSite(http.SameSiteLaxMode)

	if _, err := c.Cookie(visitorCookie); err != nil {
		c.SetCookie(visitorCookie, utils.NewVisitorID(), cookieMaxAge, "/", "", secure, true)
	}

	if authenticated {
		if v, _ := c.Cookie(identifiedCookie); v != "1" {
			c.SetCookie(identifiedCookie, "1", cookieMaxAge, "/", "", secure, true)
		}
	}
}

// gateRedirect implements the fixed redirect policy. It returns the target
// and true when the request must be redirected instead of passed through.
func gateRedirect(path, redirectURL string, authenticated bool) (string, bool) {
	if authenticated {
		if isAuthPage(path) {
			if isSafeRelativePath(redirectURL) {
				return rewriteLegacyPath(redirectURL), true
			}
			return defaultLandingPath, true
		}
		if path == "/" {
			return defaultLandingPath, true
		}
		if rewritten := rewriteLegacyPath(path); rewritten != path {
			return rewritten, true
		}
		return "", false
	}

	if path == "/sign-in" || strings.HasPrefix(path, "/sign-in/") {
		return "/signin", true
	}
	if path == "/sign-up" || strings.HasPrefix(path, "/sign-up/") {
		return "/signup", true
	}

	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return signinPath + "?redirect_url=" + url.QueryEscape(rewriteLegacyPath(path)), true
		}
	}

	return "", false
}

func isAuthPage(path string) bool {
	for _, p := range []string{"/signin", "/sign-in", "/signup", "/sign-up"} {
		// Exact page or its SSO-callback variants
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// isSafeRelativePath accepts only path-relative targets: protocol-relative
// "//host" values would make redirect_url an open redirect.
func isSafeRelativePath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//")
}

func rewriteLegacyPath(p string) string {
	if p == "/dashboard" || strings.HasPrefix(p, "/dashboard/") {
		return "/app" + p
	}
	if p == "/settings" || strings.HasPrefix(p, "/settings/") {
		return "/app" + p
	}
	return p
}

// nonce returns the per-request CSP nonce for template rendering.
func (h *Handler) nonce(c *gin.Context) string {
	return c.GetString(nonceContextKey)
}
