package handlers

import (
	"net/http"

	"linkgate/internal/metrics"
	"linkgate/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the explicit middleware chain and route table. Order
// matters: sessions must precede the gate (it reads auth state), and the
// gate must precede every route handler.
func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter, templatePath string, staticPath string) *gin.Engine {
	r := gin.Default()

	if templatePath != "" {
		r.LoadHTMLGlob(templatePath)
	}
	if staticPath != "" {
		r.Static("/static", staticPath)
	}

	// Middleware
	r.Use(metrics.GinMiddleware())

	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	r.Use(sessions.Sessions("linkgate_session", store))

	r.Use(h.Gate())

	// Behind the gate so limiter rejections still carry the gate's response
	// headers. Gate-produced redirects and blocks never consume limiter budget.
	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}

	// Routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})
	r.GET("/robots.txt", h.RobotsTXT)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Link dispatch flow
	r.GET("/go/:short_id", h.DispatchLink)
	r.GET("/out/:short_id", h.ShowInterstitial)
	r.POST("/api/wrap-link", h.WrapLink)
	r.POST("/api/link/:short_id", h.VerifyLink)
	r.GET("/api/link/:short_id/qr", h.LinkQR)

	return r
}

// RobotsTXT keeps crawlers off the interstitial and API surfaces. Outside
// production the whole host is disallowed.
func (h *Handler) RobotsTXT(c *gin.Context) {
	if h.cfg.IsProduction() {
		c.String(http.StatusOK, "User-agent: *\nDisallow: /out/\nDisallow: /api/\n")
		return
	}
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}
