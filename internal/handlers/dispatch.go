package handlers

import (
	"net/http"
	"time"

	"linkgate/internal/metrics"
	"linkgate/internal/models"

	"github.com/gin-gonic/gin"
)

// DispatchLink resolves /go/:short_id. Normal links redirect straight to
// the destination; sensitive ones take one same-origin hop to the
// interstitial so the total client-visible hop count stays at two.
func (h *Handler) DispatchLink(c *gin.Context) {
	shortID := c.Param("short_id")

	link, ok := h.lookupLink(c, shortID)
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
		return
	}

	// Async Stats
	h.statsService.RecordClickAsync(models.Click{
		LinkID:    link.ID,
		Timestamp: time.Now(),
		IPAddress: c.ClientIP(),
		Referrer:  c.Request.Referer(),
		UserAgent: c.Request.UserAgent(),
	})

	metrics.RedirectsTotal.WithLabelValues(string(link.Kind)).Inc()

	if link.Kind == models.LinkKindSensitive {
		c.Redirect(http.StatusFound, "/out/"+link.ShortID)
		return
	}

	c.Redirect(http.StatusFound, link.DestinationURL)
}
