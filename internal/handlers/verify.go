package handlers

import (
	"net/http"
	"strconv"

	"linkgate/internal/metrics"

	"github.com/gin-gonic/gin"
)

type VerifyRequest struct {
	Verified  bool  `json:"verified"`
	Timestamp int64 `json:"timestamp"`
}

// VerifyLink handles the confirmation callback from the interstitial. The
// round-trip proves a script-executing client clicked through; only its 200
// response ever reveals the destination. Meta crawlers never reach this
// handler, the gate 204s them first.
func (h *Handler) VerifyLink(c *gin.Context) {
	shortID := c.Param("short_id")

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Rate limit per short link, not per client: the endpoint is the
	// abuse surface, and one hot link should not burn every visitor.
	res := h.verifyLimiter.Check(shortID)
	c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
	if !res.Allowed {
		metrics.RateLimitedTotal.Inc()
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please try again later."})
		return
	}

	link, ok := h.lookupLink(c, shortID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	if !req.Verified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "verification not confirmed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"verified":        true,
		"destination_url": link.DestinationURL,
	})
}
