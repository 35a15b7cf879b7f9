package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"linkgate/internal/metrics"
	"linkgate/internal/services"

	"github.com/gin-gonic/gin"
)

type WrapLinkRequest struct {
	URL         string `json:"url" binding:"required"`
	Platform    string `json:"platform"`
	ExpiryHours *int   `json:"expiry_hours,omitempty"`
}

// WrapLink handles the API request to wrap a destination into a short link
func (h *Handler) WrapLink(c *gin.Context) {
	var req WrapLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.shortenerService.WrapLink(services.WrapDTO{
		DestinationURL: req.URL,
		Platform:       req.Platform,
		ExpiryHours:    req.ExpiryHours,
		IPAddress:      c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidDestination) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid destination url"})
			return
		}
		h.logger.Error("Failed to create short link", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create link"})
		return
	}

	metrics.LinksCreatedTotal.WithLabelValues(string(link.Kind)).Inc()

	c.JSON(http.StatusOK, gin.H{
		"short_id":  link.ShortID,
		"kind":      link.Kind,
		"short_url": shortURL(c, link.ShortID),
	})
}

// shortURL builds the absolute dispatch URL as the client reached us,
// honoring a TLS-terminating proxy's X-Forwarded-Proto.
func shortURL(c *gin.Context, shortID string) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + "/go/" + shortID
}

// LinkQR serves a QR code PNG pointing at the short URL.
func (h *Handler) LinkQR(c *gin.Context) {
	shortID := c.Param("short_id")

	link, ok := h.lookupLink(c, shortID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", "256"))
	if err != nil || size < 64 || size > 1024 {
		size = 256
	}

	png, err := h.qrService.GeneratePNG(shortURL(c, link.ShortID), size)
	if err != nil {
		h.logger.Error("Failed to generate QR code", "short_id", shortID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
