package handlers

import (
	"net/http"

	"linkgate/internal/models"

	"github.com/gin-gonic/gin"
)

// ShowInterstitial renders the confirmation page for a sensitive link.
// The page must never carry anything identifying the destination; crawlers
// get exactly the same document a human sees.
func (h *Handler) ShowInterstitial(c *gin.Context) {
	shortID := c.Param("short_id")

	link, ok := h.lookupLink(c, shortID)
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
		return
	}

	if link.Kind != models.LinkKindSensitive {
		// Normal links have no confirmation step
		c.Redirect(http.StatusFound, "/go/"+link.ShortID)
		return
	}

	c.HTML(http.StatusOK, "interstitial.html", gin.H{
		"ShortID": link.ShortID,
		"Nonce":   h.nonce(c),
	})
}
