package handlers

import (
	"log/slog"
	"os"
	"time"

	"linkgate/internal/config"
	"linkgate/internal/models"
	"linkgate/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func setupTestHandler() (*Handler, *gorm.DB) {
	return setupTestHandlerWithConfig(config.Config{
		SessionSecret: "test-secret-12345678901234567890123456789012",
		AuthMode:      config.AuthModeSession,
	})
}

func setupTestHandlerWithConfig(cfg config.Config) (*Handler, *gorm.DB) {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	db.AutoMigrate(&models.ShortLink{}, &models.AuditLog{}, &models.Click{})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	audit := services.NewAuditService(db, logger)
	geoIP := services.NewGeoIPService(cfg, logger)
	stats := services.NewStatsService(db, logger, geoIP)
	shortener := services.NewShortenerService(db, audit, nil)
	qr := services.NewQRService()
	verifyLimiter := services.NewWindowLimiter(3, 60*time.Second, logger)

	// Use a dummy redis client (not connected) with no retries
	rdb := redis.NewClient(&redis.Options{
		Addr:       "localhost:1",
		MaxRetries: -1,
	})

	h := NewHandler(cfg, logger, db, rdb, shortener, stats, audit, qr, geoIP, verifyLimiter)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil, "../../web/templates/*.html", "")
}

func createTestLink(db *gorm.DB, shortID, destination string, kind models.LinkKind) models.ShortLink {
	link := models.ShortLink{
		ShortID:        shortID,
		DestinationURL: destination,
		Kind:           kind,
	}
	db.Create(&link)
	return link
}
