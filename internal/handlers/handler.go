package handlers

import (
	"encoding/json"
	"log/slog"
	"time"

	"linkgate/internal/config"
	"linkgate/internal/models"
	"linkgate/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// geoResolver is the slice of the GeoIP service the gate consumes; it keeps
// the consent decision testable without a MaxMind database on disk.
type geoResolver interface {
	GetCountryRegion(ipStr string) (country, region string)
}

type Handler struct {
	cfg              config.Config
	logger           *slog.Logger
	db               *gorm.DB
	rdb              *redis.Client
	shortenerService *services.ShortenerService
	statsService     *services.StatsService
	auditService     *services.AuditService
	qrService        *services.QRService
	geoIPService     geoResolver
	verifyLimiter    *services.WindowLimiter
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	rdb *redis.Client,
	shortenerService *services.ShortenerService,
	statsService *services.StatsService,
	auditService *services.AuditService,
	qrService *services.QRService,
	geoIPService geoResolver,
	verifyLimiter *services.WindowLimiter,
) *Handler {
	return &Handler{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		rdb:              rdb,
		shortenerService: shortenerService,
		statsService:     statsService,
		auditService:     auditService,
		qrService:        qrService,
		geoIPService:     geoIPService,
		verifyLimiter:    verifyLimiter,
	}
}

// lookupLink resolves a short ID through the redis cache, falling back to
// the database. Expired links are reported as missing.
func (h *Handler) lookupLink(c *gin.Context, shortID string) (*models.ShortLink, bool) {
	var link models.ShortLink
	ctx := c.Request.Context()

	// 1. Redis Cache Lookup (Full Object)
	cacheHit := false
	if h.rdb != nil {
		val, err := h.rdb.Get(ctx, "link:"+shortID).Result()
		if err == nil {
			if err := json.Unmarshal([]byte(val), &link); err == nil {
				cacheHit = true
			}
		}
	}

	// 2. DB Lookup (if Cache Miss)
	if !cacheHit {
		if err := h.db.Where("short_id = ?", shortID).First(&link).Error; err != nil {
			return nil, false
		}
		// Write to Cache
		if h.rdb != nil {
			data, _ := json.Marshal(link)
			h.rdb.Set(ctx, "link:"+shortID, data, 10*time.Minute)
		}
	}

	if link.Expired(time.Now()) {
		return nil, false
	}

	return &link, true
}
