package services

import (
	"errors"
	"net/url"
	"time"

	"linkgate/internal/models"
	"linkgate/pkg/utils"

	"gorm.io/gorm"
)

// ErrInvalidDestination marks a wrap request whose URL is not an absolute
// http(s) URL. Handlers map it to 400.
var ErrInvalidDestination = errors.New("invalid destination url")

type WrapDTO struct {
	DestinationURL string
	Platform       string
	ExpiryHours    *int
	IPAddress      string // For Audit Log
}

type ShortenerService struct {
	db           *gorm.DB
	auditService *AuditService
	idGenerator  func(int) string
	classify     DestinationClassifier
}

func NewShortenerService(db *gorm.DB, auditService *AuditService, classify DestinationClassifier) *ShortenerService {
	if classify == nil {
		classify = ClassifyDestination
	}
	return &ShortenerService{
		db:           db,
		auditService: auditService,
		idGenerator:  utils.GenerateShortID,
		classify:     classify,
	}
}

func (s *ShortenerService) WrapLink(dto WrapDTO) (*models.ShortLink, error) {
	// 1. Validate Destination
	u, err := url.Parse(dto.DestinationURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidDestination
	}

	// 2. Generate unique short ID
	var shortID string
	for {
		shortID = s.idGenerator(8)
		var existing models.ShortLink
		err := s.db.Where("short_id = ?", shortID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	// 3. Classify Destination (immutable after creation)
	kind := s.classify(dto.DestinationURL)

	var expiresAt *time.Time
	if dto.ExpiryHours != nil && *dto.ExpiryHours > 0 {
		t := time.Now().Add(time.Duration(*dto.ExpiryHours) * time.Hour)
		expiresAt = &t
	}

	newLink := models.ShortLink{
		ShortID:        shortID,
		DestinationURL: dto.DestinationURL,
		Kind:           kind,
		Platform:       dto.Platform,
		CreatedAt:      time.Now(),
		ExpiresAt:      expiresAt,
	}

	if err := s.db.Create(&newLink).Error; err != nil {
		return nil, err
	}

	// Audit Log
	s.auditService.LogAction("CREATE_LINK", newLink.ShortID, map[string]interface{}{
		"destination_url": dto.DestinationURL,
		"kind":            kind,
		"platform":        dto.Platform,
	}, dto.IPAddress)

	return &newLink, nil
}
