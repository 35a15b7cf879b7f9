package models

import (
	"time"
)

// LinkKind is decided once at creation time and never changes.
type LinkKind string

const (
	LinkKindNormal    LinkKind = "normal"
	LinkKindSensitive LinkKind = "sensitive"
)

type ShortLink struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ShortID        string     `gorm:"unique;not null;size:20;index" json:"short_id"`
	DestinationURL string     `gorm:"not null;type:text" json:"destination_url"`
	Kind           LinkKind   `gorm:"size:10;not null;default:'normal'" json:"kind"`
	Platform       string     `gorm:"size:50" json:"platform"` // originating link source, e.g. "spotify"
	ClicksCount    int        `gorm:"column:clicks;default:0" json:"clicks_count"`
	CreatedAt      time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`

	Clicks []Click `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE" json:"clicks,omitempty"`
}

func (ShortLink) TableName() string {
	return "short_links"
}

// Expired reports whether the link is past its optional expiry.
// Expired links are indistinguishable from unknown ones to callers.
func (l *ShortLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}
