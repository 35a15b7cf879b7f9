package models

import (
	"time"
)

type Click struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LinkID     uint      `gorm:"not null;index" json:"link_id"`
	Timestamp  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
	IPAddress  string    `gorm:"size:45" json:"ip_address,omitempty"`
	Country    string    `gorm:"size:100;default:'Unknown'" json:"country"`
	Region     string    `gorm:"size:100" json:"region"`
	Browser    string    `gorm:"size:50" json:"browser"` // Parsed Browser Name
	OS         string    `gorm:"size:100" json:"os"`
	DeviceType string    `gorm:"size:50" json:"device_type"`
	UserAgent  string    `gorm:"size:255" json:"user_agent"` // Raw User-Agent, kept until enrichment
	Referrer   string    `gorm:"size:255;default:'Direct'" json:"referrer"`
}
