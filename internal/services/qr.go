package services

import (
	"github.com/skip2/go-qrcode"
)

// QRService renders share codes for short links.
type QRService struct{}

func NewQRService() *QRService {
	return &QRService{}
}

// GeneratePNG encodes content as a QR PNG of the given pixel size.
func (s *QRService) GeneratePNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}
