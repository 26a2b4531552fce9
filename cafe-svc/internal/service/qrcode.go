package service

import (
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

type DefaultQRGenerator struct {
	BaseURL string
}

// Generate encodes a share link to the café as a 256px PNG.
func (g DefaultQRGenerator) Generate(cafeID string) ([]byte, error) {
	link := strings.TrimRight(g.BaseURL, "/") + "/cafes/" + url.PathEscape(cafeID)
	return qrcode.Encode(link, qrcode.Medium, 256)
}
