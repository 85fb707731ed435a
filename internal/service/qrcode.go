package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes the order tracking link as a QR image.
type DefaultQRGenerator struct {
	BaseURL string
}

var _ QRGenerator = DefaultQRGenerator{}

func (g DefaultQRGenerator) Generate(orderID int) ([]byte, error) {
	link := fmt.Sprintf("%s/orders/%d", g.BaseURL, orderID)
	return qrcode.Encode(link, qrcode.Medium, 256)
}
