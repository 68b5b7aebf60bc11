package service

import (
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(invoiceNumber string) ([]byte, error)
}

// DefaultQRGenerator encodes a link to the public invoice page.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(invoiceNumber string) ([]byte, error) {
	return qrcode.Encode(g.Link(invoiceNumber), qrcode.Medium, 256)
}

func (g DefaultQRGenerator) Link(invoiceNumber string) string {
	return strings.TrimRight(g.BaseURL, "/") + "/invoices/" + invoiceNumber
}
