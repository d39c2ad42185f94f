package entity

import "strings"

type PaymentMode string

const (
	PaymentCOD    PaymentMode = "COD"
	PaymentOnline PaymentMode = "ONLINE"
)

// ParsePaymentMode accepts the modes case-insensitively. An empty string means COD.
func ParsePaymentMode(s string) (PaymentMode, bool) {
	switch PaymentMode(strings.ToUpper(strings.TrimSpace(s))) {
	case "", PaymentCOD:
		return PaymentCOD, true
	case PaymentOnline:
		return PaymentOnline, true
	default:
		return "", false
	}
}
