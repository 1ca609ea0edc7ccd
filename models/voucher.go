package models

import "strings"

// DefaultUsageLimit applies when a voucher is saved without a usage limit
const DefaultUsageLimit = 20

// Voucher is a storefront discount code
type Voucher struct {
	ID            string  `json:"id" bson:"id,omitempty"`
	Code          string  `json:"code" bson:"code"`
	DiscountValue float64 `json:"discountValue" bson:"discountValue"`
	Count         int     `json:"count" bson:"count"`
	UsageLimit    int     `json:"usageLimit" bson:"usageLimit"`
	Valid         bool    `json:"valid" bson:"valid"`
}

func (v *Voucher) Normalize() error {
	v.Code = NormalizeVoucherCode(v.Code)
	return nil
}

// NormalizeVoucherCode trims and upper-cases a code
func NormalizeVoucherCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// VoucherRequest represents the request body for creating/updating vouchers
type VoucherRequest struct {
	Code          string  `json:"code" validate:"required,min=3"`
	DiscountValue float64 `json:"discountValue" validate:"required,gt=0,lte=100"`
	UsageLimit    int     `json:"usageLimit" validate:"min=0"`
}
