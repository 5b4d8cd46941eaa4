package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PromoCode struct {
	ID                uuid.UUID    `json:"id"`
	Code              string       `json:"code"`
	DiscountType      DiscountType `json:"discountType"`
	DiscountValue     int          `json:"discountValue"`
	MaxDiscount       *int         `json:"maxDiscount,omitempty"`
	MinPurchaseAmount int          `json:"minPurchaseAmount"`
	ExpiryDate        time.Time    `json:"expiryDate"`
	UsageLimit        *int         `json:"usageLimit,omitempty"`
	UsageCount        int          `json:"usageCount"`
	IsActive          bool         `json:"isActive"`
	CreatedAt         time.Time    `json:"createdAt"`
}

// NormalizeCode is the canonical form codes are stored and looked up in.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (p *PromoCode) Expired(now time.Time) bool {
	return now.After(p.ExpiryDate)
}

func (p *PromoCode) Exhausted() bool {
	return p.UsageLimit != nil && p.UsageCount >= *p.UsageLimit
}

// DiscountFor computes the discount granted on totalAmount, rounded to the
// nearest unit. Flat discounts are not capped by the amount.
func (p *PromoCode) DiscountFor(totalAmount int) int {
	var raw float64

	switch p.DiscountType {
	case DiscountPercentage:
		raw = float64(totalAmount) * float64(p.DiscountValue) / 100
		if p.MaxDiscount != nil && raw > float64(*p.MaxDiscount) {
			raw = float64(*p.MaxDiscount)
		}
	case DiscountFlat:
		raw = float64(p.DiscountValue)
	}

	return int(math.Round(raw))
}

// Normalize uppercases the code and drops zero caps and limits, which mean
// "not set".
func (p *PromoCode) Normalize() {
	p.Code = NormalizeCode(p.Code)
	if p.MaxDiscount != nil && *p.MaxDiscount == 0 {
		p.MaxDiscount = nil
	}
	if p.UsageLimit != nil && *p.UsageLimit == 0 {
		p.UsageLimit = nil
	}
}

func (p *PromoCode) Validate() error {
	if p.Code == "" {
		return invalid("code", "is required")
	}

	if !p.DiscountType.Valid() {
		return invalid("discountType", "must be %q or %q", DiscountPercentage, DiscountFlat)
	}

	if p.DiscountValue <= 0 {
		return invalid("discountValue", "must be positive")
	}

	if p.DiscountType == DiscountPercentage && p.DiscountValue > 100 {
		return invalid("discountValue", "percentage must not exceed 100")
	}

	if p.MaxDiscount != nil && *p.MaxDiscount < 0 {
		return invalid("maxDiscount", "must not be negative")
	}

	if p.MinPurchaseAmount < 0 {
		return invalid("minPurchaseAmount", "must not be negative")
	}

	if p.ExpiryDate.IsZero() {
		return invalid("expiryDate", "is required")
	}

	if p.UsageLimit != nil && *p.UsageLimit < 0 {
		return invalid("usageLimit", "must not be negative")
	}

	if p.UsageLimit != nil && p.UsageCount > *p.UsageLimit {
		return invalid("usageLimit", "is below current usage count %d", p.UsageCount)
	}

	return nil
}
