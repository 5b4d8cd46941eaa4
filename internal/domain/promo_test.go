package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestDiscountPercentageIsCapped(t *testing.T) {
	p := PromoCode{DiscountType: DiscountPercentage, DiscountValue: 50, MaxDiscount: intPtr(100)}

	assert.Equal(t, 100, p.DiscountFor(1000))
}

func TestDiscountPercentageRounds(t *testing.T) {
	p := PromoCode{DiscountType: DiscountPercentage, DiscountValue: 15}

	assert.Equal(t, 150, p.DiscountFor(999))
	assert.Equal(t, 2, p.DiscountFor(13))
}

func TestDiscountFlat(t *testing.T) {
	p := PromoCode{DiscountType: DiscountFlat, DiscountValue: 150}

	assert.Equal(t, 150, p.DiscountFor(1000))
	assert.Equal(t, 150, p.DiscountFor(100), "flat discounts are not capped by the amount")
}

func TestPromoExpiredAndExhausted(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	p := PromoCode{ExpiryDate: now.Add(-time.Minute), UsageLimit: intPtr(2), UsageCount: 2}

	assert.True(t, p.Expired(now))
	assert.True(t, p.Exhausted())

	p.ExpiryDate = now.Add(time.Hour)
	p.UsageCount = 1
	assert.False(t, p.Expired(now))
	assert.False(t, p.Exhausted())
}

func TestPromoNormalize(t *testing.T) {
	p := PromoCode{Code: " save10 ", MaxDiscount: intPtr(0), UsageLimit: intPtr(0)}

	p.Normalize()

	assert.Equal(t, "SAVE10", p.Code)
	assert.Nil(t, p.MaxDiscount)
	assert.Nil(t, p.UsageLimit)
}

func TestPromoValidate(t *testing.T) {
	valid := func() PromoCode {
		return PromoCode{
			Code:          "SAVE10",
			DiscountType:  DiscountPercentage,
			DiscountValue: 10,
			ExpiryDate:    time.Now().Add(24 * time.Hour),
		}
	}

	p := valid()
	require.NoError(t, p.Validate())

	p = valid()
	p.DiscountValue = 120
	assert.Error(t, p.Validate())

	p = valid()
	p.DiscountType = "bogus"
	assert.Error(t, p.Validate())

	p = valid()
	p.ExpiryDate = time.Time{}
	assert.Error(t, p.Validate())
}

func TestDiscountTypeJSON(t *testing.T) {
	var p PromoCode
	require.NoError(t, json.Unmarshal([]byte(`{"discountType":"flat"}`), &p))
	assert.Equal(t, DiscountFlat, p.DiscountType)

	assert.Error(t, json.Unmarshal([]byte(`{"discountType":"bogo"}`), &p))
}
