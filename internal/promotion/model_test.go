package promotion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCampaignValidation(t *testing.T) {
	now := time.Now()

	_, err := NewCampaign("weekend sale", "flash_sale", intPtr(100), nil, floatPtr(0.1), nil, now)
	assert.ErrorIs(t, err, ErrInvalidType)

	// Discount rates above 1 would produce negative totals.
	_, err = NewCampaign("too generous", TypeThresholdDiscount, intPtr(100), nil, floatPtr(1.5), nil, now)
	assert.ErrorIs(t, err, ErrInvalidDiscountRate)

	_, err = NewCampaign("free", TypeThresholdDiscount, intPtr(100), nil, floatPtr(0), nil, now)
	assert.ErrorIs(t, err, ErrInvalidDiscountRate)

	_, err = NewCampaign("no threshold", TypeBulkDiscount, nil, nil, floatPtr(0.1), nil, now)
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = NewCampaign("no gift", TypeThresholdGift, intPtr(1000), nil, nil, nil, now)
	assert.ErrorIs(t, err, ErrInvalidGift)

	campaign, err := NewCampaign("snack gift", TypeThresholdGift, intPtr(1000), nil, nil, strPtr("zero_snack"), now)
	require.NoError(t, err)
	assert.Equal(t, TypeThresholdGift, campaign.PromotionType)
	assert.Equal(t, 1000, *campaign.CashThreshold)
}

func TestDayOfWeek(t *testing.T) {
	monday := time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DayOfWeek(monday))

	sunday := time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 6, DayOfWeek(sunday))

	saturday := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, DayOfWeek(saturday))
}
