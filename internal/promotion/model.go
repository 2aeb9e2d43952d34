package promotion

import (
	"time"
)

// The three campaign mechanics the shop runs.
const (
	TypeThresholdGift     = "threshold_gift"
	TypeThresholdDiscount = "threshold_discount"
	TypeBulkDiscount      = "bulk_discount"
)

func ValidType(promotionType string) bool {
	switch promotionType {
	case TypeThresholdGift, TypeThresholdDiscount, TypeBulkDiscount:
		return true
	}
	return false
}

// Campaign is one tier of a published promotion rule set. Threshold types
// carry a cash threshold, bulk carries a quantity threshold; discount types
// carry a rate in (0, 1], the gift type carries a gift label.
type Campaign struct {
	PromotionID       int       `db:"promotion_id"`
	PromotionName     string    `db:"promotion_name"`
	PromotionType     string    `db:"promotion_type"`
	CashThreshold     *int      `db:"cash_threshold"`
	QuantityThreshold *int      `db:"quantity_threshold"`
	DiscountRate      *float64  `db:"discount_rate"`
	Gift              *string   `db:"gift"`
	PublishedAt       time.Time `db:"published_at"`
}

func NewCampaign(name, promotionType string, cashThreshold, quantityThreshold *int, discountRate *float64, gift *string, publishedAt time.Time) (*Campaign, error) {
	if !ValidType(promotionType) {
		return nil, ErrInvalidType
	}

	switch promotionType {
	case TypeThresholdGift:
		if cashThreshold == nil || *cashThreshold <= 0 {
			return nil, ErrInvalidThreshold
		}
		if gift == nil || *gift == "" {
			return nil, ErrInvalidGift
		}
	case TypeThresholdDiscount:
		if cashThreshold == nil || *cashThreshold <= 0 {
			return nil, ErrInvalidThreshold
		}
		if discountRate == nil || *discountRate <= 0 || *discountRate > 1 {
			return nil, ErrInvalidDiscountRate
		}
	case TypeBulkDiscount:
		if quantityThreshold == nil || *quantityThreshold <= 0 {
			return nil, ErrInvalidThreshold
		}
		if discountRate == nil || *discountRate <= 0 || *discountRate > 1 {
			return nil, ErrInvalidDiscountRate
		}
	}

	return &Campaign{
		PromotionName:     name,
		PromotionType:     promotionType,
		CashThreshold:     cashThreshold,
		QuantityThreshold: quantityThreshold,
		DiscountRate:      discountRate,
		Gift:              gift,
		PublishedAt:       publishedAt,
	}, nil
}

// CalendarEntry maps a day of week to the promotion type active on it.
// Day of week runs Monday=0 through Sunday=6. Entries are versioned by
// publish timestamp, latest wins.
type CalendarEntry struct {
	DayOfWeek     int       `db:"day_of_week"`
	PromotionType string    `db:"promotion_type"`
	PublishedAt   time.Time `db:"published_at"`
}

// DayOfWeek converts a calendar day to the Monday=0..Sunday=6 index the
// calendar table is keyed by.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
