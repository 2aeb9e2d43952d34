package promotion

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Outcome is the result of applying the active promotion to one purchase.
// Total always equals Amount - Discount; a gift never reduces the price.
type Outcome struct {
	Discount int
	Gift     *string
	Total    int
}

// MatchTier picks the best tier the purchase qualifies for: tiers are ranked
// by threshold descending and the first one at or below the spend (or
// quantity, for bulk) wins. The second return is false when no tier matches.
func MatchTier(promotionType string, tiers []Campaign, quantity, amount int) (Campaign, bool) {
	sorted := make([]Campaign, len(tiers))
	copy(sorted, tiers)

	switch promotionType {
	case TypeThresholdGift, TypeThresholdDiscount:
		sort.Slice(sorted, func(i, j int) bool {
			return *sorted[i].CashThreshold > *sorted[j].CashThreshold
		})
		for _, tier := range sorted {
			if amount >= *tier.CashThreshold {
				return tier, true
			}
		}
	case TypeBulkDiscount:
		sort.Slice(sorted, func(i, j int) bool {
			return *sorted[i].QuantityThreshold > *sorted[j].QuantityThreshold
		})
		for _, tier := range sorted {
			if quantity >= *tier.QuantityThreshold {
				return tier, true
			}
		}
	}

	return Campaign{}, false
}

// Apply computes the discount, gift and total for a purchase under the
// active promotion. Discounts round half-up.
func Apply(promotionType string, tiers []Campaign, quantity, amount int) Outcome {
	tier, ok := MatchTier(promotionType, tiers, quantity, amount)
	if !ok {
		return Outcome{Discount: 0, Gift: nil, Total: amount}
	}

	switch promotionType {
	case TypeThresholdDiscount, TypeBulkDiscount:
		discount := roundHalfUp(amount, *tier.DiscountRate)
		return Outcome{
			Discount: discount,
			Gift:     nil,
			Total:    amount - discount,
		}
	case TypeThresholdGift:
		return Outcome{Discount: 0, Gift: tier.Gift, Total: amount}
	}

	return Outcome{Discount: 0, Gift: nil, Total: amount}
}

// roundHalfUp computes amount * rate rounded half-up to a whole amount.
// decimal.Round rounds half away from zero, which is half-up for the
// non-negative amounts involved here.
func roundHalfUp(amount int, rate float64) int {
	return int(decimal.NewFromInt(int64(amount)).
		Mul(decimal.NewFromFloat(rate)).
		Round(0).
		IntPart())
}
