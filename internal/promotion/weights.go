package promotion

// CategoryWeight is one entry of a promotion-type-specific probability
// distribution over product categories.
type CategoryWeight struct {
	Category string
	Weight   float64
}

// Each table sums to 1.0 over the eight catalog categories. Gift days skew
// toward snack browsing, discount days toward care products, bulk days
// toward staples bought in volume.
var categoryWeights = map[string][]CategoryWeight{
	TypeThresholdGift: {
		{Category: "pet_snacks", Weight: 0.3},
		{Category: "dental_chews", Weight: 0.3},
		{Category: "pet_supplements", Weight: 0.05},
		{Category: "pet_cleaning", Weight: 0.05},
		{Category: "freeze_dried", Weight: 0.05},
		{Category: "pee_pads", Weight: 0.05},
		{Category: "dog_food", Weight: 0.1},
		{Category: "dog_canned_food", Weight: 0.1},
	},
	TypeThresholdDiscount: {
		{Category: "pet_snacks", Weight: 0.05},
		{Category: "dental_chews", Weight: 0.05},
		{Category: "pet_supplements", Weight: 0.25},
		{Category: "pet_cleaning", Weight: 0.25},
		{Category: "freeze_dried", Weight: 0.25},
		{Category: "pee_pads", Weight: 0.05},
		{Category: "dog_food", Weight: 0.05},
		{Category: "dog_canned_food", Weight: 0.05},
	},
	TypeBulkDiscount: {
		{Category: "pet_snacks", Weight: 0.05},
		{Category: "dental_chews", Weight: 0.05},
		{Category: "pet_supplements", Weight: 0.05},
		{Category: "pet_cleaning", Weight: 0.05},
		{Category: "freeze_dried", Weight: 0.05},
		{Category: "pee_pads", Weight: 0.25},
		{Category: "dog_food", Weight: 0.25},
		{Category: "dog_canned_food", Weight: 0.25},
	},
}

// WeightsFor returns the category weight table for a promotion type.
func WeightsFor(promotionType string) []CategoryWeight {
	return categoryWeights[promotionType]
}
