package catalog

import (
	"time"
)

// Categories is the fixed set of product categories the shop is scraped by.
// The same labels key the promotion-dependent category weight tables.
var Categories = []string{
	"pet_snacks",
	"dental_chews",
	"pet_supplements",
	"pet_cleaning",
	"freeze_dried",
	"pee_pads",
	"dog_food",
	"dog_canned_food",
}

// Product is an immutable snapshot of one catalog row at scrape time.
type Product struct {
	ProductID      string    `db:"product_id"`
	ProductName    string    `db:"product_name"`
	BrandName      *string   `db:"brand_name"`
	Category       string    `db:"category"`
	Price          *int      `db:"price"`
	PromotionPrice int       `db:"promotion_price"`
	FetchedAt      time.Time `db:"fetched_at"`
}

func NewProduct(id, name string, brand *string, category string, price *int, promotionPrice int, fetchedAt time.Time) (*Product, error) {
	if name == "" {
		return nil, ErrInvalidProductName
	}
	if !ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	if promotionPrice <= 0 {
		return nil, ErrInvalidPrice
	}

	return &Product{
		ProductID:      id,
		ProductName:    name,
		BrandName:      brand,
		Category:       category,
		Price:          price,
		PromotionPrice: promotionPrice,
		FetchedAt:      fetchedAt,
	}, nil
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
