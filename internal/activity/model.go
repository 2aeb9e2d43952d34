package activity

import (
	"time"
)

const (
	ActionView      = "view"
	ActionAddToCart = "add_to_cart"
	ActionPurchase  = "purchase"
)

// DeviceTypes and Referrers are the enumerations view events draw from.
// Follow-up events inherit the view's values.
var (
	DeviceTypes = []string{"mobile", "tablet", "desktop", "laptop", "unknown"}

	Referrers = []string{"direct", "search_engine", "social_media", "email", "paid_ads", "referral", "unknown"}
)

// BehaviorEvent is one step of a browsing session's funnel. Events of a
// session share customer, product, device and referrer, and carry strictly
// increasing timestamps.
type BehaviorEvent struct {
	CustomerID string    `db:"customer_id"`
	ProductID  string    `db:"product_id"`
	ActionType string    `db:"action_type"`
	DeviceType string    `db:"device_type"`
	Referrer   string    `db:"referrer"`
	ActionAt   time.Time `db:"action_at"`
}

// Transaction records a completed purchase. Created 1:1 with a purchase
// event and never updated afterwards.
type Transaction struct {
	CustomerID     string    `db:"customer_id"`
	ProductID      string    `db:"product_id"`
	Quantity       int       `db:"quantity"`
	PromotionPrice int       `db:"promotion_price"`
	Amount         int       `db:"amount"`
	Discount       int       `db:"discount"`
	Gift           *string   `db:"gift"`
	Total          int       `db:"total"`
	TransactionAt  time.Time `db:"transaction_at"`
}

// NewTransaction validates the pricing invariants at construction:
// quantity, price, amount and total positive, discount non-negative, and
// total = amount - discount.
func NewTransaction(customerID, productID string, quantity, promotionPrice, discount int, gift *string, transactionAt time.Time) (*Transaction, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if promotionPrice <= 0 {
		return nil, ErrInvalidPrice
	}
	if discount < 0 {
		return nil, ErrInvalidDiscount
	}

	amount := quantity * promotionPrice
	total := amount - discount
	if total <= 0 {
		return nil, ErrInvalidTotal
	}

	return &Transaction{
		CustomerID:     customerID,
		ProductID:      productID,
		Quantity:       quantity,
		PromotionPrice: promotionPrice,
		Amount:         amount,
		Discount:       discount,
		Gift:           gift,
		Total:          total,
		TransactionAt:  transactionAt,
	}, nil
}
