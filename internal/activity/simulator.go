package activity

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/petmall/opsdatagen/internal/catalog"
	"github.com/petmall/opsdatagen/internal/customer"
	"github.com/petmall/opsdatagen/internal/promotion"
)

// Stage-advance probability of the funnel: half the views add to cart, half
// the carts purchase.
const funnelAdvanceProbability = 0.5

// Follow-up events land between 5 minutes and 2 hours after the previous one.
const (
	minFollowUpSeconds = 300
	maxFollowUpSeconds = 7200
)

// Mode selects the eligible-customer filter for a simulated day.
type Mode int

const (
	// CurrentDay uses the whole customer base.
	CurrentDay Mode = iota
	// HistoricalDay restricts the pool to customers registered strictly
	// before the simulated day.
	HistoricalDay
)

// CustomerSource is the read-only customer snapshot the simulator draws from.
type CustomerSource interface {
	ListAll(ctx context.Context) ([]customer.Customer, error)
	ListRegisteredBefore(ctx context.Context, day time.Time) ([]customer.Customer, error)
}

// CatalogSource is the read-only product snapshot the simulator draws from.
type CatalogSource interface {
	ListByCategory(ctx context.Context, category string) ([]catalog.Product, error)
}

// Simulator walks synthetic browsing sessions through the
// view -> add_to_cart -> purchase funnel under the day's promotion policy.
type Simulator struct {
	customers CustomerSource
	products  CatalogSource
	rand      *rand.Rand
	logger    *zap.Logger
}

func NewSimulator(customers CustomerSource, products CatalogSource, r *rand.Rand, logger *zap.Logger) *Simulator {
	return &Simulator{
		customers: customers,
		products:  products,
		rand:      r,
		logger:    logger,
	}
}

// SimulateDay generates one day of behavior and transaction records. Views
// are timestamped across the calendar day before the given day. Sessions are
// independent; each may stop after view, after add_to_cart, or complete
// through purchase.
func (s *Simulator) SimulateDay(ctx context.Context, promo *promotion.Context, day time.Time, mode Mode) ([]*BehaviorEvent, []*Transaction, error) {
	pool, err := s.eligibleCustomers(ctx, day, mode)
	if err != nil {
		return nil, nil, err
	}
	if len(pool) == 0 {
		return nil, nil, customer.ErrNoCustomers
	}

	sessions := sampleBoundedCount(s.rand, promo.Behavior)

	// One catalog snapshot per category for the whole day.
	productsByCategory := make(map[string][]catalog.Product)

	var behaviors []*BehaviorEvent
	var transactions []*Transaction

	for i := 0; i < sessions; i++ {
		cust := pool[s.rand.Intn(len(pool))]

		category := weightedCategory(s.rand, promo.Weights)
		products, ok := productsByCategory[category]
		if !ok {
			products, err = s.products.ListByCategory(ctx, category)
			if err != nil {
				return nil, nil, err
			}
			productsByCategory[category] = products
		}
		if len(products) == 0 {
			return nil, nil, fmt.Errorf("%w: category %q", catalog.ErrNoProducts, category)
		}
		product := products[s.rand.Intn(len(products))]

		view := &BehaviorEvent{
			CustomerID: cust.CustomerID,
			ProductID:  product.ProductID,
			ActionType: ActionView,
			DeviceType: DeviceTypes[s.rand.Intn(len(DeviceTypes))],
			Referrer:   Referrers[s.rand.Intn(len(Referrers))],
			ActionAt:   s.timestampOnPreviousDay(day),
		}
		behaviors = append(behaviors, view)

		if !s.advance() {
			continue
		}

		addToCart := s.followUp(view, ActionAddToCart)
		behaviors = append(behaviors, addToCart)

		if !s.advance() {
			continue
		}

		purchase := s.followUp(addToCart, ActionPurchase)
		behaviors = append(behaviors, purchase)

		quantity := sampleBoundedCount(s.rand, promo.Quantity)
		amount := quantity * product.PromotionPrice
		outcome := promotion.Apply(promo.Type, promo.Tiers, quantity, amount)

		txn, err := NewTransaction(
			cust.CustomerID,
			product.ProductID,
			quantity,
			product.PromotionPrice,
			outcome.Discount,
			outcome.Gift,
			purchase.ActionAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("generated transaction is invalid: %w", err)
		}
		transactions = append(transactions, txn)
	}

	s.logger.Info("Simulated day",
		zap.String("day", day.Format("2006-01-02")),
		zap.String("promotion_type", promo.Type),
		zap.Int("sessions", sessions),
		zap.Int("behaviors", len(behaviors)),
		zap.Int("transactions", len(transactions)),
	)

	return behaviors, transactions, nil
}

func (s *Simulator) eligibleCustomers(ctx context.Context, day time.Time, mode Mode) ([]customer.Customer, error) {
	if mode == HistoricalDay {
		return s.customers.ListRegisteredBefore(ctx, day)
	}
	return s.customers.ListAll(ctx)
}

func (s *Simulator) advance() bool {
	return s.rand.Float64() < funnelAdvanceProbability
}

// followUp emits the next funnel stage, inheriting the previous event's
// device and referrer and moving the timestamp 5 minutes to 2 hours forward.
func (s *Simulator) followUp(prev *BehaviorEvent, actionType string) *BehaviorEvent {
	delay := time.Duration(minFollowUpSeconds+s.rand.Intn(maxFollowUpSeconds-minFollowUpSeconds+1)) * time.Second
	return &BehaviorEvent{
		CustomerID: prev.CustomerID,
		ProductID:  prev.ProductID,
		ActionType: actionType,
		DeviceType: prev.DeviceType,
		Referrer:   prev.Referrer,
		ActionAt:   prev.ActionAt.Add(delay),
	}
}

// timestampOnPreviousDay draws a uniform timestamp across the calendar day
// before the simulated day.
func (s *Simulator) timestampOnPreviousDay(day time.Time) time.Time {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).AddDate(0, 0, -1)
	return start.Add(time.Duration(s.rand.Intn(24*60*60)) * time.Second)
}
