package generate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/petmall/opsdatagen/internal/activity"
	"github.com/petmall/opsdatagen/internal/catalog"
	"github.com/petmall/opsdatagen/internal/customer"
	"github.com/petmall/opsdatagen/internal/promotion"
)

// Runner wires the generators to the store and drives the init / weekly /
// daily / backfill cadences. Each run generates in memory and persists in a
// single batch; a failed batch fails the run with nothing committed.
type Runner struct {
	customers   *customer.Repository
	products    *catalog.Repository
	promotions  *promotion.Repository
	activities  *activity.Repository
	customerGen *customer.Generator
	scraper     *catalog.Scraper
	resolver    *promotion.Resolver
	simulator   *activity.Simulator
	logger      *zap.Logger
}

type Deps struct {
	Customers   *customer.Repository
	Products    *catalog.Repository
	Promotions  *promotion.Repository
	Activities  *activity.Repository
	CustomerGen *customer.Generator
	Scraper     *catalog.Scraper
	Resolver    *promotion.Resolver
	Simulator   *activity.Simulator
	Logger      *zap.Logger
}

func NewRunner(deps Deps) *Runner {
	return &Runner{
		customers:   deps.Customers,
		products:    deps.Products,
		promotions:  deps.Promotions,
		activities:  deps.Activities,
		customerGen: deps.CustomerGen,
		scraper:     deps.Scraper,
		resolver:    deps.Resolver,
		simulator:   deps.Simulator,
		logger:      deps.Logger,
	}
}

// EnsureSchemas creates every table the generator writes to. Idempotent.
func (r *Runner) EnsureSchemas(ctx context.Context) error {
	for _, ensure := range []func(context.Context) error{
		r.customers.EnsureSchema,
		r.products.EnsureSchema,
		r.promotions.EnsureSchema,
		r.activities.EnsureSchema,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}
	return nil
}

// InitCustomers seeds the initial customer base.
func (r *Runner) InitCustomers(ctx context.Context) error {
	start := time.Now()

	if err := r.EnsureSchemas(ctx); err != nil {
		return err
	}

	customers, err := r.customerGen.GenerateInitial(customer.InitialCount)
	if err != nil {
		return fmt.Errorf("failed to generate initial customers: %w", err)
	}
	if err := r.customers.InsertBatch(ctx, customers); err != nil {
		return err
	}

	r.logger.Info("Finished generating initial customer records",
		zap.Int("count", len(customers)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// WeeklyCatalog scrapes the product catalog and inserts the batch. A scrape
// that yields nothing aborts the run: silent emptiness would mask upstream
// problems.
func (r *Runner) WeeklyCatalog(ctx context.Context) error {
	start := time.Now()

	if err := r.EnsureSchemas(ctx); err != nil {
		return err
	}

	products := r.scraper.Scrape(ctx)
	if len(products) == 0 {
		return catalog.ErrNoProducts
	}
	if err := r.products.InsertBatch(ctx, products); err != nil {
		return err
	}

	r.logger.Info("Finished generating product records",
		zap.Int("count", len(products)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// Daily registers the day's new customers and simulates one day of funnel
// activity under the promotion active on the day the views fall on.
func (r *Runner) Daily(ctx context.Context) error {
	start := time.Now()

	if err := r.EnsureSchemas(ctx); err != nil {
		return err
	}

	newCustomers, err := r.customerGen.GenerateNew(customer.DailyCountMin, customer.DailyCountMax)
	if err != nil {
		return fmt.Errorf("failed to generate new customers: %w", err)
	}
	if err := r.customers.InsertBatch(ctx, newCustomers); err != nil {
		return err
	}

	day := time.Now()
	if err := r.simulateAndPersist(ctx, day, activity.CurrentDay); err != nil {
		return err
	}

	r.logger.Info("Finished daily generation",
		zap.Int("new_customers", len(newCustomers)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// Backfill replays registration and funnel activity for every day in
// [start, end], restricting each day's pool to customers registered before it.
func (r *Runner) Backfill(ctx context.Context, start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("backfill end %s precedes start %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	if err := r.EnsureSchemas(ctx); err != nil {
		return err
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		customers, err := r.customerGen.GenerateForDay(customer.DailyCountMin, customer.DailyCountMax, day)
		if err != nil {
			return fmt.Errorf("failed to generate customers for %s: %w", day.Format("2006-01-02"), err)
		}
		if err := r.customers.InsertBatch(ctx, customers); err != nil {
			return err
		}

		if err := r.simulateAndPersist(ctx, day, activity.HistoricalDay); err != nil {
			return fmt.Errorf("backfill failed on %s: %w", day.Format("2006-01-02"), err)
		}

		r.logger.Info("Backfilled day", zap.String("day", day.Format("2006-01-02")))
	}

	return nil
}

func (r *Runner) simulateAndPersist(ctx context.Context, day time.Time, mode activity.Mode) error {
	// Views land on the day before the run day, so the promotion policy is
	// resolved for that day's weekday.
	viewDay := day.AddDate(0, 0, -1)
	promoCtx, err := r.resolver.Resolve(ctx, promotion.DayOfWeek(viewDay))
	if err != nil {
		return err
	}

	behaviors, transactions, err := r.simulator.SimulateDay(ctx, promoCtx, day, mode)
	if err != nil {
		return err
	}

	return r.activities.InsertDay(ctx, behaviors, transactions)
}
