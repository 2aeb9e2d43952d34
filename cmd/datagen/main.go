package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/petmall/opsdatagen/internal/activity"
	"github.com/petmall/opsdatagen/internal/catalog"
	"github.com/petmall/opsdatagen/internal/config"
	"github.com/petmall/opsdatagen/internal/customer"
	"github.com/petmall/opsdatagen/internal/generate"
	"github.com/petmall/opsdatagen/internal/promotion"
	"github.com/petmall/opsdatagen/pkg/logger"
	"github.com/petmall/opsdatagen/pkg/postgres"
)

const version = "0.3.0"

const usage = `Usage: datagen [flags] <command>

Commands:
  init      seed the initial customer base
  weekly    scrape and insert the product catalog
  daily     register new customers and run one day of funnel simulation
  backfill  replay historical days (-start and -end required)
`

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	startFlag := flag.String("start", "", "backfill start date (YYYY-MM-DD)")
	endFlag := flag.String("end", "", "backfill end date (YYYY-MM-DD)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("datagen %s\n", version)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Error loading config: %v", err))
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		panic(fmt.Sprintf("Error initializing logger: %v", err))
	}
	defer log.Sync()

	log = logger.WithComponent(log, "datagen")

	db, err := postgres.New(postgres.Config{
		DSN:             cfg.Store.SourceURL,
		MaxOpenConns:    cfg.Store.MaxOpenConns,
		MaxIdleConns:    cfg.Store.MaxIdleConns,
		ConnMaxLifetime: cfg.Store.ConnMaxLifetime,
	}, log)
	if err != nil {
		log.Fatal("Error connecting to store", zap.Error(err))
	}
	defer db.Close()

	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed))
	faker := gofakeit.New(uint64(seed))

	customerRepo := customer.NewRepository(db, log)
	productRepo := catalog.NewRepository(db, log)
	promotionRepo := promotion.NewRepository(db, log)
	activityRepo := activity.NewRepository(db, log)

	runner := generate.NewRunner(generate.Deps{
		Customers:   customerRepo,
		Products:    productRepo,
		Promotions:  promotionRepo,
		Activities:  activityRepo,
		CustomerGen: customer.NewGenerator(faker),
		Scraper: catalog.NewScraper(catalog.ScraperConfig{
			BaseURL:   cfg.Scraper.BaseURL,
			Pages:     cfg.Scraper.Pages,
			UserAgent: cfg.Scraper.UserAgent,
		}, logger.WithComponent(log, "catalog-scraper")),
		Resolver:  promotion.NewResolver(promotionRepo, log),
		Simulator: activity.NewSimulator(customerRepo, productRepo, rng, logger.WithComponent(log, "funnel-simulator")),
		Logger:    log,
	})

	ctx := context.Background()
	start := time.Now()

	switch command {
	case "init":
		log.Info("Generating the initial customer data")
		err = runner.InitCustomers(ctx)
	case "weekly":
		log.Info("Generating weekly product data")
		err = runner.WeeklyCatalog(ctx)
	case "daily":
		log.Info("Generating daily customer behavior and transaction data")
		err = runner.Daily(ctx)
	case "backfill":
		var from, to time.Time
		from, to, err = parseBackfillRange(*startFlag, *endFlag)
		if err == nil {
			log.Info("Backfilling historical data",
				zap.String("start", from.Format("2006-01-02")),
				zap.String("end", to.Format("2006-01-02")),
			)
			err = runner.Backfill(ctx, from, to)
		}
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("Run failed", zap.String("command", command), zap.Error(err))
	}

	log.Info("Run finished",
		zap.String("command", command),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func parseBackfillRange(startStr, endStr string) (time.Time, time.Time, error) {
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("backfill requires -start and -end")
	}
	from, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid -start: %w", err)
	}
	to, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid -end: %w", err)
	}
	return from, to, nil
}
