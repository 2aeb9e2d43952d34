package catalog

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	brandPattern = regexp.MustCompile(`\[(.*?)\]`)
	tagPattern   = regexp.MustCompile(`\[.*?\]|\(.*?\)`)
	pricePattern = regexp.MustCompile(`[$,]`)
)

// Scraper collects product snapshots from the upstream shop's keyword search.
// Failed pages degrade the batch instead of failing the run; the caller
// decides what an empty batch means.
type Scraper struct {
	client    *http.Client
	baseURL   string
	pages     int
	userAgent string
	logger    *zap.Logger
}

type ScraperConfig struct {
	BaseURL   string
	Pages     int
	UserAgent string
}

func NewScraper(cfg ScraperConfig, logger *zap.Logger) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: 30 * time.Second},
		baseURL:   cfg.BaseURL,
		pages:     cfg.Pages,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// Scrape walks every category keyword across the configured page count and
// returns whatever parsed cleanly.
func (s *Scraper) Scrape(ctx context.Context) []*Product {
	var products []*Product

	for _, keyword := range Categories {
		for page := 1; page <= s.pages; page++ {
			batch, err := s.scrapePage(ctx, keyword, page)
			if err != nil {
				s.logger.Warn("Failed to scrape page",
					zap.String("keyword", keyword),
					zap.Int("page", page),
					zap.Error(err),
				)
				continue
			}
			products = append(products, batch...)

			// Politeness delay between page fetches.
			time.Sleep(time.Second)
		}
	}

	s.logger.Info("Scrape finished", zap.Int("products", len(products)))
	return products
}

func (s *Scraper) scrapePage(ctx context.Context, keyword string, page int) ([]*Product, error) {
	url := fmt.Sprintf(s.baseURL, page, keyword)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	return s.parseProducts(doc, keyword), nil
}

func (s *Scraper) parseProducts(doc *goquery.Document, category string) []*Product {
	var products []*Product
	fetchedAt := time.Now()

	doc.Find("li.goods-item").Each(func(_ int, item *goquery.Selection) {
		rawName := strings.TrimSpace(item.Find(".prd-name").Text())

		var brand *string
		if m := brandPattern.FindStringSubmatch(rawName); m != nil {
			brand = &m[1]
		}
		name := strings.TrimSpace(tagPattern.ReplaceAllString(rawName, ""))

		promotionPrice := extractPrice(item.Find(".price-current"))
		price := extractPrice(item.Find(".price-origin"))
		if promotionPrice == nil {
			s.logger.Warn("Skipping product without a promotion price", zap.String("name", name))
			return
		}

		product, err := NewProduct(uuid.NewString(), name, brand, category, price, *promotionPrice, fetchedAt)
		if err != nil {
			s.logger.Warn("Skipping invalid product",
				zap.String("name", name),
				zap.Error(err),
			)
			return
		}
		products = append(products, product)
	})

	return products
}

func extractPrice(sel *goquery.Selection) *int {
	cleaned := strings.TrimSpace(pricePattern.ReplaceAllString(sel.Text(), ""))
	value, err := strconv.Atoi(cleaned)
	if err != nil {
		return nil
	}
	return &value
}
