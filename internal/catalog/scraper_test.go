package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const searchPageHTML = `
<html><body><ul>
	<li class="goods-item">
		<span class="prd-name">[Acme] Chicken Bites (200g)</span>
		<span class="price-current">$1,299</span>
		<span class="price-origin">$1,499</span>
	</li>
	<li class="goods-item">
		<span class="prd-name">Plain Jerky</span>
		<span class="price-current">$350</span>
	</li>
	<li class="goods-item">
		<span class="prd-name">Broken Listing</span>
		<span class="price-current">call for price</span>
	</li>
</ul></body></html>`

func newTestScraper(baseURL string) *Scraper {
	return NewScraper(ScraperConfig{
		BaseURL:   baseURL,
		Pages:     1,
		UserAgent: "datagen-test",
	}, zap.NewNop())
}

func TestParseProducts(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(searchPageHTML))
	require.NoError(t, err)

	s := newTestScraper("http://example.test/search?page=%d&keyword=%s")
	products := s.parseProducts(doc, "pet_snacks")

	// The listing without a parseable price is dropped.
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, "Chicken Bites", first.ProductName)
	require.NotNil(t, first.BrandName)
	assert.Equal(t, "Acme", *first.BrandName)
	assert.Equal(t, "pet_snacks", first.Category)
	assert.Equal(t, 1299, first.PromotionPrice)
	require.NotNil(t, first.Price)
	assert.Equal(t, 1499, *first.Price)
	assert.NotEmpty(t, first.ProductID)

	second := products[1]
	assert.Equal(t, "Plain Jerky", second.ProductName)
	assert.Nil(t, second.BrandName)
	assert.Equal(t, 350, second.PromotionPrice)
	assert.Nil(t, second.Price)
}

func TestScrapePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "datagen-test", r.Header.Get("User-Agent"))
		w.Write([]byte(searchPageHTML))
	}))
	defer server.Close()

	s := newTestScraper(server.URL + "/search?page=%d&keyword=%s")
	products, err := s.scrapePage(context.Background(), "dog_food", 1)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestScrapePageNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := newTestScraper(server.URL + "/search?page=%d&keyword=%s")
	_, err := s.scrapePage(context.Background(), "dog_food", 1)
	assert.Error(t, err)
}

func TestScrapeDegradesOnFailedPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	s := newTestScraper(server.URL + "/search?page=%d&keyword=%s")
	products := s.Scrape(context.Background())
	assert.Empty(t, products)
}
