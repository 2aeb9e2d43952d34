package promotion

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/petmall/opsdatagen/pkg/postgres"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := &postgres.DB{DB: sqlx.NewDb(mockDB, "sqlmock")}
	return NewRepository(db, zap.NewNop()), mock
}

func TestResolveActivePromotion(t *testing.T) {
	repo, mock := newMockRepository(t)
	resolver := NewResolver(repo, zap.NewNop())

	publishedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT promotion_type")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"promotion_type"}).AddRow(TypeThresholdGift))

	campaignRows := sqlmock.NewRows([]string{
		"promotion_id", "promotion_name", "promotion_type",
		"cash_threshold", "quantity_threshold", "discount_rate", "gift", "published_at",
	}).
		AddRow(1, "gift-a", TypeThresholdGift, 1000, nil, nil, "zero_snack", publishedAt).
		AddRow(2, "gift-b", TypeThresholdGift, 2000, nil, nil, "blanket", publishedAt)

	mock.ExpectQuery("SELECT promotion_id, promotion_name").
		WithArgs(TypeThresholdGift).
		WillReturnRows(campaignRows)

	promoCtx, err := resolver.Resolve(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, TypeThresholdGift, promoCtx.Type)
	require.Len(t, promoCtx.Tiers, 2)
	assert.Equal(t, float64(80), promoCtx.Behavior.Mean)
	assert.Equal(t, 60, promoCtx.Behavior.Min)
	assert.Equal(t, 100, promoCtx.Behavior.Max)
	assert.Equal(t, 1, promoCtx.Quantity.Min)
	assert.Equal(t, 5, promoCtx.Quantity.Max)
	assert.Len(t, promoCtx.Weights, 8)

	// An amount of 1500 qualifies for the lower tier only.
	outcome := Apply(promoCtx.Type, promoCtx.Tiers, 3, 1500)
	assert.Equal(t, 0, outcome.Discount)
	require.NotNil(t, outcome.Gift)
	assert.Equal(t, "zero_snack", *outcome.Gift)
	assert.Equal(t, 1500, outcome.Total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveMissingCalendarEntry(t *testing.T) {
	repo, mock := newMockRepository(t)
	resolver := NewResolver(repo, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT promotion_type")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"promotion_type"}))

	_, err := resolver.Resolve(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNoCalendarEntry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestCampaignsQueriesMaxPublishedBatch(t *testing.T) {
	repo, mock := newMockRepository(t)

	publishedAt := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"promotion_id", "promotion_name", "promotion_type",
		"cash_threshold", "quantity_threshold", "discount_rate", "gift", "published_at",
	}).AddRow(7, "bulk-a", TypeBulkDiscount, nil, 5, 0.1, nil, publishedAt)

	mock.ExpectQuery("AND published_at = \\(SELECT MAX\\(published_at\\)").
		WithArgs(TypeBulkDiscount).
		WillReturnRows(rows)

	campaigns, err := repo.LatestCampaigns(context.Background(), TypeBulkDiscount)
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, 5, *campaigns[0].QuantityThreshold)
	assert.Equal(t, 0.1, *campaigns[0].DiscountRate)

	assert.NoError(t, mock.ExpectationsWereMet())
}
