package promotion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/petmall/opsdatagen/pkg/postgres"
)

const schema = `
	CREATE TABLE IF NOT EXISTS promotion_date (
		day_of_week INT NOT NULL,
		promotion_type VARCHAR(20) NOT NULL,
		published_at TIMESTAMP NOT NULL,
		PRIMARY KEY (day_of_week, published_at)
	);

	CREATE TABLE IF NOT EXISTS promotion (
		promotion_id SERIAL PRIMARY KEY,
		promotion_name VARCHAR(50) NOT NULL,
		promotion_type VARCHAR(20) NOT NULL,
		cash_threshold INT,
		quantity_threshold INT,
		discount_rate DOUBLE PRECISION,
		gift VARCHAR(20),
		published_at TIMESTAMP NOT NULL
	);
`

type Repository struct {
	db     *postgres.DB
	logger *zap.Logger
}

func NewRepository(db *postgres.DB, logger *zap.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create promotion tables: %w", err)
	}
	return nil
}

// ActiveTypeForDay returns the promotion type of the latest published
// calendar entry for the given day of week.
func (r *Repository) ActiveTypeForDay(ctx context.Context, dayOfWeek int) (string, error) {
	query := `
		SELECT promotion_type
		FROM promotion_date
		WHERE day_of_week = $1
		ORDER BY published_at DESC
		LIMIT 1
	`

	var promotionType string
	err := r.db.GetContext(ctx, &promotionType, query, dayOfWeek)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoCalendarEntry
		}
		return "", fmt.Errorf("failed to look up promotion calendar: %w", err)
	}

	return promotionType, nil
}

// LatestCampaigns returns every tier of the most recently published rule set
// for the given promotion type.
func (r *Repository) LatestCampaigns(ctx context.Context, promotionType string) ([]Campaign, error) {
	query := `
		SELECT promotion_id, promotion_name, promotion_type, cash_threshold, quantity_threshold, discount_rate, gift, published_at
		FROM promotion
		WHERE promotion_type = $1
		  AND published_at = (SELECT MAX(published_at) FROM promotion WHERE promotion_type = $1)
	`

	var campaigns []Campaign
	if err := r.db.SelectContext(ctx, &campaigns, query, promotionType); err != nil {
		return nil, fmt.Errorf("failed to fetch latest campaigns: %w", err)
	}

	return campaigns, nil
}

// InsertCalendar seeds calendar entries. Used by operational seeding and the
// test suite.
func (r *Repository) InsertCalendar(ctx context.Context, entries []*CalendarEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO promotion_date (day_of_week, promotion_type, published_at)
		VALUES (:day_of_week, :promotion_type, :published_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, entries); err != nil {
		return fmt.Errorf("failed to insert calendar entries: %w", err)
	}

	r.logger.Info("Promotion calendar inserted", zap.Int("count", len(entries)))
	return nil
}

// InsertCampaigns seeds campaign tiers. promotion_id is assigned by the store.
func (r *Repository) InsertCampaigns(ctx context.Context, campaigns []*Campaign) error {
	if len(campaigns) == 0 {
		return nil
	}

	query := `
		INSERT INTO promotion (promotion_name, promotion_type, cash_threshold, quantity_threshold, discount_rate, gift, published_at)
		VALUES (:promotion_name, :promotion_type, :cash_threshold, :quantity_threshold, :discount_rate, :gift, :published_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, campaigns); err != nil {
		return fmt.Errorf("failed to insert campaigns: %w", err)
	}

	r.logger.Info("Promotion campaigns inserted", zap.Int("count", len(campaigns)))
	return nil
}
