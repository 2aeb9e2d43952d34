package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/petmall/opsdatagen/pkg/postgres"
)

const schema = `
	CREATE TABLE IF NOT EXISTS product (
		product_id VARCHAR(36) PRIMARY KEY,
		product_name VARCHAR(255) NOT NULL,
		brand_name VARCHAR(100),
		category VARCHAR(50) NOT NULL,
		price INT,
		promotion_price INT NOT NULL,
		fetched_at TIMESTAMP NOT NULL
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
		return fmt.Errorf("failed to create product table: %w", err)
	}
	return nil
}

// InsertBatch persists a scraped batch in a single transaction. Either every
// row lands or none do.
func (r *Repository) InsertBatch(ctx context.Context, products []*Product) error {
	if len(products) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO product (product_id, product_name, brand_name, category, price, promotion_price, fetched_at)
		VALUES (:product_id, :product_name, :brand_name, :category, :price, :promotion_price, :fetched_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, products); err != nil {
		return fmt.Errorf("failed to insert products: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info("Product batch inserted", zap.Int("count", len(products)))
	return nil
}

func (r *Repository) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	query := `
		SELECT product_id, product_name, brand_name, category, price, promotion_price, fetched_at
		FROM product
		WHERE category = $1
	`

	var products []Product
	if err := r.db.SelectContext(ctx, &products, query, category); err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}

	return products, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM product`); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
