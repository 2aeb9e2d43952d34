package activity

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/petmall/opsdatagen/pkg/postgres"
)

const schema = `
	CREATE TABLE IF NOT EXISTS customer_behavior (
		customer_id VARCHAR(36) NOT NULL,
		product_id VARCHAR(36) NOT NULL,
		action_type VARCHAR(20) NOT NULL,
		device_type VARCHAR(20) NOT NULL,
		referrer VARCHAR(20) NOT NULL,
		action_at TIMESTAMP NOT NULL,
		PRIMARY KEY (customer_id, product_id, action_at)
	);

	CREATE TABLE IF NOT EXISTS transaction (
		customer_id VARCHAR(36) NOT NULL,
		product_id VARCHAR(36) NOT NULL,
		quantity INT NOT NULL,
		promotion_price INT NOT NULL,
		amount INT NOT NULL,
		discount INT NOT NULL,
		gift VARCHAR(100),
		total INT NOT NULL,
		transaction_at TIMESTAMP NOT NULL,
		PRIMARY KEY (customer_id, product_id, transaction_at)
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
		return fmt.Errorf("failed to create activity tables: %w", err)
	}
	return nil
}

// InsertDay persists one simulated day's behaviors and transactions in a
// single transaction. Either the whole day lands or none of it does.
func (r *Repository) InsertDay(ctx context.Context, behaviors []*BehaviorEvent, transactions []*Transaction) error {
	if len(behaviors) == 0 && len(transactions) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if len(behaviors) > 0 {
		query := `
			INSERT INTO customer_behavior (customer_id, product_id, action_type, device_type, referrer, action_at)
			VALUES (:customer_id, :product_id, :action_type, :device_type, :referrer, :action_at)
		`
		if _, err := tx.NamedExecContext(ctx, query, behaviors); err != nil {
			return fmt.Errorf("failed to insert behavior events: %w", err)
		}
	}

	if len(transactions) > 0 {
		query := `
			INSERT INTO transaction (customer_id, product_id, quantity, promotion_price, amount, discount, gift, total, transaction_at)
			VALUES (:customer_id, :product_id, :quantity, :promotion_price, :amount, :discount, :gift, :total, :transaction_at)
		`
		if _, err := tx.NamedExecContext(ctx, query, transactions); err != nil {
			return fmt.Errorf("failed to insert transactions: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info("Activity batch inserted",
		zap.Int("behaviors", len(behaviors)),
		zap.Int("transactions", len(transactions)),
	)
	return nil
}
