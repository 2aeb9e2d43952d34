package customer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/petmall/opsdatagen/pkg/postgres"
)

const schema = `
	CREATE TABLE IF NOT EXISTS customer (
		customer_id VARCHAR(36) PRIMARY KEY,
		customer_name VARCHAR(50) NOT NULL,
		gender VARCHAR(10) NOT NULL,
		birth TIMESTAMP NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone_number VARCHAR(50) NOT NULL,
		city VARCHAR(50) NOT NULL,
		registered_at TIMESTAMP NOT NULL
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
		return fmt.Errorf("failed to create customer table: %w", err)
	}
	return nil
}

func (r *Repository) InsertBatch(ctx context.Context, customers []*Customer) error {
	if len(customers) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO customer (customer_id, customer_name, gender, birth, email, phone_number, city, registered_at)
		VALUES (:customer_id, :customer_name, :gender, :birth, :email, :phone_number, :city, :registered_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, customers); err != nil {
		return fmt.Errorf("failed to insert customers: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info("Customer batch inserted", zap.Int("count", len(customers)))
	return nil
}

func (r *Repository) ListAll(ctx context.Context) ([]Customer, error) {
	query := `
		SELECT customer_id, customer_name, gender, birth, email, phone_number, city, registered_at
		FROM customer
	`

	var customers []Customer
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return customers, nil
}

// ListRegisteredBefore returns the pool eligible for a historical day:
// only customers registered strictly before it.
func (r *Repository) ListRegisteredBefore(ctx context.Context, day time.Time) ([]Customer, error) {
	query := `
		SELECT customer_id, customer_name, gender, birth, email, phone_number, city, registered_at
		FROM customer
		WHERE registered_at < $1
	`

	var customers []Customer
	if err := r.db.SelectContext(ctx, &customers, query, day); err != nil {
		return nil, fmt.Errorf("failed to list customers registered before %s: %w", day.Format("2006-01-02"), err)
	}

	return customers, nil
}
