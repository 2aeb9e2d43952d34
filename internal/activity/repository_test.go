package activity

import (
	"context"
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

func TestInsertDayCommitsBothBatches(t *testing.T) {
	repo, mock := newMockRepository(t)

	actionAt := time.Date(2025, 3, 16, 14, 30, 0, 0, time.UTC)
	behaviors := []*BehaviorEvent{
		{CustomerID: "c-1", ProductID: "p-1", ActionType: ActionView, DeviceType: "mobile", Referrer: "direct", ActionAt: actionAt},
		{CustomerID: "c-1", ProductID: "p-1", ActionType: ActionPurchase, DeviceType: "mobile", Referrer: "direct", ActionAt: actionAt.Add(10 * time.Minute)},
	}

	txn, err := NewTransaction("c-1", "p-1", 2, 150, 0, nil, actionAt.Add(10*time.Minute))
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO customer_behavior").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO transaction").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.InsertDay(context.Background(), behaviors, []*Transaction{txn})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertDayRollsBackOnFailure(t *testing.T) {
	repo, mock := newMockRepository(t)

	behaviors := []*BehaviorEvent{
		{CustomerID: "c-1", ProductID: "p-1", ActionType: ActionView, DeviceType: "mobile", Referrer: "direct", ActionAt: time.Now()},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO customer_behavior").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.InsertDay(context.Background(), behaviors, nil)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertDayEmptyBatchIsNoOp(t *testing.T) {
	repo, mock := newMockRepository(t)

	err := repo.InsertDay(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewTransactionValidation(t *testing.T) {
	now := time.Now()

	_, err := NewTransaction("c-1", "p-1", 0, 100, 0, nil, now)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewTransaction("c-1", "p-1", 2, 0, 0, nil, now)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = NewTransaction("c-1", "p-1", 2, 100, -1, nil, now)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	// A discount swallowing the whole amount would break the positive-total
	// invariant.
	_, err = NewTransaction("c-1", "p-1", 2, 100, 200, nil, now)
	assert.ErrorIs(t, err, ErrInvalidTotal)

	txn, err := NewTransaction("c-1", "p-1", 2, 100, 20, nil, now)
	require.NoError(t, err)
	assert.Equal(t, 200, txn.Amount)
	assert.Equal(t, 180, txn.Total)
}
