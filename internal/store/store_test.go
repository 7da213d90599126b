package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iurnickita/creditorder/internal/model"
	"github.com/iurnickita/creditorder/internal/store/config"
)

func testStore(t *testing.T) Store {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URI")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URI is not set")
	}
	store, err := NewStore(config.Config{DBDsn: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStoreWithoutDSN(t *testing.T) {
	_, err := NewStore(config.Config{})
	require.ErrorIs(t, err, ErrNoDatabase)
}

func TestStoreSubmission(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	// уникальные ключи на каждый запуск
	orderID := time.Now().UnixNano()
	customerID := orderID % 1000000

	submission := model.Submission{
		OrderID:         orderID,
		CustomerID:      customerID,
		CustomerName:    "Mercado Sol",
		Status:          model.OrderStatusApproved,
		OrderTotal:      decimal.RequireFromString("30.00"),
		CreditLimit:     decimal.RequireFromString("1000.00"),
		UsedAmount:      decimal.RequireFromString("230.00"),
		AvailableAmount: decimal.RequireFromString("770.00"),
		SettledAt:       time.Now().UTC().Truncate(time.Second),
	}

	// Запись
	err := store.SubmissionPost(ctx, submission)
	require.NoError(t, err)

	// Повтор
	err = store.SubmissionPost(ctx, submission)
	require.ErrorIs(t, err, ErrAlreadyExists)

	// Чтение по клиенту
	dbSubmissions, err := store.SubmissionGet(ctx, customerID)
	require.NoError(t, err)
	var found bool
	for _, dbSubmission := range dbSubmissions {
		if dbSubmission.OrderID == orderID {
			require.Equal(t, submission.CustomerName, dbSubmission.CustomerName)
			require.Equal(t, submission.Status, dbSubmission.Status)
			require.True(t, submission.OrderTotal.Equal(dbSubmission.OrderTotal))
			require.True(t, submission.AvailableAmount.Equal(dbSubmission.AvailableAmount))
			require.True(t, submission.SettledAt.Equal(dbSubmission.SettledAt.UTC()))
			found = true
			break
		}
	}
	require.True(t, found)

	// Последние записи
	latest, err := store.SubmissionList(ctx, 5)
	require.NoError(t, err)
	require.NotEmpty(t, latest)
	require.LessOrEqual(t, len(latest), 5)

	_, err = store.SubmissionGet(ctx, -1)
	require.ErrorIs(t, err, ErrNoRows)
}
