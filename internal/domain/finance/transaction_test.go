package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPending(t *testing.T) *FinancialTransaction {
	t.Helper()
	tx, err := NewFinancialTransaction(
		TypeRevenue,
		CategoryServiceFee,
		decimal.NewFromInt(4500),
		"EUR",
		time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
		uuid.New(),
	)
	require.NoError(t, err)
	return tx
}

func TestNewFinancialTransaction(t *testing.T) {
	date := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)

	t.Run("valid transaction starts pending", func(t *testing.T) {
		tx := validPending(t)

		assert.Equal(t, StatusPending, tx.Status)
		assert.Equal(t, TypeRevenue, tx.Type)
		assert.Nil(t, tx.ContractID)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewFinancialTransaction("refund", CategoryOther, decimal.NewFromInt(1), "EUR", date, uuid.New())
		assert.Error(t, err)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := NewFinancialTransaction(TypeCost, "travel", decimal.NewFromInt(1), "EUR", date, uuid.New())
		assert.Error(t, err)
	})

	t.Run("amount must be positive", func(t *testing.T) {
		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
			_, err := NewFinancialTransaction(TypeCost, CategoryLicense, amount, "EUR", date, uuid.New())
			assert.Error(t, err, "amount %s", amount)
		}
	})

	t.Run("currency must be a three-letter code", func(t *testing.T) {
		for _, currency := range []string{"", "eur", "EURO", "E1R"} {
			_, err := NewFinancialTransaction(TypeCost, CategoryLicense, decimal.NewFromInt(1), currency, date, uuid.New())
			assert.Error(t, err, "currency %q", currency)
		}
	})

	t.Run("zero date", func(t *testing.T) {
		_, err := NewFinancialTransaction(TypeCost, CategoryLicense, decimal.NewFromInt(1), "EUR", time.Time{}, uuid.New())
		assert.Error(t, err)
	})

	t.Run("nil client", func(t *testing.T) {
		_, err := NewFinancialTransaction(TypeCost, CategoryLicense, decimal.NewFromInt(1), "EUR", date, uuid.Nil)
		assert.Error(t, err)
	})
}

func TestFinancialTransaction_LinkContract(t *testing.T) {
	tx := validPending(t)
	contractID := uuid.New()

	require.NoError(t, tx.LinkContract(contractID))
	require.NotNil(t, tx.ContractID)
	assert.Equal(t, contractID, *tx.ContractID)

	assert.Error(t, tx.LinkContract(uuid.Nil))
}

func TestFinancialTransaction_UpdateAmount(t *testing.T) {
	t.Run("pending amount can change", func(t *testing.T) {
		tx := validPending(t)

		require.NoError(t, tx.UpdateAmount(decimal.NewFromInt(9000)))
		assert.True(t, tx.Amount.Equal(decimal.NewFromInt(9000)))
	})

	t.Run("amount must stay positive", func(t *testing.T) {
		tx := validPending(t)

		assert.Error(t, tx.UpdateAmount(decimal.Zero))
		assert.Error(t, tx.UpdateAmount(decimal.NewFromInt(-50)))
		assert.True(t, tx.Amount.Equal(decimal.NewFromInt(4500)))
	})

	t.Run("settled transaction is frozen", func(t *testing.T) {
		tx := validPending(t)
		require.NoError(t, tx.Complete())

		assert.Error(t, tx.UpdateAmount(decimal.NewFromInt(9000)))
	})
}

func TestFinancialTransaction_Lifecycle(t *testing.T) {
	t.Run("pending completes", func(t *testing.T) {
		tx := validPending(t)

		require.NoError(t, tx.Complete())
		assert.Equal(t, StatusCompleted, tx.Status)
	})

	t.Run("pending cancels", func(t *testing.T) {
		tx := validPending(t)

		require.NoError(t, tx.Cancel())
		assert.Equal(t, StatusCancelled, tx.Status)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		tx := validPending(t)
		require.NoError(t, tx.Complete())

		assert.Error(t, tx.Complete())
		assert.Error(t, tx.Cancel())
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		tx := validPending(t)
		require.NoError(t, tx.Cancel())

		assert.Error(t, tx.Complete())
		assert.Error(t, tx.Cancel())
	})
}

func TestSummary_GrossMargin(t *testing.T) {
	s := Summary{
		Revenue: decimal.NewFromInt(10000),
		Cost:    decimal.NewFromInt(3500),
	}
	assert.True(t, s.GrossMargin().Equal(decimal.NewFromInt(6500)))

	lossMaking := Summary{
		Revenue: decimal.NewFromInt(1000),
		Cost:    decimal.NewFromInt(2500),
	}
	assert.True(t, lossMaking.GrossMargin().Equal(decimal.NewFromInt(-1500)))
}
