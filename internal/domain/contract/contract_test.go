package contract

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft(t *testing.T) *Contract {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	c, err := NewContract(uuid.New(), "CTR-2026-001", "Managed SOC", start, end, decimal.NewFromInt(120000))
	require.NoError(t, err)
	return c
}

func TestNewContract(t *testing.T) {
	t.Run("valid contract starts as draft", func(t *testing.T) {
		c := validDraft(t)

		assert.Equal(t, StatusDraft, c.Status)
		assert.Equal(t, "CTR-2026-001", c.ContractNumber)
		assert.False(t, c.AutoRenew)
		assert.Len(t, c.GetDomainEvents(), 1)
	})

	t.Run("nil client", func(t *testing.T) {
		start := time.Now()
		_, err := NewContract(uuid.Nil, "CTR-1", "Name", start, start.AddDate(1, 0, 0), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("end date must follow start date", func(t *testing.T) {
		start := time.Now()
		_, err := NewContract(uuid.New(), "CTR-1", "Name", start, start, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("negative value", func(t *testing.T) {
		start := time.Now()
		_, err := NewContract(uuid.New(), "CTR-1", "Name", start, start.AddDate(1, 0, 0), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})

	t.Run("blank contract number", func(t *testing.T) {
		start := time.Now()
		_, err := NewContract(uuid.New(), " ", "Name", start, start.AddDate(1, 0, 0), decimal.Zero)
		assert.Error(t, err)
	})
}

func TestContract_UpdateTerms(t *testing.T) {
	t.Run("draft is editable", func(t *testing.T) {
		c := validDraft(t)
		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(2, 0, 0)

		err := c.UpdateTerms("Managed SOC Plus", start, end, decimal.NewFromInt(240000), true)

		require.NoError(t, err)
		assert.Equal(t, "Managed SOC Plus", c.Name)
		assert.True(t, c.AutoRenew)
		assert.True(t, c.Value.Equal(decimal.NewFromInt(240000)))
	})

	t.Run("active contract is frozen", func(t *testing.T) {
		c := validDraft(t)
		require.NoError(t, c.Activate())

		err := c.UpdateTerms("New Name", c.StartDate, c.EndDate, c.Value, false)
		assert.Error(t, err)
	})
}

func TestContract_Lifecycle(t *testing.T) {
	t.Run("draft activates", func(t *testing.T) {
		c := validDraft(t)

		require.NoError(t, c.Activate())
		assert.Equal(t, StatusActive, c.Status)
	})

	t.Run("draft cancels", func(t *testing.T) {
		c := validDraft(t)

		require.NoError(t, c.Cancel())
		assert.Equal(t, StatusCancelled, c.Status)
		assert.True(t, c.Status.IsTerminal())
	})

	t.Run("active cannot cancel", func(t *testing.T) {
		c := validDraft(t)
		require.NoError(t, c.Activate())

		assert.Error(t, c.Cancel())
	})

	t.Run("terminate records date and reason", func(t *testing.T) {
		c := validDraft(t)
		require.NoError(t, c.Activate())
		when := c.StartDate.AddDate(0, 6, 0)

		require.NoError(t, c.Terminate(when, "Client insolvency"))
		assert.Equal(t, StatusTerminated, c.Status)
		require.NotNil(t, c.TerminationDate)
		assert.True(t, c.TerminationDate.Equal(when))
		assert.Equal(t, "Client insolvency", c.TerminationReason)
	})

	t.Run("terminate requires a reason", func(t *testing.T) {
		c := validDraft(t)
		require.NoError(t, c.Activate())

		assert.Error(t, c.Terminate(c.StartDate.AddDate(0, 1, 0), "  "))
	})

	t.Run("termination date cannot precede start", func(t *testing.T) {
		c := validDraft(t)
		require.NoError(t, c.Activate())

		assert.Error(t, c.Terminate(c.StartDate.AddDate(0, 0, -1), "reason"))
	})

	t.Run("terminal states reject transitions", func(t *testing.T) {
		c := validDraft(t)
		require.NoError(t, c.Cancel())

		assert.Error(t, c.Activate())
		assert.Error(t, c.Terminate(time.Now(), "reason"))
	})
}

func TestContract_MarkExpired(t *testing.T) {
	t.Run("past end date expires", func(t *testing.T) {
		c := validDraft(t)
		require.NoError(t, c.Activate())

		require.NoError(t, c.MarkExpired(c.EndDate.AddDate(0, 0, 1)))
		assert.Equal(t, StatusExpired, c.Status)
	})

	t.Run("future end date does not expire", func(t *testing.T) {
		c := validDraft(t)
		require.NoError(t, c.Activate())

		assert.Error(t, c.MarkExpired(c.EndDate.AddDate(0, 0, -1)))
	})

	t.Run("draft cannot expire", func(t *testing.T) {
		c := validDraft(t)
		assert.Error(t, c.MarkExpired(c.EndDate.AddDate(0, 0, 1)))
	})
}

func TestContract_ExpiresWithin(t *testing.T) {
	c := validDraft(t)
	require.NoError(t, c.Activate())
	now := c.EndDate.AddDate(0, 0, -20)

	assert.True(t, c.ExpiresWithin(now, 30))
	assert.False(t, c.ExpiresWithin(now, 10))

	require.NoError(t, c.MarkExpired(c.EndDate))
	assert.False(t, c.ExpiresWithin(now, 365))
}
