package hardware

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAsset(t *testing.T) *HardwareAsset {
	t.Helper()
	a, err := NewHardwareAsset("FW-0042", TypeFirewall, "Fortinet", "FortiGate 60F")
	require.NoError(t, err)
	return a
}

func TestNewHardwareAsset(t *testing.T) {
	t.Run("valid asset starts available", func(t *testing.T) {
		a := newAsset(t)

		assert.Equal(t, "FW-0042", a.AssetTag)
		assert.Equal(t, TypeFirewall, a.Type)
		assert.Equal(t, StatusAvailable, a.Status)
	})

	t.Run("blank asset tag", func(t *testing.T) {
		_, err := NewHardwareAsset(" ", TypeServer, "", "")
		assert.Error(t, err)
	})

	t.Run("unknown asset type", func(t *testing.T) {
		_, err := NewHardwareAsset("SRV-1", "toaster", "", "")
		assert.Error(t, err)
	})
}

func TestHardwareAsset_SetPurchaseInfo(t *testing.T) {
	a := newAsset(t)
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, a.SetPurchaseInfo(&date, decimal.NewFromInt(1200)))
	assert.Equal(t, &date, a.PurchaseDate)

	assert.Error(t, a.SetPurchaseInfo(&date, decimal.NewFromInt(-1)))
}

func TestHardwareAsset_AssignmentCycle(t *testing.T) {
	a := newAsset(t)

	require.NoError(t, a.MarkAssigned())
	assert.Equal(t, StatusAssigned, a.Status)

	// double assignment is rejected
	assert.Error(t, a.MarkAssigned())

	require.NoError(t, a.MarkReturned())
	assert.Equal(t, StatusAvailable, a.Status)

	assert.Error(t, a.MarkReturned())
}

func TestHardwareAsset_Maintenance(t *testing.T) {
	a := newAsset(t)

	require.NoError(t, a.StartMaintenance())
	assert.Equal(t, StatusMaintenance, a.Status)

	// assets under maintenance cannot be assigned
	assert.Error(t, a.MarkAssigned())

	require.NoError(t, a.FinishMaintenance())
	assert.Equal(t, StatusAvailable, a.Status)

	assert.Error(t, a.FinishMaintenance())
}

func TestHardwareAsset_Retire(t *testing.T) {
	t.Run("available asset retires", func(t *testing.T) {
		a := newAsset(t)

		require.NoError(t, a.Retire())
		assert.Equal(t, StatusRetired, a.Status)
	})

	t.Run("assigned asset must be returned first", func(t *testing.T) {
		a := newAsset(t)
		require.NoError(t, a.MarkAssigned())

		assert.Error(t, a.Retire())
	})

	t.Run("retirement is terminal", func(t *testing.T) {
		a := newAsset(t)
		require.NoError(t, a.Retire())

		assert.Error(t, a.Retire())
		assert.Error(t, a.MarkAssigned())
		assert.Error(t, a.StartMaintenance())
	})
}

func TestClientHardwareAssignment(t *testing.T) {
	assetID := uuid.New()
	clientID := uuid.New()

	t.Run("opens active", func(t *testing.T) {
		assignedAt := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
		asg, err := NewClientHardwareAssignment(assetID, clientID, nil, "HQ rack 3", assignedAt)

		require.NoError(t, err)
		assert.Equal(t, AssignmentActive, asg.Status)
		assert.Equal(t, assignedAt, asg.AssignedAt)
		assert.Nil(t, asg.ReturnedAt)
	})

	t.Run("zero assigned time defaults to now", func(t *testing.T) {
		asg, err := NewClientHardwareAssignment(assetID, clientID, nil, "", time.Time{})

		require.NoError(t, err)
		assert.False(t, asg.AssignedAt.IsZero())
	})

	t.Run("requires asset and client", func(t *testing.T) {
		_, err := NewClientHardwareAssignment(uuid.Nil, clientID, nil, "", time.Now())
		assert.Error(t, err)

		_, err = NewClientHardwareAssignment(assetID, uuid.Nil, nil, "", time.Now())
		assert.Error(t, err)
	})

	t.Run("close records return", func(t *testing.T) {
		assignedAt := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
		asg, err := NewClientHardwareAssignment(assetID, clientID, nil, "", assignedAt)
		require.NoError(t, err)

		returnedAt := assignedAt.AddDate(0, 3, 0)
		require.NoError(t, asg.Close(returnedAt))
		assert.Equal(t, AssignmentReturned, asg.Status)
		require.NotNil(t, asg.ReturnedAt)
		assert.True(t, asg.ReturnedAt.Equal(returnedAt))

		// already closed
		assert.Error(t, asg.Close(returnedAt))
	})

	t.Run("return cannot precede assignment", func(t *testing.T) {
		assignedAt := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
		asg, err := NewClientHardwareAssignment(assetID, clientID, nil, "", assignedAt)
		require.NoError(t, err)

		assert.Error(t, asg.Close(assignedAt.AddDate(0, 0, -1)))
	})
}
