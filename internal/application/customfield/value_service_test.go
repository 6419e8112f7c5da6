package customfield

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mssp/backend/internal/domain/customfield"
	"github.com/mssp/backend/internal/domain/shared"
)

func scopeDefinitions(t *testing.T) (endpointCount, monitoring *customfield.FieldDefinition) {
	t.Helper()

	endpointCount, err := customfield.NewFieldDefinition(customfield.EntityTypeServiceScope, "endpoint_count", "Endpoint Count", customfield.FieldTypeInteger)
	require.NoError(t, err)
	endpointCount.SetRequired(true)
	min := decimal.NewFromInt(1)
	max := decimal.NewFromInt(10000)
	require.NoError(t, endpointCount.SetRules(customfield.ValidationRules{Min: &min, Max: &max}))

	monitoring, err = customfield.NewFieldDefinition(customfield.EntityTypeServiceScope, "24x7_monitoring", "24x7 Monitoring", customfield.FieldTypeBoolean)
	require.NoError(t, err)
	monitoring.SetRequired(true)

	return endpointCount, monitoring
}

func TestValueService_SaveValues(t *testing.T) {
	ctx := context.Background()

	t.Run("validates then upserts encoded rows in one batch", func(t *testing.T) {
		defRepo := new(MockDefinitionRepository)
		valueRepo := new(MockValueRepository)
		svc := NewValueService(defRepo, valueRepo, nil, zap.NewNop())

		endpointCount, monitoring := scopeDefinitions(t)
		entityID := uuid.New()

		defRepo.On("FindByEntityType", ctx, customfield.EntityTypeServiceScope, false).
			Return([]*customfield.FieldDefinition{endpointCount, monitoring}, nil)

		var saved []*customfield.FieldValue
		valueRepo.On("UpsertAll", ctx, mock.AnythingOfType("[]*customfield.FieldValue")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).([]*customfield.FieldValue)
			}).
			Return(nil)

		err := svc.SaveValues(ctx, customfield.EntityTypeServiceScope, entityID, map[string]interface{}{
			"endpoint_count":  "500",
			"24x7_monitoring": "true",
		})

		require.NoError(t, err)
		require.Len(t, saved, 2)

		byDef := make(map[uuid.UUID]string, len(saved))
		for _, row := range saved {
			assert.Equal(t, entityID, row.EntityID)
			byDef[row.DefinitionID] = row.RawValue
		}
		assert.Equal(t, "500", byDef[endpointCount.ID])
		assert.Equal(t, "true", byDef[monitoring.ID])
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		defRepo := new(MockDefinitionRepository)
		valueRepo := new(MockValueRepository)
		svc := NewValueService(defRepo, valueRepo, nil, zap.NewNop())

		endpointCount, monitoring := scopeDefinitions(t)

		defRepo.On("FindByEntityType", ctx, customfield.EntityTypeServiceScope, false).
			Return([]*customfield.FieldDefinition{endpointCount, monitoring}, nil)

		err := svc.SaveValues(ctx, customfield.EntityTypeServiceScope, uuid.New(), map[string]interface{}{
			"endpoint_count": 50000,
		})

		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)
		valueRepo.AssertNotCalled(t, "UpsertAll", mock.Anything, mock.Anything)
	})

	t.Run("unknown entity type is rejected", func(t *testing.T) {
		svc := NewValueService(new(MockDefinitionRepository), new(MockValueRepository), nil, zap.NewNop())

		err := svc.SaveValues(ctx, "widget", uuid.New(), map[string]interface{}{})
		assert.Error(t, err)
	})
}

func TestValueService_GetValues(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip returns the validated form", func(t *testing.T) {
		defRepo := new(MockDefinitionRepository)
		valueRepo := new(MockValueRepository)
		svc := NewValueService(defRepo, valueRepo, nil, zap.NewNop())

		endpointCount, monitoring := scopeDefinitions(t)
		entityID := uuid.New()
		defs := []*customfield.FieldDefinition{endpointCount, monitoring}

		defRepo.On("FindByEntityType", ctx, customfield.EntityTypeServiceScope, false).Return(defs, nil)
		valueRepo.On("FindByEntity", ctx, entityID).Return([]*customfield.FieldValue{
			customfield.NewFieldValue(endpointCount.ID, entityID, "500"),
			customfield.NewFieldValue(monitoring.ID, entityID, "true"),
		}, nil)

		values, err := svc.GetValues(ctx, customfield.EntityTypeServiceScope, entityID)

		require.NoError(t, err)
		assert.Equal(t, int64(500), values["endpoint_count"])
		assert.Equal(t, true, values["24x7_monitoring"])
	})

	t.Run("values of inactive definitions are hidden", func(t *testing.T) {
		defRepo := new(MockDefinitionRepository)
		valueRepo := new(MockValueRepository)
		svc := NewValueService(defRepo, valueRepo, nil, zap.NewNop())

		endpointCount, _ := scopeDefinitions(t)
		entityID := uuid.New()
		orphanDefID := uuid.New()

		defRepo.On("FindByEntityType", ctx, customfield.EntityTypeServiceScope, false).
			Return([]*customfield.FieldDefinition{endpointCount}, nil)
		valueRepo.On("FindByEntity", ctx, entityID).Return([]*customfield.FieldValue{
			customfield.NewFieldValue(endpointCount.ID, entityID, "42"),
			customfield.NewFieldValue(orphanDefID, entityID, "stale"),
		}, nil)

		values, err := svc.GetValues(ctx, customfield.EntityTypeServiceScope, entityID)

		require.NoError(t, err)
		assert.Len(t, values, 1)
		assert.Equal(t, int64(42), values["endpoint_count"])
	})

	t.Run("percentage values come back as floats", func(t *testing.T) {
		defRepo := new(MockDefinitionRepository)
		valueRepo := new(MockValueRepository)
		svc := NewValueService(defRepo, valueRepo, nil, zap.NewNop())

		slaTarget, err := customfield.NewFieldDefinition(customfield.EntityTypeClient, "sla_target", "SLA Target", customfield.FieldTypePercentage)
		require.NoError(t, err)
		entityID := uuid.New()

		defRepo.On("FindByEntityType", ctx, customfield.EntityTypeClient, false).
			Return([]*customfield.FieldDefinition{slaTarget}, nil)
		valueRepo.On("FindByEntity", ctx, entityID).Return([]*customfield.FieldValue{
			customfield.NewFieldValue(slaTarget.ID, entityID, "87.5"),
		}, nil)

		values, err := svc.GetValues(ctx, customfield.EntityTypeClient, entityID)

		require.NoError(t, err)
		assert.Equal(t, 87.5, values["sla_target"])
	})
}

func TestValueService_BatchGetValues(t *testing.T) {
	ctx := context.Background()

	t.Run("pre-populates empty maps for every requested id", func(t *testing.T) {
		defRepo := new(MockDefinitionRepository)
		valueRepo := new(MockValueRepository)
		svc := NewValueService(defRepo, valueRepo, nil, zap.NewNop())

		endpointCount, _ := scopeDefinitions(t)
		withValues := uuid.New()
		withoutValues := uuid.New()
		ids := []uuid.UUID{withValues, withoutValues}

		defRepo.On("FindByEntityType", ctx, customfield.EntityTypeServiceScope, false).
			Return([]*customfield.FieldDefinition{endpointCount}, nil)
		valueRepo.On("FindByEntities", ctx, ids).Return([]*customfield.FieldValue{
			customfield.NewFieldValue(endpointCount.ID, withValues, "250"),
		}, nil)

		result, err := svc.BatchGetValues(ctx, customfield.EntityTypeServiceScope, ids)

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, int64(250), result[withValues]["endpoint_count"])
		require.NotNil(t, result[withoutValues])
		assert.Empty(t, result[withoutValues])
	})

	t.Run("empty id list skips the store entirely", func(t *testing.T) {
		svc := NewValueService(new(MockDefinitionRepository), new(MockValueRepository), nil, zap.NewNop())

		result, err := svc.BatchGetValues(ctx, customfield.EntityTypeServiceScope, nil)
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestValueService_DeleteValues(t *testing.T) {
	ctx := context.Background()
	defRepo := new(MockDefinitionRepository)
	valueRepo := new(MockValueRepository)
	svc := NewValueService(defRepo, valueRepo, nil, zap.NewNop())

	entityID := uuid.New()
	valueRepo.On("DeleteByEntity", ctx, entityID).Return(nil)

	require.NoError(t, svc.DeleteValues(ctx, entityID))
	valueRepo.AssertExpectations(t)
}
