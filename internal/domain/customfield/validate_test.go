package customfield

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mssp/backend/internal/domain/shared"
)

func mustDefinition(t *testing.T, entityType EntityType, name string, fieldType FieldType) *FieldDefinition {
	t.Helper()
	def, err := NewFieldDefinition(entityType, name, name, fieldType)
	require.NoError(t, err)
	return def
}

func fieldErrorNames(t *testing.T, err error) []string {
	t.Helper()
	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	names := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		names = append(names, fe.Field)
	}
	return names
}

func TestValidateValues_ServiceScopeScenario(t *testing.T) {
	endpointCount := mustDefinition(t, EntityTypeServiceScope, "endpoint_count", FieldTypeInteger)
	endpointCount.SetRequired(true)
	min := decimal.NewFromInt(1)
	max := decimal.NewFromInt(10000)
	require.NoError(t, endpointCount.SetRules(ValidationRules{Min: &min, Max: &max}))

	monitoring := mustDefinition(t, EntityTypeServiceScope, "24x7_monitoring", FieldTypeBoolean)
	monitoring.SetRequired(true)
	require.NoError(t, monitoring.SetDefaultValue(true))

	defs := []*FieldDefinition{endpointCount, monitoring}

	t.Run("string inputs are coerced", func(t *testing.T) {
		clean, err := ValidateValues(defs, map[string]interface{}{
			"endpoint_count":  "500",
			"24x7_monitoring": "true",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(500), clean["endpoint_count"])
		assert.Equal(t, true, clean["24x7_monitoring"])
	})

	t.Run("max bound violation is cited", func(t *testing.T) {
		_, err := ValidateValues(defs, map[string]interface{}{
			"endpoint_count":  50000,
			"24x7_monitoring": true,
		})

		names := fieldErrorNames(t, err)
		assert.Contains(t, names, "endpoint_count")
	})

	t.Run("empty input cites both missing required fields", func(t *testing.T) {
		_, err := ValidateValues(defs, map[string]interface{}{})

		names := fieldErrorNames(t, err)
		assert.ElementsMatch(t, []string{"endpoint_count", "24x7_monitoring"}, names)
	})

	t.Run("defaults never satisfy requiredness", func(t *testing.T) {
		_, err := ValidateValues(defs, map[string]interface{}{"endpoint_count": 100})

		names := fieldErrorNames(t, err)
		assert.Contains(t, names, "24x7_monitoring")
	})
}

func TestValidateValues_Percentage(t *testing.T) {
	def := mustDefinition(t, EntityTypeClient, "sla_target", FieldTypePercentage)
	defs := []*FieldDefinition{def}

	t.Run("105 fails", func(t *testing.T) {
		_, err := ValidateValues(defs, map[string]interface{}{"sla_target": 105})
		assert.Error(t, err)
	})

	t.Run("string 87.5 passes and keeps its value", func(t *testing.T) {
		clean, err := ValidateValues(defs, map[string]interface{}{"sla_target": "87.5"})

		require.NoError(t, err)
		d, ok := clean["sla_target"].(decimal.Decimal)
		require.True(t, ok)
		assert.Equal(t, 87.5, d.InexactFloat64())
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		for _, v := range []interface{}{0, 100, "0", "100"} {
			_, err := ValidateValues(defs, map[string]interface{}{"sla_target": v})
			assert.NoError(t, err, "value %v should pass", v)
		}
		for _, v := range []interface{}{-0.1, 100.1} {
			_, err := ValidateValues(defs, map[string]interface{}{"sla_target": v})
			assert.Error(t, err, "value %v should fail", v)
		}
	})
}

func TestValidateValues_RequiredAndUnknown(t *testing.T) {
	required := mustDefinition(t, EntityTypeClient, "primary_contact", FieldTypeText)
	required.SetRequired(true)
	optional := mustDefinition(t, EntityTypeClient, "website_notes", FieldTypeText)
	defs := []*FieldDefinition{required, optional}

	t.Run("missing required field is named", func(t *testing.T) {
		_, err := ValidateValues(defs, map[string]interface{}{})
		assert.Contains(t, fieldErrorNames(t, err), "primary_contact")
	})

	t.Run("explicit null counts as absent", func(t *testing.T) {
		_, err := ValidateValues(defs, map[string]interface{}{"primary_contact": nil})
		assert.Contains(t, fieldErrorNames(t, err), "primary_contact")
	})

	t.Run("null on optional field is dropped without error", func(t *testing.T) {
		clean, err := ValidateValues(defs, map[string]interface{}{
			"primary_contact": "Ada",
			"website_notes":   nil,
		})
		require.NoError(t, err)
		_, present := clean["website_notes"]
		assert.False(t, present)
	})

	t.Run("unknown key is a named error, not dropped", func(t *testing.T) {
		_, err := ValidateValues(defs, map[string]interface{}{
			"primary_contact": "Ada",
			"legacy_field":    "x",
		})
		assert.Contains(t, fieldErrorNames(t, err), "legacy_field")
	})

	t.Run("all problems are aggregated in one error", func(t *testing.T) {
		_, err := ValidateValues(defs, map[string]interface{}{
			"legacy_field": "x",
			"other_junk":   1,
		})
		names := fieldErrorNames(t, err)
		assert.ElementsMatch(t, []string{"primary_contact", "legacy_field", "other_junk"}, names)
	})
}

func TestValidateValues_Select(t *testing.T) {
	def := mustDefinition(t, EntityTypeClient, "region", FieldTypeSelect)
	require.NoError(t, def.SetSelectOptions([]string{"emea", "apac", "amer"}))
	defs := []*FieldDefinition{def}

	t.Run("member passes unchanged", func(t *testing.T) {
		clean, err := ValidateValues(defs, map[string]interface{}{"region": "apac"})
		require.NoError(t, err)
		assert.Equal(t, "apac", clean["region"])
	})

	t.Run("non-member fails", func(t *testing.T) {
		_, err := ValidateValues(defs, map[string]interface{}{"region": "mars"})
		assert.Error(t, err)
	})
}

func TestValidateValues_Multiselect(t *testing.T) {
	def := mustDefinition(t, EntityTypeServiceScope, "coverage_days", FieldTypeMultiselect)
	require.NoError(t, def.SetSelectOptions([]string{"weekdays", "weekends", "holidays"}))
	defs := []*FieldDefinition{def}

	t.Run("list of members passes", func(t *testing.T) {
		clean, err := ValidateValues(defs, map[string]interface{}{
			"coverage_days": []interface{}{"weekdays", "holidays"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"weekdays", "holidays"}, clean["coverage_days"])
	})

	t.Run("non-member element fails", func(t *testing.T) {
		_, err := ValidateValues(defs, map[string]interface{}{
			"coverage_days": []interface{}{"weekdays", "never"},
		})
		assert.Error(t, err)
	})

	t.Run("scalar input fails", func(t *testing.T) {
		_, err := ValidateValues(defs, map[string]interface{}{"coverage_days": "weekdays"})
		assert.Error(t, err)
	})

	t.Run("duplicate element fails", func(t *testing.T) {
		_, err := ValidateValues(defs, map[string]interface{}{
			"coverage_days": []interface{}{"weekdays", "weekdays"},
		})
		assert.Error(t, err)
	})
}

func TestValidateValues_ScalarTypes(t *testing.T) {
	t.Run("integer rejects fractional input", func(t *testing.T) {
		def := mustDefinition(t, EntityTypeClient, "seat_count", FieldTypeInteger)
		for _, v := range []interface{}{12.5, "12.5"} {
			_, err := ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"seat_count": v})
			assert.Error(t, err, "value %v should fail", v)
		}

		clean, err := ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"seat_count": float64(12)})
		require.NoError(t, err)
		assert.Equal(t, int64(12), clean["seat_count"])
	})

	t.Run("decimal place cap", func(t *testing.T) {
		def := mustDefinition(t, EntityTypeFinancialTransaction, "unit_rate", FieldTypeDecimal)
		places := 2
		require.NoError(t, def.SetRules(ValidationRules{MaxDecimalPlaces: &places}))

		_, err := ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"unit_rate": "10.999"})
		assert.Error(t, err)

		clean, err := ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"unit_rate": "10.99"})
		require.NoError(t, err)
		assert.True(t, clean["unit_rate"].(decimal.Decimal).Equal(decimal.RequireFromString("10.99")))
	})

	t.Run("currency defaults to two decimal places", func(t *testing.T) {
		def := mustDefinition(t, EntityTypeContract, "setup_fee", FieldTypeCurrency)

		_, err := ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"setup_fee": "100.005"})
		assert.Error(t, err)

		_, err = ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"setup_fee": "100.05"})
		assert.NoError(t, err)
	})

	t.Run("boolean string forms", func(t *testing.T) {
		def := mustDefinition(t, EntityTypeClient, "is_strategic", FieldTypeBoolean)
		truthy := []interface{}{true, "true", "TRUE", "1", "yes", "Yes"}
		falsy := []interface{}{false, "false", "0", "no", "NO"}

		for _, v := range truthy {
			clean, err := ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"is_strategic": v})
			require.NoError(t, err, "value %v", v)
			assert.Equal(t, true, clean["is_strategic"])
		}
		for _, v := range falsy {
			clean, err := ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"is_strategic": v})
			require.NoError(t, err, "value %v", v)
			assert.Equal(t, false, clean["is_strategic"])
		}

		_, err := ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"is_strategic": "maybe"})
		assert.Error(t, err)
	})

	t.Run("date bounds", func(t *testing.T) {
		def := mustDefinition(t, EntityTypeContract, "go_live", FieldTypeDate)
		minDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, def.SetRules(ValidationRules{MinDate: &minDate}))

		_, err := ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"go_live": "2023-12-31"})
		assert.Error(t, err)

		clean, err := ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"go_live": "2024-06-15"})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), clean["go_live"])
	})

	t.Run("datetime parses RFC 3339", func(t *testing.T) {
		def := mustDefinition(t, EntityTypeServiceScope, "handover_at", FieldTypeDatetime)

		_, err := ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"handover_at": "2024-06-15T10:30:00Z"})
		assert.NoError(t, err)

		_, err = ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"handover_at": "15/06/2024"})
		assert.Error(t, err)
	})

	t.Run("email format", func(t *testing.T) {
		def := mustDefinition(t, EntityTypeClient, "billing_email", FieldTypeEmail)

		_, err := ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"billing_email": "ops@example.com"})
		assert.NoError(t, err)

		_, err = ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"billing_email": "not-an-email"})
		assert.Error(t, err)
	})

	t.Run("url format", func(t *testing.T) {
		def := mustDefinition(t, EntityTypeClient, "portal_url", FieldTypeURL)

		_, err := ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"portal_url": "https://portal.example.com/login"})
		assert.NoError(t, err)

		for _, v := range []string{"example.com", "ftp://example.com", "https://"} {
			_, err = ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"portal_url": v})
			assert.Error(t, err, "url %q should fail", v)
		}
	})

	t.Run("phone separators are stripped", func(t *testing.T) {
		def := mustDefinition(t, EntityTypeClient, "noc_phone", FieldTypePhone)

		clean, err := ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"noc_phone": "+1 (555) 123-4567"})
		require.NoError(t, err)
		assert.Equal(t, "+15551234567", clean["noc_phone"])

		for _, v := range []string{"0123456", "not a phone", "+"} {
			_, err = ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"noc_phone": v})
			assert.Error(t, err, "phone %q should fail", v)
		}
	})

	t.Run("text length and pattern rules", func(t *testing.T) {
		def := mustDefinition(t, EntityTypeClient, "ticket_prefix", FieldTypeText)
		minLen, maxLen := 2, 5
		require.NoError(t, def.SetRules(ValidationRules{MinLength: &minLen, MaxLength: &maxLen, Pattern: "^[A-Z]+$"}))

		_, err := ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"ticket_prefix": "MSSP"})
		assert.NoError(t, err)

		for _, v := range []interface{}{"M", "TOOLONGX", "mssp", 42} {
			_, err = ValidateValues([]*FieldDefinition{def}, map[string]interface{}{"ticket_prefix": v})
			assert.Error(t, err, "value %v should fail", v)
		}
	})
}

func TestEncodeDecodeValue(t *testing.T) {
	cases := []struct {
		name      string
		fieldType FieldType
		value     interface{}
		encoded   string
	}{
		{"text", FieldTypeText, "hello", "hello"},
		{"integer", FieldTypeInteger, int64(42), "42"},
		{"decimal", FieldTypeDecimal, decimal.RequireFromString("87.5"), "87.5"},
		{"boolean", FieldTypeBoolean, true, "true"},
		{"date", FieldTypeDate, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), "2024-06-15"},
		{"multiselect", FieldTypeMultiselect, []string{"weekdays", "weekends"}, `["weekdays","weekends"]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := EncodeValue(tc.fieldType, tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.encoded, encoded)

			decoded, err := DecodeValue(tc.fieldType, encoded)
			require.NoError(t, err)
			switch want := tc.value.(type) {
			case decimal.Decimal:
				assert.True(t, want.Equal(decoded.(decimal.Decimal)))
			default:
				assert.Equal(t, tc.value, decoded)
			}
		})
	}

	t.Run("mismatched payload type fails to encode", func(t *testing.T) {
		_, err := EncodeValue(FieldTypeInteger, "42")
		assert.Error(t, err)
	})
}
