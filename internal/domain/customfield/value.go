package customfield

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/shared"
)

// DateLayout is the storage layout for date values
const DateLayout = "2006-01-02"

// FieldValue is one EAV row: the stored value of one definition for one
// host entity. At most one row exists per (definition, entity) pair; the
// raw payload is interpreted through the definition's field type.
type FieldValue struct {
	shared.BaseEntity
	DefinitionID uuid.UUID
	EntityID     uuid.UUID
	RawValue     string
}

// NewFieldValue creates a value row for a definition and host entity
func NewFieldValue(definitionID, entityID uuid.UUID, raw string) *FieldValue {
	return &FieldValue{
		BaseEntity:   shared.NewBaseEntity(),
		DefinitionID: definitionID,
		EntityID:     entityID,
		RawValue:     raw,
	}
}

// SetRaw replaces the stored payload
func (v *FieldValue) SetRaw(raw string) {
	v.RawValue = raw
	v.UpdatedAt = time.Now()
}

// EncodeValue serializes a clean typed value into its storage form.
// The input must already have passed validation for the field type.
func EncodeValue(fieldType FieldType, value interface{}) (string, error) {
	switch fieldType {
	case FieldTypeText, FieldTypeTextarea, FieldTypeEmail, FieldTypeURL,
		FieldTypePhone, FieldTypeSelect:
		s, ok := value.(string)
		if !ok {
			return "", fmt.Errorf("expected string payload for %s, got %T", fieldType, value)
		}
		return s, nil
	case FieldTypeInteger:
		n, ok := value.(int64)
		if !ok {
			return "", fmt.Errorf("expected int64 payload for integer, got %T", value)
		}
		return strconv.FormatInt(n, 10), nil
	case FieldTypeDecimal, FieldTypeCurrency, FieldTypePercentage:
		d, ok := value.(decimal.Decimal)
		if !ok {
			return "", fmt.Errorf("expected decimal payload for %s, got %T", fieldType, value)
		}
		return d.String(), nil
	case FieldTypeBoolean:
		b, ok := value.(bool)
		if !ok {
			return "", fmt.Errorf("expected bool payload for boolean, got %T", value)
		}
		return strconv.FormatBool(b), nil
	case FieldTypeDate:
		t, ok := value.(time.Time)
		if !ok {
			return "", fmt.Errorf("expected time payload for date, got %T", value)
		}
		return t.Format(DateLayout), nil
	case FieldTypeDatetime:
		t, ok := value.(time.Time)
		if !ok {
			return "", fmt.Errorf("expected time payload for datetime, got %T", value)
		}
		return t.Format(time.RFC3339), nil
	case FieldTypeMultiselect:
		items, ok := value.([]string)
		if !ok {
			return "", fmt.Errorf("expected string slice payload for multiselect, got %T", value)
		}
		data, err := json.Marshal(items)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("unknown field type %q", fieldType)
}

// DecodeValue deserializes a stored payload back into its typed form
func DecodeValue(fieldType FieldType, raw string) (interface{}, error) {
	switch fieldType {
	case FieldTypeText, FieldTypeTextarea, FieldTypeEmail, FieldTypeURL,
		FieldTypePhone, FieldTypeSelect:
		return raw, nil
	case FieldTypeInteger:
		return strconv.ParseInt(raw, 10, 64)
	case FieldTypeDecimal, FieldTypeCurrency, FieldTypePercentage:
		return decimal.NewFromString(raw)
	case FieldTypeBoolean:
		return strconv.ParseBool(raw)
	case FieldTypeDate:
		return time.Parse(DateLayout, raw)
	case FieldTypeDatetime:
		return time.Parse(time.RFC3339, raw)
	case FieldTypeMultiselect:
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	return nil, fmt.Errorf("unknown field type %q", fieldType)
}
