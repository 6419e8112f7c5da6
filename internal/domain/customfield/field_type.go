package customfield

// FieldType enumerates the value types an admin-defined field can take.
// The type drives coercion, validation and storage encoding of values.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeInteger     FieldType = "integer"
	FieldTypeDecimal     FieldType = "decimal"
	FieldTypeBoolean     FieldType = "boolean"
	FieldTypeDate        FieldType = "date"
	FieldTypeDatetime    FieldType = "datetime"
	FieldTypeEmail       FieldType = "email"
	FieldTypeURL         FieldType = "url"
	FieldTypePhone       FieldType = "phone"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiselect FieldType = "multiselect"
	FieldTypeCurrency    FieldType = "currency"
	FieldTypePercentage  FieldType = "percentage"
)

// AllFieldTypes returns every supported field type
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeTextarea,
		FieldTypeInteger,
		FieldTypeDecimal,
		FieldTypeBoolean,
		FieldTypeDate,
		FieldTypeDatetime,
		FieldTypeEmail,
		FieldTypeURL,
		FieldTypePhone,
		FieldTypeSelect,
		FieldTypeMultiselect,
		FieldTypeCurrency,
		FieldTypePercentage,
	}
}

// IsValid checks if the field type is one of the supported types
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeInteger, FieldTypeDecimal,
		FieldTypeBoolean, FieldTypeDate, FieldTypeDatetime, FieldTypeEmail,
		FieldTypeURL, FieldTypePhone, FieldTypeSelect, FieldTypeMultiselect,
		FieldTypeCurrency, FieldTypePercentage:
		return true
	}
	return false
}

// RequiresOptions reports whether definitions of this type must carry a
// non-empty option list
func (t FieldType) RequiresOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeMultiselect
}

// IsNumeric reports whether values of this type are stored as numbers
func (t FieldType) IsNumeric() bool {
	switch t {
	case FieldTypeInteger, FieldTypeDecimal, FieldTypeCurrency, FieldTypePercentage:
		return true
	}
	return false
}

// EntityType enumerates the host record kinds that can carry custom fields
type EntityType string

const (
	EntityTypeClient               EntityType = "client"
	EntityTypeContract             EntityType = "contract"
	EntityTypeService              EntityType = "service"
	EntityTypeServiceScope         EntityType = "service_scope"
	EntityTypeHardwareAsset        EntityType = "hardware_asset"
	EntityTypeFinancialTransaction EntityType = "financial_transaction"
)

// AllEntityTypes returns every host record kind
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypeClient,
		EntityTypeContract,
		EntityTypeService,
		EntityTypeServiceScope,
		EntityTypeHardwareAsset,
		EntityTypeFinancialTransaction,
	}
}

// IsValid checks if the entity type is one of the supported host kinds
func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypeClient, EntityTypeContract, EntityTypeService,
		EntityTypeServiceScope, EntityTypeHardwareAsset, EntityTypeFinancialTransaction:
		return true
	}
	return false
}
