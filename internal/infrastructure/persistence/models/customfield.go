package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mssp/backend/internal/domain/customfield"
)

// logger for model conversion errors (silent failures are logged for debugging)
var modelLogger = zap.L().Named("persistence.models")

// FieldDefinitionModel is the persistence model for the FieldDefinition
// aggregate root. The (entity_type, name) pair is unique across active and
// inactive definitions so a deactivated field keeps its name reserved.
type FieldDefinitionModel struct {
	AggregateModel
	EntityType        customfield.EntityType `gorm:"type:varchar(50);not null;uniqueIndex:idx_field_def_entity_name,priority:1"`
	Name              string                 `gorm:"type:varchar(63);not null;uniqueIndex:idx_field_def_entity_name,priority:2"`
	Label             string                 `gorm:"type:varchar(255);not null"`
	Description       string                 `gorm:"type:text"`
	FieldType         customfield.FieldType  `gorm:"type:varchar(20);not null"`
	SelectOptionsJSON string                 `gorm:"column:select_options;type:jsonb;default:'[]'"`
	RulesJSON         string                 `gorm:"column:rules;type:jsonb;default:'{}'"`
	DefaultValue      string                 `gorm:"type:text"`
	IsRequired        bool                   `gorm:"not null;default:false"`
	DisplayOrder      int                    `gorm:"not null;default:0"`
	// No default tag: GORM would skip a zero-valued column on insert and
	// the database default would flip a definition saved inactive back to
	// active.
	IsActive bool `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (FieldDefinitionModel) TableName() string {
	return "field_definitions"
}

// ToDomain converts the persistence model to a domain FieldDefinition entity.
func (m *FieldDefinitionModel) ToDomain() *customfield.FieldDefinition {
	def := &customfield.FieldDefinition{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		EntityType:        m.EntityType,
		Name:              m.Name,
		Label:             m.Label,
		Description:       m.Description,
		FieldType:         m.FieldType,
		SelectOptions:     make([]string, 0),
		DefaultValue:      m.DefaultValue,
		IsRequired:        m.IsRequired,
		DisplayOrder:      m.DisplayOrder,
		IsActive:          m.IsActive,
	}

	if m.SelectOptionsJSON != "" && m.SelectOptionsJSON != "[]" {
		var options []string
		if err := json.Unmarshal([]byte(m.SelectOptionsJSON), &options); err != nil {
			modelLogger.Warn("failed to parse select_options JSON",
				zap.String("definition_name", m.Name),
				zap.Error(err))
		} else {
			def.SelectOptions = options
		}
	}

	if m.RulesJSON != "" && m.RulesJSON != "{}" {
		var rules customfield.ValidationRules
		if err := json.Unmarshal([]byte(m.RulesJSON), &rules); err != nil {
			modelLogger.Warn("failed to parse rules JSON",
				zap.String("definition_name", m.Name),
				zap.Error(err))
		} else {
			def.Rules = rules
		}
	}

	return def
}

// FromDomain populates the persistence model from a domain FieldDefinition entity.
func (m *FieldDefinitionModel) FromDomain(d *customfield.FieldDefinition) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.EntityType = d.EntityType
	m.Name = d.Name
	m.Label = d.Label
	m.Description = d.Description
	m.FieldType = d.FieldType
	m.DefaultValue = d.DefaultValue
	m.IsRequired = d.IsRequired
	m.DisplayOrder = d.DisplayOrder
	m.IsActive = d.IsActive

	if jsonBytes, err := json.Marshal(d.SelectOptions); err == nil && d.SelectOptions != nil {
		m.SelectOptionsJSON = string(jsonBytes)
	} else {
		m.SelectOptionsJSON = "[]"
	}

	if jsonBytes, err := json.Marshal(d.Rules); err == nil {
		m.RulesJSON = string(jsonBytes)
	} else {
		m.RulesJSON = "{}"
	}
}

// FieldDefinitionModelFromDomain creates a new persistence model from a domain FieldDefinition entity.
func FieldDefinitionModelFromDomain(d *customfield.FieldDefinition) *FieldDefinitionModel {
	m := &FieldDefinitionModel{}
	m.FromDomain(d)
	return m
}

// FieldValueModel is the persistence model for the FieldValue entity.
// At most one row exists per (definition, entity) pair.
type FieldValueModel struct {
	BaseModel
	DefinitionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_field_value_def_entity,priority:1"`
	EntityID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_field_value_def_entity,priority:2;index:idx_field_value_entity"`
	RawValue     string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (FieldValueModel) TableName() string {
	return "field_values"
}

// ToDomain converts the persistence model to a domain FieldValue entity.
func (m *FieldValueModel) ToDomain() *customfield.FieldValue {
	return &customfield.FieldValue{
		BaseEntity:   m.BaseModel.ToDomain(),
		DefinitionID: m.DefinitionID,
		EntityID:     m.EntityID,
		RawValue:     m.RawValue,
	}
}

// FromDomain populates the persistence model from a domain FieldValue entity.
func (m *FieldValueModel) FromDomain(v *customfield.FieldValue) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.DefinitionID = v.DefinitionID
	m.EntityID = v.EntityID
	m.RawValue = v.RawValue
}

// FieldValueModelFromDomain creates a new persistence model from a domain FieldValue entity.
func FieldValueModelFromDomain(v *customfield.FieldValue) *FieldValueModel {
	m := &FieldValueModel{}
	m.FromDomain(v)
	return m
}
