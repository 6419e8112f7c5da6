package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/customfield"
	"github.com/mssp/backend/internal/domain/shared"
)

// TemplateField declares one field a service scope must fill in. It reuses
// the custom-field type enumeration so scope details run through the same
// validation engine as admin-defined fields.
type TemplateField struct {
	Name     string                `json:"name"`
	Label    string                `json:"label"`
	Type     customfield.FieldType `json:"type"`
	Required bool                  `json:"required"`
	Options  []string              `json:"options,omitempty"`
	Min      *decimal.Decimal      `json:"min,omitempty"`
	Max      *decimal.Decimal      `json:"max,omitempty"`
}

// ScopeTemplate is the ordered field list a service prescribes for its
// scopes, stored as JSONB on the catalog entry
type ScopeTemplate []TemplateField

// Validate checks the template itself: known field types, unique machine
// names, options present exactly where the type demands them
func (t ScopeTemplate) Validate() error {
	seen := make(map[string]struct{}, len(t))
	for _, f := range t {
		if _, dup := seen[f.Name]; dup {
			return shared.NewDomainError("DUPLICATE_TEMPLATE_FIELD", "Duplicate template field name: "+f.Name)
		}
		seen[f.Name] = struct{}{}

		if _, err := f.toDefinition(); err != nil {
			return err
		}
	}
	return nil
}

// ToDefinitions materializes the template as transient field definitions
// so scope details can be validated with customfield.ValidateValues
func (t ScopeTemplate) ToDefinitions() ([]*customfield.FieldDefinition, error) {
	defs := make([]*customfield.FieldDefinition, 0, len(t))
	for _, f := range t {
		def, err := f.toDefinition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (f TemplateField) toDefinition() (*customfield.FieldDefinition, error) {
	label := f.Label
	if label == "" {
		label = f.Name
	}
	def, err := customfield.NewFieldDefinition(customfield.EntityTypeServiceScope, f.Name, label, f.Type)
	if err != nil {
		return nil, err
	}
	def.ClearDomainEvents()
	if f.Type.RequiresOptions() || len(f.Options) > 0 {
		if err := def.SetSelectOptions(f.Options); err != nil {
			return nil, err
		}
	}
	if f.Min != nil || f.Max != nil {
		if err := def.SetRules(customfield.ValidationRules{Min: f.Min, Max: f.Max}); err != nil {
			return nil, err
		}
	}
	def.SetRequired(f.Required)
	return def, nil
}
