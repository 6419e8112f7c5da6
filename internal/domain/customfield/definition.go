package customfield

import (
	"regexp"
	"strings"

	"github.com/mssp/backend/internal/domain/shared"
)

// nameRegex matches machine keys: lowercase letters, digits and underscores
var nameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_]{0,62}$`)

// FieldDefinition is an admin-defined field attached to one host entity
// type. Name and field type are immutable after creation; values written
// under this definition are interpreted through its field type.
type FieldDefinition struct {
	shared.BaseAggregateRoot
	EntityType    EntityType
	Name          string
	Label         string
	Description   string
	FieldType     FieldType
	SelectOptions []string
	Rules         ValidationRules
	// DefaultValue is the encoded default shown on empty forms. It never
	// satisfies requiredness during validation.
	DefaultValue string
	IsRequired   bool
	DisplayOrder int
	IsActive     bool
}

// NewFieldDefinition creates a field definition with invariant checks
func NewFieldDefinition(entityType EntityType, name, label string, fieldType FieldType) (*FieldDefinition, error) {
	if !entityType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", "Unknown entity type: "+string(entityType))
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateLabel(label); err != nil {
		return nil, err
	}
	if !fieldType.IsValid() {
		return nil, shared.NewDomainError("INVALID_FIELD_TYPE", "Unknown field type: "+string(fieldType))
	}

	def := &FieldDefinition{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EntityType:        entityType,
		Name:              name,
		Label:             label,
		FieldType:         fieldType,
		IsActive:          true,
	}

	def.AddDomainEvent(NewDefinitionCreatedEvent(def))
	return def, nil
}

// SetSelectOptions replaces the option list. Select and multiselect
// definitions must keep at least one option; other types may not carry any.
func (d *FieldDefinition) SetSelectOptions(options []string) error {
	if d.FieldType.RequiresOptions() {
		if len(options) == 0 {
			return shared.NewDomainError("OPTIONS_REQUIRED", "Field type "+string(d.FieldType)+" requires at least one option")
		}
	} else if len(options) > 0 {
		return shared.NewDomainError("OPTIONS_NOT_ALLOWED", "Field type "+string(d.FieldType)+" does not accept options")
	}

	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return shared.NewDomainError("INVALID_OPTION", "Options cannot be blank")
		}
		if _, dup := seen[opt]; dup {
			return shared.NewDomainError("DUPLICATE_OPTION", "Duplicate option: "+opt)
		}
		seen[opt] = struct{}{}
	}

	d.SelectOptions = options
	d.IncrementVersion()
	return nil
}

// SetRules replaces the validation rule set
func (d *FieldDefinition) SetRules(rules ValidationRules) error {
	if err := rules.Validate(); err != nil {
		return err
	}
	d.Rules = rules
	d.IncrementVersion()
	return nil
}

// UpdateLabel changes the human-readable label
func (d *FieldDefinition) UpdateLabel(label string) error {
	if err := validateLabel(label); err != nil {
		return err
	}
	d.Label = label
	d.IncrementVersion()
	return nil
}

// UpdateDescription changes the admin-facing description
func (d *FieldDefinition) UpdateDescription(description string) {
	d.Description = description
	d.IncrementVersion()
}

// SetDefaultValue replaces the encoded default. The raw form must coerce
// cleanly under the definition's own type rules.
func (d *FieldDefinition) SetDefaultValue(raw interface{}) error {
	if raw == nil {
		d.DefaultValue = ""
		d.IncrementVersion()
		return nil
	}
	clean, err := CoerceValue(d, raw)
	if err != nil {
		return shared.NewDomainError("INVALID_DEFAULT", "Default value is invalid: "+err.Error())
	}
	encoded, err := EncodeValue(d.FieldType, clean)
	if err != nil {
		return shared.NewDomainError("INVALID_DEFAULT", "Default value cannot be encoded")
	}
	d.DefaultValue = encoded
	d.IncrementVersion()
	return nil
}

// SetRequired flips the required flag
func (d *FieldDefinition) SetRequired(required bool) {
	d.IsRequired = required
	d.IncrementVersion()
}

// SetDisplayOrder changes the position within the entity type's field list
func (d *FieldDefinition) SetDisplayOrder(order int) error {
	if order < 0 {
		return shared.NewDomainError("INVALID_DISPLAY_ORDER", "Display order cannot be negative")
	}
	d.DisplayOrder = order
	d.IncrementVersion()
	return nil
}

// Deactivate soft-removes the definition. Inactive definitions are hidden
// from validation and display but keep their name reserved and their
// historical values readable.
func (d *FieldDefinition) Deactivate() error {
	if !d.IsActive {
		return shared.NewDomainError("DEFINITION_INACTIVE", "Field definition is already inactive")
	}
	d.IsActive = false
	d.IncrementVersion()
	d.AddDomainEvent(NewDefinitionDeactivatedEvent(d))
	return nil
}

// Reactivate restores a soft-removed definition
func (d *FieldDefinition) Reactivate() error {
	if d.IsActive {
		return shared.NewDomainError("DEFINITION_ACTIVE", "Field definition is already active")
	}
	d.IsActive = true
	d.IncrementVersion()
	return nil
}

// HasOption checks option membership for select and multiselect values
func (d *FieldDefinition) HasOption(value string) bool {
	for _, opt := range d.SelectOptions {
		if opt == value {
			return true
		}
	}
	return false
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Field name is required")
	}
	if !nameRegex.MatchString(name) {
		return shared.NewDomainError("INVALID_NAME", "Field name may only contain lowercase letters, digits and underscores")
	}
	return nil
}

func validateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return shared.NewDomainError("INVALID_LABEL", "Field label is required")
	}
	if len(label) > 255 {
		return shared.NewDomainError("INVALID_LABEL", "Field label cannot exceed 255 characters")
	}
	return nil
}
