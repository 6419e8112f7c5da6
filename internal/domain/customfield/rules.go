package customfield

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/shared"
)

// ValidationRules carries the optional per-definition constraints applied
// on top of the field type's own coercion rules. All members are optional;
// a nil member imposes no constraint.
type ValidationRules struct {
	Min              *decimal.Decimal `json:"min,omitempty"`
	Max              *decimal.Decimal `json:"max,omitempty"`
	MinLength        *int             `json:"min_length,omitempty"`
	MaxLength        *int             `json:"max_length,omitempty"`
	MaxDecimalPlaces *int             `json:"max_decimal_places,omitempty"`
	Pattern          string           `json:"pattern,omitempty"`
	MinDate          *time.Time       `json:"min_date,omitempty"`
	MaxDate          *time.Time       `json:"max_date,omitempty"`
}

// Validate checks the rule set for internal consistency
func (r ValidationRules) Validate() error {
	if r.Min != nil && r.Max != nil && r.Min.GreaterThan(*r.Max) {
		return shared.NewDomainError("INVALID_RULES", "min cannot exceed max")
	}
	if r.MinLength != nil && *r.MinLength < 0 {
		return shared.NewDomainError("INVALID_RULES", "min_length cannot be negative")
	}
	if r.MaxLength != nil && *r.MaxLength < 0 {
		return shared.NewDomainError("INVALID_RULES", "max_length cannot be negative")
	}
	if r.MinLength != nil && r.MaxLength != nil && *r.MinLength > *r.MaxLength {
		return shared.NewDomainError("INVALID_RULES", "min_length cannot exceed max_length")
	}
	if r.MaxDecimalPlaces != nil && *r.MaxDecimalPlaces < 0 {
		return shared.NewDomainError("INVALID_RULES", "max_decimal_places cannot be negative")
	}
	if r.MinDate != nil && r.MaxDate != nil && r.MinDate.After(*r.MaxDate) {
		return shared.NewDomainError("INVALID_RULES", "min_date cannot be after max_date")
	}
	if r.Pattern != "" {
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return shared.NewDomainError("INVALID_RULES", "pattern is not a valid regular expression")
		}
	}
	return nil
}

// IsZero reports whether no constraint is set
func (r ValidationRules) IsZero() bool {
	return r.Min == nil && r.Max == nil &&
		r.MinLength == nil && r.MaxLength == nil &&
		r.MaxDecimalPlaces == nil && r.Pattern == "" &&
		r.MinDate == nil && r.MaxDate == nil
}
