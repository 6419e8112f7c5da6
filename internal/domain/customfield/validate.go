package customfield

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/shared"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	// E.164-ish: optional plus, no leading zero, at most 16 digits
	phoneRegex    = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)
	phoneStripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

	percentMin = decimal.Zero
	percentMax = decimal.NewFromInt(100)
)

const defaultCurrencyPlaces = 2

// ValidateValues checks raw input for one host entity against the supplied
// definitions and returns the cleaned, typed values keyed by field name.
// Every problem found is reported in one aggregated error: missing required
// fields, keys without an active definition, and per-type failures. Keys
// are never dropped silently.
//
// Clean values are typed per field type: string, int64, decimal.Decimal,
// bool, time.Time or []string. Explicit nulls on optional fields are
// treated as absent.
func ValidateValues(defs []*FieldDefinition, input map[string]interface{}) (map[string]interface{}, error) {
	verr := shared.NewValidationError()
	clean := make(map[string]interface{}, len(input))

	known := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		known[def.Name] = struct{}{}
		raw, present := input[def.Name]
		if !present || raw == nil {
			if def.IsRequired {
				verr.Add(def.Name, "value is required")
			}
			continue
		}
		v, err := CoerceValue(def, raw)
		if err != nil {
			verr.Add(def.Name, err.Error())
			continue
		}
		clean[def.Name] = v
	}

	unknown := make([]string, 0)
	for name := range input {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		verr.Add(name, "no active field definition with this name")
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return clean, nil
}

// CoerceValue converts one raw input value into its clean typed form,
// applying the definition's type rules and constraints
func CoerceValue(def *FieldDefinition, raw interface{}) (interface{}, error) {
	switch def.FieldType {
	case FieldTypeText, FieldTypeTextarea:
		return coerceText(def, raw)
	case FieldTypeInteger:
		return coerceInteger(def, raw)
	case FieldTypeDecimal:
		return coerceDecimal(def, raw, def.Rules.MaxDecimalPlaces)
	case FieldTypeCurrency:
		places := def.Rules.MaxDecimalPlaces
		if places == nil {
			p := defaultCurrencyPlaces
			places = &p
		}
		return coerceDecimal(def, raw, places)
	case FieldTypePercentage:
		return coercePercentage(def, raw)
	case FieldTypeBoolean:
		return coerceBoolean(raw)
	case FieldTypeDate:
		return coerceDate(def, raw)
	case FieldTypeDatetime:
		return coerceDatetime(def, raw)
	case FieldTypeEmail:
		return coerceEmail(raw)
	case FieldTypeURL:
		return coerceURL(raw)
	case FieldTypePhone:
		return coercePhone(raw)
	case FieldTypeSelect:
		return coerceSelect(def, raw)
	case FieldTypeMultiselect:
		return coerceMultiselect(def, raw)
	}
	return nil, fmt.Errorf("unknown field type %q", def.FieldType)
}

func coerceText(def *FieldDefinition, raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected a string, got %T", raw)
	}
	length := len([]rune(s))
	if def.Rules.MinLength != nil && length < *def.Rules.MinLength {
		return nil, fmt.Errorf("must be at least %d characters", *def.Rules.MinLength)
	}
	if def.Rules.MaxLength != nil && length > *def.Rules.MaxLength {
		return nil, fmt.Errorf("must be at most %d characters", *def.Rules.MaxLength)
	}
	if def.Rules.Pattern != "" {
		re, err := regexp.Compile(def.Rules.Pattern)
		if err != nil {
			return nil, fmt.Errorf("definition pattern is invalid")
		}
		if !re.MatchString(s) {
			return nil, fmt.Errorf("does not match required pattern")
		}
	}
	return s, nil
}

// parseNumber accepts native JSON numbers and numeric strings
func parseNumber(raw interface{}) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case decimal.Decimal:
		return v, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("is not a valid number")
		}
		return d, nil
	}
	return decimal.Zero, fmt.Errorf("expected a number, got %T", raw)
}

func checkNumericBounds(def *FieldDefinition, d decimal.Decimal) error {
	if def.Rules.Min != nil && d.LessThan(*def.Rules.Min) {
		return fmt.Errorf("must be at least %s", def.Rules.Min.String())
	}
	if def.Rules.Max != nil && d.GreaterThan(*def.Rules.Max) {
		return fmt.Errorf("must be at most %s", def.Rules.Max.String())
	}
	return nil
}

func coerceInteger(def *FieldDefinition, raw interface{}) (interface{}, error) {
	d, err := parseNumber(raw)
	if err != nil {
		return nil, err
	}
	if !d.IsInteger() {
		return nil, fmt.Errorf("must be a whole number")
	}
	if err := checkNumericBounds(def, d); err != nil {
		return nil, err
	}
	return d.IntPart(), nil
}

func coerceDecimal(def *FieldDefinition, raw interface{}, maxPlaces *int) (interface{}, error) {
	d, err := parseNumber(raw)
	if err != nil {
		return nil, err
	}
	if maxPlaces != nil && !d.Equal(d.Truncate(int32(*maxPlaces))) {
		return nil, fmt.Errorf("cannot have more than %d decimal places", *maxPlaces)
	}
	if err := checkNumericBounds(def, d); err != nil {
		return nil, err
	}
	return d, nil
}

func coercePercentage(def *FieldDefinition, raw interface{}) (interface{}, error) {
	d, err := parseNumber(raw)
	if err != nil {
		return nil, err
	}
	if d.LessThan(percentMin) || d.GreaterThan(percentMax) {
		return nil, fmt.Errorf("must be between 0 and 100")
	}
	if def.Rules.MaxDecimalPlaces != nil && !d.Equal(d.Truncate(int32(*def.Rules.MaxDecimalPlaces))) {
		return nil, fmt.Errorf("cannot have more than %d decimal places", *def.Rules.MaxDecimalPlaces)
	}
	if err := checkNumericBounds(def, d); err != nil {
		return nil, err
	}
	return d, nil
}

func coerceBoolean(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
		return nil, fmt.Errorf("is not a valid boolean (use true/1/yes or false/0/no)")
	}
	return nil, fmt.Errorf("expected a boolean, got %T", raw)
}

func coerceDate(def *FieldDefinition, raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected a date string, got %T", raw)
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("is not a valid date (expected YYYY-MM-DD)")
	}
	return t, checkDateBounds(def, t)
}

func coerceDatetime(def *FieldDefinition, raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected a datetime string, got %T", raw)
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("is not a valid datetime (expected RFC 3339)")
	}
	return t, checkDateBounds(def, t)
}

func checkDateBounds(def *FieldDefinition, t time.Time) error {
	if def.Rules.MinDate != nil && t.Before(*def.Rules.MinDate) {
		return fmt.Errorf("must not be before %s", def.Rules.MinDate.Format(DateLayout))
	}
	if def.Rules.MaxDate != nil && t.After(*def.Rules.MaxDate) {
		return fmt.Errorf("must not be after %s", def.Rules.MaxDate.Format(DateLayout))
	}
	return nil
}

func coerceEmail(raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected an email string, got %T", raw)
	}
	s = strings.TrimSpace(s)
	if !emailRegex.MatchString(s) {
		return nil, fmt.Errorf("is not a valid email address")
	}
	return s, nil
}

func coerceURL(raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected a URL string, got %T", raw)
	}
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("is not a valid http(s) URL")
	}
	return s, nil
}

func coercePhone(raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected a phone string, got %T", raw)
	}
	stripped := phoneStripper.Replace(strings.TrimSpace(s))
	if !phoneRegex.MatchString(stripped) {
		return nil, fmt.Errorf("is not a valid phone number")
	}
	return stripped, nil
}

func coerceSelect(def *FieldDefinition, raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected a string, got %T", raw)
	}
	if !def.HasOption(s) {
		return nil, fmt.Errorf("%q is not one of the allowed options", s)
	}
	return s, nil
}

func coerceMultiselect(def *FieldDefinition, raw interface{}) (interface{}, error) {
	var items []string
	switch v := raw.(type) {
	case []string:
		items = v
	case []interface{}:
		items = make([]string, 0, len(v))
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("expected a list of strings, got element of type %T", elem)
			}
			items = append(items, s)
		}
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", raw)
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if !def.HasOption(item) {
			return nil, fmt.Errorf("%q is not one of the allowed options", item)
		}
		if _, dup := seen[item]; dup {
			return nil, fmt.Errorf("%q appears more than once", item)
		}
		seen[item] = struct{}{}
	}
	return items, nil
}
