package enums

import (
	"fmt"
	"strings"
)

// PropertyType classifies the inspected property.
type PropertyType string

const (
	PropertyTypeSingleFamily PropertyType = "single_family"
	PropertyTypeMultiFamily  PropertyType = "multi_family"
	PropertyTypeCondo        PropertyType = "condo"
	PropertyTypeTownhouse    PropertyType = "townhouse"
	PropertyTypeCommercial   PropertyType = "commercial"
	PropertyTypeIndustrial   PropertyType = "industrial"
)

var validPropertyTypes = []PropertyType{
	PropertyTypeSingleFamily,
	PropertyTypeMultiFamily,
	PropertyTypeCondo,
	PropertyTypeTownhouse,
	PropertyTypeCommercial,
	PropertyTypeIndustrial,
}

// String implements fmt.Stringer.
func (p PropertyType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PropertyType.
func (p PropertyType) IsValid() bool {
	for _, candidate := range validPropertyTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePropertyType converts the raw string to PropertyType, accepting any casing.
func ParsePropertyType(value string) (PropertyType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validPropertyTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid property type %q", value)
}

// MarshalJSON renders the UPPER_SNAKE wire form.
func (p PropertyType) MarshalJSON() ([]byte, error) {
	return marshalUpper(string(p))
}

// UnmarshalJSON accepts any casing and stores the canonical value.
func (p *PropertyType) UnmarshalJSON(data []byte) error {
	raw, err := unmarshalLower(data)
	if err != nil {
		return err
	}
	parsed, err := ParsePropertyType(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
