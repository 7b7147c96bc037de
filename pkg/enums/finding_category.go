package enums

import (
	"fmt"
	"strings"
)

// FindingCategory names the trade or system a finding concerns.
type FindingCategory string

const (
	FindingCategoryStructural FindingCategory = "structural"
	FindingCategoryElectrical FindingCategory = "electrical"
	FindingCategoryPlumbing   FindingCategory = "plumbing"
	FindingCategoryHVAC       FindingCategory = "hvac"
	FindingCategoryRoofing    FindingCategory = "roofing"
	FindingCategoryExterior   FindingCategory = "exterior"
	FindingCategoryInterior   FindingCategory = "interior"
	FindingCategoryAppliances FindingCategory = "appliances"
	FindingCategorySafety     FindingCategory = "safety"
	FindingCategoryCosmetic   FindingCategory = "cosmetic"
)

var validFindingCategories = []FindingCategory{
	FindingCategoryStructural,
	FindingCategoryElectrical,
	FindingCategoryPlumbing,
	FindingCategoryHVAC,
	FindingCategoryRoofing,
	FindingCategoryExterior,
	FindingCategoryInterior,
	FindingCategoryAppliances,
	FindingCategorySafety,
	FindingCategoryCosmetic,
}

// String implements fmt.Stringer.
func (c FindingCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known FindingCategory.
func (c FindingCategory) IsValid() bool {
	for _, candidate := range validFindingCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseFindingCategory converts the raw string to FindingCategory, accepting any casing.
func ParseFindingCategory(value string) (FindingCategory, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validFindingCategories {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid finding category %q", value)
}

// MarshalJSON renders the UPPER_SNAKE wire form.
func (c FindingCategory) MarshalJSON() ([]byte, error) {
	return marshalUpper(string(c))
}

// UnmarshalJSON accepts any casing and stores the canonical value.
func (c *FindingCategory) UnmarshalJSON(data []byte) error {
	raw, err := unmarshalLower(data)
	if err != nil {
		return err
	}
	parsed, err := ParseFindingCategory(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
