package enums

import (
	"fmt"
	"strings"
)

// PhotoCategory labels where on the property a photo was taken.
type PhotoCategory string

const (
	PhotoCategoryExterior   PhotoCategory = "exterior"
	PhotoCategoryInterior   PhotoCategory = "interior"
	PhotoCategoryRoof       PhotoCategory = "roof"
	PhotoCategoryFoundation PhotoCategory = "foundation"
	PhotoCategoryElectrical PhotoCategory = "electrical"
	PhotoCategoryPlumbing   PhotoCategory = "plumbing"
	PhotoCategoryHVAC       PhotoCategory = "hvac"
	PhotoCategoryStructural PhotoCategory = "structural"
	PhotoCategoryOther      PhotoCategory = "other"
)

var validPhotoCategories = []PhotoCategory{
	PhotoCategoryExterior,
	PhotoCategoryInterior,
	PhotoCategoryRoof,
	PhotoCategoryFoundation,
	PhotoCategoryElectrical,
	PhotoCategoryPlumbing,
	PhotoCategoryHVAC,
	PhotoCategoryStructural,
	PhotoCategoryOther,
}

// String implements fmt.Stringer.
func (c PhotoCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known PhotoCategory.
func (c PhotoCategory) IsValid() bool {
	for _, candidate := range validPhotoCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParsePhotoCategory converts the raw string to PhotoCategory, accepting any casing.
func ParsePhotoCategory(value string) (PhotoCategory, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validPhotoCategories {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid photo category %q", value)
}

// MarshalJSON renders the UPPER_SNAKE wire form.
func (c PhotoCategory) MarshalJSON() ([]byte, error) {
	return marshalUpper(string(c))
}

// UnmarshalJSON accepts any casing and stores the canonical value.
func (c *PhotoCategory) UnmarshalJSON(data []byte) error {
	raw, err := unmarshalLower(data)
	if err != nil {
		return err
	}
	parsed, err := ParsePhotoCategory(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
