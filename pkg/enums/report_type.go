package enums

import (
	"fmt"
	"strings"
)

// ReportType selects which slice of an inspection a report covers.
type ReportType string

const (
	ReportTypeFull    ReportType = "full"
	ReportTypeSummary ReportType = "summary"
	ReportTypeDefects ReportType = "defects"
)

var validReportTypes = []ReportType{
	ReportTypeFull,
	ReportTypeSummary,
	ReportTypeDefects,
}

// String implements fmt.Stringer.
func (r ReportType) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ReportType.
func (r ReportType) IsValid() bool {
	for _, candidate := range validReportTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseReportType converts the raw string to ReportType, accepting any casing.
func ParseReportType(value string) (ReportType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validReportTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report type %q", value)
}

// MarshalJSON renders the UPPER_SNAKE wire form.
func (r ReportType) MarshalJSON() ([]byte, error) {
	return marshalUpper(string(r))
}

// UnmarshalJSON accepts any casing and stores the canonical value.
func (r *ReportType) UnmarshalJSON(data []byte) error {
	raw, err := unmarshalLower(data)
	if err != nil {
		return err
	}
	parsed, err := ParseReportType(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
