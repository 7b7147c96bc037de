package enums

import (
	"fmt"
	"strings"
)

// InspectionStatus tracks an inspection through its lifecycle.
type InspectionStatus string

const (
	InspectionStatusDraft      InspectionStatus = "draft"
	InspectionStatusInProgress InspectionStatus = "in_progress"
	InspectionStatusReview     InspectionStatus = "review"
	InspectionStatusCompleted  InspectionStatus = "completed"
	InspectionStatusArchived   InspectionStatus = "archived"
)

var validInspectionStatuses = []InspectionStatus{
	InspectionStatusDraft,
	InspectionStatusInProgress,
	InspectionStatusReview,
	InspectionStatusCompleted,
	InspectionStatusArchived,
}

// String implements fmt.Stringer.
func (s InspectionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known InspectionStatus.
func (s InspectionStatus) IsValid() bool {
	for _, candidate := range validInspectionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseInspectionStatus converts the raw string to InspectionStatus, accepting any casing.
func ParseInspectionStatus(value string) (InspectionStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validInspectionStatuses {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inspection status %q", value)
}

// MarshalJSON renders the UPPER_SNAKE wire form.
func (s InspectionStatus) MarshalJSON() ([]byte, error) {
	return marshalUpper(string(s))
}

// UnmarshalJSON accepts any casing and stores the canonical value.
func (s *InspectionStatus) UnmarshalJSON(data []byte) error {
	raw, err := unmarshalLower(data)
	if err != nil {
		return err
	}
	parsed, err := ParseInspectionStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
