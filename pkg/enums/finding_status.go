package enums

import (
	"fmt"
	"strings"
)

// FindingStatus tracks whether a finding is still in play.
type FindingStatus string

const (
	FindingStatusActive   FindingStatus = "active"
	FindingStatusResolved FindingStatus = "resolved"
	FindingStatusDisputed FindingStatus = "disputed"
)

var validFindingStatuses = []FindingStatus{
	FindingStatusActive,
	FindingStatusResolved,
	FindingStatusDisputed,
}

// String implements fmt.Stringer.
func (s FindingStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known FindingStatus.
func (s FindingStatus) IsValid() bool {
	for _, candidate := range validFindingStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseFindingStatus converts the raw string to FindingStatus, accepting any casing.
func ParseFindingStatus(value string) (FindingStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validFindingStatuses {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid finding status %q", value)
}

// MarshalJSON renders the UPPER_SNAKE wire form.
func (s FindingStatus) MarshalJSON() ([]byte, error) {
	return marshalUpper(string(s))
}

// UnmarshalJSON accepts any casing and stores the canonical value.
func (s *FindingStatus) UnmarshalJSON(data []byte) error {
	raw, err := unmarshalLower(data)
	if err != nil {
		return err
	}
	parsed, err := ParseFindingStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
