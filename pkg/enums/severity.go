package enums

import (
	"fmt"
	"strings"
)

// Severity is the defect-impact label attached to a finding.
// Rank orders critical above major, down to info.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
	SeverityCosmetic Severity = "cosmetic"
	SeverityInfo     Severity = "info"
)

var validSeverities = []Severity{
	SeverityCritical,
	SeverityMajor,
	SeverityMinor,
	SeverityCosmetic,
	SeverityInfo,
}

var severityRank = map[Severity]int{
	SeverityCritical: 4,
	SeverityMajor:    3,
	SeverityMinor:    2,
	SeverityCosmetic: 1,
	SeverityInfo:     0,
}

// String implements fmt.Stringer.
func (s Severity) String() string {
	return string(s)
}

// Rank returns the ordinal position, higher meaning more severe.
func (s Severity) Rank() int {
	return severityRank[s]
}

// IsValid reports whether the value is a known Severity.
func (s Severity) IsValid() bool {
	for _, candidate := range validSeverities {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSeverity converts the raw string to Severity, accepting any casing.
func ParseSeverity(value string) (Severity, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validSeverities {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid severity %q", value)
}

// MarshalJSON renders the UPPER_SNAKE wire form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return marshalUpper(string(s))
}

// UnmarshalJSON accepts any casing and stores the canonical value.
func (s *Severity) UnmarshalJSON(data []byte) error {
	raw, err := unmarshalLower(data)
	if err != nil {
		return err
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
