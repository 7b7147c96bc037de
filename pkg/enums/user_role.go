package enums

import (
	"fmt"
	"strings"
)

// UserRole is the role attached to a profile.
type UserRole string

const (
	UserRoleInspector UserRole = "inspector"
	UserRoleManager   UserRole = "manager"
	UserRoleAdmin     UserRole = "admin"
)

var validUserRoles = []UserRole{
	UserRoleInspector,
	UserRoleManager,
	UserRoleAdmin,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts the raw string to UserRole, accepting any casing.
func ParseUserRole(value string) (UserRole, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validUserRoles {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}

// MarshalJSON renders the UPPER_SNAKE wire form.
func (r UserRole) MarshalJSON() ([]byte, error) {
	return marshalUpper(string(r))
}

// UnmarshalJSON accepts any casing and stores the canonical value.
func (r *UserRole) UnmarshalJSON(data []byte) error {
	raw, err := unmarshalLower(data)
	if err != nil {
		return err
	}
	parsed, err := ParseUserRole(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
