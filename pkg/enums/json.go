package enums

import (
	"encoding/json"
	"strings"
)

// Enum values are stored lower_snake in the database but exposed
// UPPER_SNAKE on the wire. These helpers implement the recasing for
// every enum's MarshalJSON/UnmarshalJSON.

func marshalUpper(value string) ([]byte, error) {
	return json.Marshal(strings.ToUpper(value))
}

func unmarshalLower(data []byte) (string, error) {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(raw)), nil
}
