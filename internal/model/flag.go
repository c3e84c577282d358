package model

import (
	"bytes"
	"fmt"
)

// Flag is a boolean that is stored as 0 or 1 in round documents
type Flag bool

// Int returns 1 for true and 0 for false
func (f Flag) Int() int {
	if f {
		return 1
	}
	return 0
}

// MarshalJSON encodes the flag as 0 or 1
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON accepts 0, 1, true and false
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "1", "true":
		*f = true
	case "0", "false", "null":
		*f = false
	default:
		return fmt.Errorf("invalid flag value: %s", data)
	}
	return nil
}
