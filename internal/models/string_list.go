package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList ensures category fields can be decoded whether the API sends a
// single string or an array of strings.
type StringList []string

// UnmarshalJSON accepts null, a string or an array of strings. Blank entries
// are dropped so a legacy "" category decodes to an empty list.
func (s *StringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = nil
		return nil
	}

	switch trimmed[0] {
	case '[':
		var values []string
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return err
		}
		out := make([]string, 0, len(values))
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		*s = out
		return nil
	case '"':
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		value = strings.TrimSpace(value)
		if value == "" {
			*s = []string{}
			return nil
		}
		*s = []string{value}
		return nil
	default:
		return fmt.Errorf("cannot decode %s into StringList", trimmed)
	}
}

// MarshalJSON always writes an array so new payloads stay consistent.
func (s StringList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// Contains reports whether the list holds value, compared case-insensitively.
func (s StringList) Contains(value string) bool {
	for _, v := range s {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}
