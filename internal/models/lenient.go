package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexString decodes from a JSON string, number or boolean and never fails.
// Objects, arrays and null decode to the empty string. Numbers are normalized
// so that 7 and 7.0 compare equal.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (s *FlexString) UnmarshalJSON(data []byte) error {
	*s = FlexString(decodeLooseText(data))
	return nil
}

// String returns the decoded text
func (s FlexString) String() string {
	return string(s)
}

// NumericString holds a numeric value that clients may send as a JSON string
// or a JSON number. Malformed values are kept as-is and read back as zero.
type NumericString string

// UnmarshalJSON implements json.Unmarshaler
func (n *NumericString) UnmarshalJSON(data []byte) error {
	*n = NumericString(decodeLooseText(data))
	return nil
}

// MarshalJSON keeps the raw text so malformed input can be echoed back
func (n NumericString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(n))
}

// Float returns the numeric value or zero when the text is not a number
func (n NumericString) Float() float64 {
	return ParseNumericOrZero(string(n))
}

// List decodes a JSON array of T. Any non-array value decodes to an empty
// list, and elements that are null or fail to decode are skipped.
type List[T any] []T

// UnmarshalJSON implements json.Unmarshaler
func (l *List[T]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = List[T]{}
		return nil
	}

	items := make(List[T], 0, len(raw))
	for _, elem := range raw {
		if isJSONNull(elem) {
			continue
		}
		var item T
		if err := json.Unmarshal(elem, &item); err != nil {
			continue
		}
		items = append(items, item)
	}

	*l = items
	return nil
}

func decodeLooseText(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || isJSONNull(trimmed) {
		return ""
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return s
	case '{', '[':
		return ""
	case 't', 'f':
		return string(trimmed)
	}

	if f, err := strconv.ParseFloat(string(trimmed), 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return string(trimmed)
}

func isJSONNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
