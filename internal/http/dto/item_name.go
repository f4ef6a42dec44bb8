package dto

import (
	"bytes"
	"encoding/json"
)

// ItemName is a name taken from a request body. Strings are used as given,
// non-zero numbers and true are rendered as text. Falsy values, objects and
// arrays decode to the empty name.
type ItemName string

func (n *ItemName) UnmarshalJSON(data []byte) error {
	*n = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = ItemName(s)
	case 't':
		*n = "true"
	case 'f', 'n', '{', '[':
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		if f != 0 {
			*n = ItemName(formatNumber(f))
		}
	}
	return nil
}
