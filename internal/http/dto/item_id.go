package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ItemID accepts an item id given either as a JSON number or a string.
// Values without a leading integer leave Valid false instead of failing
// decoding, so the lookup reports a missing item.
type ItemID struct {
	Value int
	Valid bool
}

func (id *ItemID) UnmarshalJSON(data []byte) error {
	*id = ItemID{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		id.Value, id.Valid = ParseItemID(raw)
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return nil
	}
	id.Value, id.Valid = ParseItemID(formatNumber(num))
	return nil
}

// ParseItemID reads the integer prefix of raw: leading whitespace, an optional
// sign, then decimal digits or a 0x-prefixed hex run. Anything after the
// prefix is ignored, so "1abc" and "1e3" are both 1.
func ParseItemID(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil || n > math.MaxInt32 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return int(n), true
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && (c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'):
		return true
	}
	return false
}

// formatNumber renders f the way a JSON client would print it back: plain
// decimal notation for ordinary magnitudes, exponent form outside them.
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
