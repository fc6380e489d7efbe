package transform

import "strings"

// BoolStyle is the output representation of NormalizeBoolean.
type BoolStyle int

const (
	BoolText BoolStyle = iota // true / false
	BoolYN                    // Y / N
	Bool10                    // 1 / 0
)

// parseBool accepts the spellings found in source extracts:
// true/false, t/f, yes/no, y/n, 1/0, on/off.
func parseBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1", "on":
		return true, true
	case "false", "f", "no", "n", "0", "off":
		return false, true
	default:
		return false, false
	}
}

// NormalizeBoolean re-emits a boolean in the requested representation.
// Unrecognised values are returned unchanged.
func NormalizeBoolean(s string, style BoolStyle) string {
	v, ok := parseBool(s)
	if !ok {
		return s
	}
	switch style {
	case BoolYN:
		if v {
			return "Y"
		}
		return "N"
	case Bool10:
		if v {
			return "1"
		}
		return "0"
	default:
		if v {
			return "true"
		}
		return "false"
	}
}
