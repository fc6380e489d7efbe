package transform

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/JonMunkholm/fieldmap/internal/fixes"
)

// Casers are stateful and not safe for concurrent use, so each call builds
// its own.

// Trim removes surrounding whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// Upper upper-cases s.
func Upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// Lower lower-cases s.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Title capitalises the first letter of every whitespace-delimited word and
// lower-cases the rest. Whitespace is preserved as-is.
func Title(s string) string {
	lowered := Lower(s)

	var b strings.Builder
	b.Grow(len(lowered))
	atWordStart := true
	for len(lowered) > 0 {
		r, size := utf8.DecodeRuneInString(lowered)
		lowered = lowered[size:]
		if unicode.IsSpace(r) {
			atWordStart = true
			b.WriteRune(r)
			continue
		}
		if atWordStart {
			r = unicode.ToTitle(r)
			atWordStart = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DefaultIfEmpty substitutes def for an empty value.
func DefaultIfEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// CodeToLabel replaces a source code with the picklist label configured for
// the target field. Unknown codes are returned unchanged.
func CodeToLabel(s, targetField string) string {
	if label, ok := fixes.CodeLabel(targetField, s); ok {
		return label
	}
	return s
}
