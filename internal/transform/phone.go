package transform

import (
	"regexp"
	"strings"
)

// PhoneStyle is the output layout of NormalizePhone.
type PhoneStyle int

const (
	PhoneNational PhoneStyle = iota // (XXX) XXX-XXXX
	PhoneNANP                       // XXX-XXX-XXXX
	PhoneE164                       // +<country>XXXXXXXXXX
)

// extRegex finds a trailing extension: "ext 12", "Ext. 12", "extension: 12",
// "x12".
var extRegex = regexp.MustCompile(`(?i)\s*(?:ext(?:ension)?\.?|x)\s*[:#]?\s*(\d+)\s*$`)

// defaultCountryCode is used by E.164 when the input carries no prefix.
const defaultCountryCode = "1"

// NormalizePhone formats a phone number.
//
// An extension is split off first and re-attached after formatting. The
// remaining digits must number at least ten: the last ten are the national
// number and any leading digits are the country prefix. Shorter input is
// returned unchanged.
func NormalizePhone(s string, style PhoneStyle) string {
	main, ext := s, ""
	if loc := extRegex.FindStringSubmatchIndex(s); loc != nil {
		main, ext = s[:loc[0]], s[loc[2]:loc[3]]
	}

	digits := digitsOnly(main)
	if len(digits) < 10 {
		return s
	}
	national := digits[len(digits)-10:]
	country := digits[:len(digits)-10]
	area, exchange, line := national[:3], national[3:6], national[6:]

	var b strings.Builder
	switch style {
	case PhoneE164:
		if country == "" {
			country = defaultCountryCode
		}
		b.WriteString("+" + country + national)
		if ext != "" {
			b.WriteString(";ext=" + ext)
		}
		return b.String()
	case PhoneNANP:
		if country != "" {
			b.WriteString("+" + country + " ")
		}
		b.WriteString(area + "-" + exchange + "-" + line)
	default:
		if country != "" {
			b.WriteString("+" + country + " ")
		}
		b.WriteString("(" + area + ") " + exchange + "-" + line)
	}
	if ext != "" {
		b.WriteString(" ext. " + ext)
	}
	return b.String()
}

func digitsOnly(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
