// Package fixes is the library of data-cleaning rules that can be attached to
// a field mapping.
//
// Rules are grouped into ordered rule sets, one per kind of target data
// (currency, date, picklist, ...). The order of a set is the order in which
// enabled rules are applied. Rules that share a Group are alternatives: at
// most one of them may be enabled on a mapping.
package fixes

import "fmt"

// Kind tells a form how to present a rule.
type Kind int

const (
	Toggle          Kind = iota // independent checkbox
	ExclusiveChoice             // radio button within its Group
	ValueInput                  // checkbox carrying a Value payload
)

var kindNames = [...]string{"toggle", "exclusiveChoice", "valueInput"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown fix kind %q", string(b))
}

// Exclusivity groups.
const (
	GroupDateFormat    = "dateFormat"
	GroupPhoneFormat   = "phoneFormat"
	GroupBooleanFormat = "booleanFormat"
	GroupPercentFormat = "percentFormat"
	GroupTextCase      = "textCase"
)

// Rule is one data fix as attached to a mapping.
type Rule struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Example     string `json:"example"`
	Enabled     bool   `json:"enabled"`
	Group       string `json:"group,omitempty"` // empty: toggles independently
	Kind        Kind   `json:"kind"`
	Value       string `json:"value,omitempty"` // ValueInput payload
	Recommended bool   `json:"recommended"`     // enabled in the library default
}

// UnknownRuleError is returned when a rule id is not part of a mapping's
// rule set or of the library.
type UnknownRuleError struct {
	RuleID string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown fix rule %q", e.RuleID)
}
