package fixes

import (
	"fmt"

	"github.com/JonMunkholm/fieldmap/internal/catalog"
)

// Set names an ordered rule set.
type Set string

const (
	SetText     Set = "text"
	SetDate     Set = "date"
	SetNumber   Set = "number"
	SetCurrency Set = "currency"
	SetPercent  Set = "percent"
	SetPicklist Set = "picklist"
	SetBoolean  Set = "boolean"
	SetPhone    Set = "phone"
)

// Rule ids.
const (
	TrimWhitespace   = "trimWhitespace"
	ToUpperCase      = "toUpperCase"
	ToLowerCase      = "toLowerCase"
	ToTitleCase      = "toTitleCase"
	DefaultValue     = "defaultValue"
	RemoveCurrency   = "removeCurrency"
	HandleNegative   = "handleNegative"
	ConvertNotation  = "convertNotation"
	ConvertThousands = "convertThousands"
	DecimalPlaces    = "decimalPlaces"
	RemoveCommas     = "removeCommas"
	RemovePercent    = "removePercent"
	PercentToDecimal = "percentToDecimal"
	DateISO          = "dateISO"
	DateUS           = "dateUS"
	DateEU           = "dateEU"
	CodesToLabels    = "codesToLabels"
	PhoneNational    = "phoneNational"
	PhoneNANP        = "phoneNANP"
	PhoneE164        = "phoneE164"
	BooleanText      = "booleanText"
	BooleanYN        = "booleanYN"
	Boolean10        = "boolean10"
)

// Shared rule definitions. A rule id means the same thing in every set that
// lists it; only the example text may differ.
var (
	trim        = Rule{ID: TrimWhitespace, Label: "Trim whitespace", Example: "  text  → text", Enabled: true}
	upper       = Rule{ID: ToUpperCase, Label: "Convert to uppercase", Example: "abc123 → ABC123", Group: GroupTextCase, Kind: ExclusiveChoice}
	lower       = Rule{ID: ToLowerCase, Label: "Convert to lowercase", Example: "ABC123 → abc123", Group: GroupTextCase, Kind: ExclusiveChoice}
	title       = Rule{ID: ToTitleCase, Label: "Convert to title case", Example: "JOHN DOE → John Doe", Group: GroupTextCase, Kind: ExclusiveChoice}
	defaultVal  = Rule{ID: DefaultValue, Label: "Set default value for empty fields:", Kind: ValueInput}
	notation    = Rule{ID: ConvertNotation, Label: "Convert financial notations", Example: "1.5M → 1500000"}
	twoDecimals = Rule{ID: DecimalPlaces, Label: "Convert to 2-decimal values", Example: "1234 → 1234.00"}
)

func with(r Rule, example string, enabled bool) Rule {
	r.Example = example
	r.Enabled = enabled
	return r
}

var ruleSets = map[Set][]Rule{
	SetCurrency: {
		{ID: RemoveCurrency, Label: "Remove currency symbols", Example: "$1,234.56 → 1234.56", Enabled: true},
		{ID: HandleNegative, Label: "Handle negative amounts", Example: "(500) → -500", Enabled: true},
		with(notation, "1.5M → 1500000", true),
		{ID: ConvertThousands, Label: "Convert from thousands to actual value", Example: "75 → 75000"},
		twoDecimals,
	},
	SetDate: {
		{ID: DateISO, Label: "Standardize to ISO format", Example: "12/10/2025 → 2025-12-10", Enabled: true, Group: GroupDateFormat, Kind: ExclusiveChoice},
		{ID: DateUS, Label: "Standardize to US format", Example: "2025-12-10 → 12/10/2025", Group: GroupDateFormat, Kind: ExclusiveChoice},
		{ID: DateEU, Label: "Standardize to EU format", Example: "12/10/2025 → 10/12/2025", Group: GroupDateFormat, Kind: ExclusiveChoice},
	},
	SetPicklist: {
		with(trim, "  Active  → Active", true),
		{ID: CodesToLabels, Label: "Convert codes to labels", Example: "CHK → Checking, SAV → Savings", Enabled: true},
		defaultVal,
	},
	SetNumber: {
		{ID: RemoveCommas, Label: "Remove comma separators", Example: "1,234 → 1234", Enabled: true},
		with(notation, "1.5K → 1500", false),
		with(twoDecimals, "12 → 12.00", false),
	},
	SetPercent: {
		{ID: RemovePercent, Label: "Remove percent symbol only", Example: "5.25% → 5.25", Enabled: true, Group: GroupPercentFormat, Kind: ExclusiveChoice},
		{ID: PercentToDecimal, Label: "Convert percent to decimal", Example: "5.25% → 0.0525", Group: GroupPercentFormat, Kind: ExclusiveChoice},
	},
	SetText: {
		trim,
		upper,
		lower,
		title,
		defaultVal,
	},
	SetPhone: {
		with(trim, "  810-971-8698  → 810-971-8698", true),
		{ID: PhoneNational, Label: "National format", Example: "8109718698 → (810) 971-8698", Enabled: true, Group: GroupPhoneFormat, Kind: ExclusiveChoice},
		{ID: PhoneNANP, Label: "NANP format", Example: "(810) 971.8698 → 810-971-8698", Group: GroupPhoneFormat, Kind: ExclusiveChoice},
		{ID: PhoneE164, Label: "E.164 format", Example: "(810) 971-8698 → +18109718698", Group: GroupPhoneFormat, Kind: ExclusiveChoice},
	},
	SetBoolean: {
		{ID: BooleanText, Label: "true / false", Example: "Y → true", Enabled: true, Group: GroupBooleanFormat, Kind: ExclusiveChoice},
		{ID: BooleanYN, Label: "Y / N", Example: "true → Y", Group: GroupBooleanFormat, Kind: ExclusiveChoice},
		{ID: Boolean10, Label: "1 / 0", Example: "yes → 1", Group: GroupBooleanFormat, Kind: ExclusiveChoice},
	},
}

// definitions indexes every rule id across all sets.
var definitions = make(map[string]Rule)

func init() {
	for set, rules := range ruleSets {
		for i := range rules {
			rules[i].Recommended = rules[i].Enabled
			r := rules[i]
			if prev, ok := definitions[r.ID]; ok {
				if prev.Group != r.Group || prev.Kind != r.Kind {
					panic(fmt.Sprintf("fix rule %s redefined inconsistently in set %s", r.ID, set))
				}
				continue
			}
			definitions[r.ID] = r
		}
	}
}

// SetFor returns the rule set used for a semantic type.
func SetFor(t catalog.SemanticType) Set {
	switch t {
	case catalog.Date, catalog.DateTime:
		return SetDate
	case catalog.Number:
		return SetNumber
	case catalog.Currency:
		return SetCurrency
	case catalog.Percent:
		return SetPercent
	case catalog.Picklist:
		return SetPicklist
	case catalog.Boolean:
		return SetBoolean
	case catalog.Phone:
		return SetPhone
	default:
		return SetText
	}
}

// DefaultRuleSet returns a fresh copy of the rule set for a semantic type,
// with every rule at its library default. Unknown types get the text set.
func DefaultRuleSet(t catalog.SemanticType) []Rule {
	return RulesFor(SetFor(t))
}

// RulesFor returns a fresh copy of a named rule set.
// Unknown set names get the text set.
func RulesFor(s Set) []Rule {
	src, ok := ruleSets[s]
	if !ok {
		src = ruleSets[SetText]
	}
	out := make([]Rule, len(src))
	copy(out, src)
	return out
}

// DefaultsForField resolves a target field through the catalog and returns
// its default rule set. Fails with *catalog.UnknownFieldError for fields
// outside the catalog.
func DefaultsForField(targetField string) ([]Rule, error) {
	t, err := catalog.ResolveSemanticType(targetField)
	if err != nil {
		return nil, err
	}
	return DefaultRuleSet(t), nil
}

// Sets returns the names of all rule sets in display order.
func Sets() []Set {
	return []Set{SetText, SetDate, SetNumber, SetCurrency, SetPercent, SetPicklist, SetBoolean, SetPhone}
}

// Lookup returns the library definition of a rule id.
func Lookup(id string) (Rule, bool) {
	r, ok := definitions[id]
	return r, ok
}

// GroupOf returns the exclusivity group of a rule id, or "" when the rule
// toggles independently. Fails for ids the library does not define.
func GroupOf(id string) (string, error) {
	r, ok := definitions[id]
	if !ok {
		return "", &UnknownRuleError{RuleID: id}
	}
	return r.Group, nil
}
