// Package transform applies a mapping's enabled fix rules to source records.
//
// Every fix is total: malformed input is returned unchanged so it stays
// visible in the preview instead of being dropped or zeroed.
package transform

import (
	"fmt"
	"sort"
	"sync"

	"github.com/JonMunkholm/fieldmap/internal/catalog"
	"github.com/JonMunkholm/fieldmap/internal/fixes"
	"github.com/JonMunkholm/fieldmap/internal/mapping"
)

// Record is one flat row keyed by field name. Dotted source names such as
// "balances.currentBalance" are opaque keys.
type Record map[string]string

// Context carries what a fix may need beyond the value itself.
type Context struct {
	TargetField string
	Rule        fixes.Rule
}

// Fix transforms one value.
type Fix func(value string, ctx Context) string

var (
	fixRegistry   = make(map[string]Fix)
	fixRegistryMu sync.RWMutex
)

// RegisterFix binds a rule id to its implementation.
// Panics if the id is already bound.
func RegisterFix(ruleID string, fn Fix) {
	fixRegistryMu.Lock()
	defer fixRegistryMu.Unlock()

	if _, exists := fixRegistry[ruleID]; exists {
		panic(fmt.Sprintf("fix already registered: %s", ruleID))
	}
	fixRegistry[ruleID] = fn
}

// LookupFix returns the implementation bound to a rule id.
func LookupFix(ruleID string) (Fix, bool) {
	fixRegistryMu.RLock()
	defer fixRegistryMu.RUnlock()

	fn, ok := fixRegistry[ruleID]
	return fn, ok
}

func plain(fn func(string) string) Fix {
	return func(v string, _ Context) string { return fn(v) }
}

func init() {
	RegisterFix(fixes.TrimWhitespace, plain(Trim))
	RegisterFix(fixes.ToUpperCase, plain(Upper))
	RegisterFix(fixes.ToLowerCase, plain(Lower))
	RegisterFix(fixes.ToTitleCase, plain(Title))
	RegisterFix(fixes.DefaultValue, func(v string, ctx Context) string {
		return DefaultIfEmpty(v, ctx.Rule.Value)
	})

	RegisterFix(fixes.RemoveCurrency, plain(StripCurrency))
	RegisterFix(fixes.HandleNegative, plain(NegateParens))
	RegisterFix(fixes.ConvertNotation, plain(ExpandNotation))
	RegisterFix(fixes.ConvertThousands, plain(ScaleThousands))
	RegisterFix(fixes.DecimalPlaces, plain(TwoDecimals))
	RegisterFix(fixes.RemoveCommas, plain(RemoveCommas))
	RegisterFix(fixes.RemovePercent, plain(StripPercent))
	RegisterFix(fixes.PercentToDecimal, plain(PercentToDecimal))

	RegisterFix(fixes.DateISO, func(v string, _ Context) string { return NormalizeDate(v, DateISO) })
	RegisterFix(fixes.DateUS, func(v string, _ Context) string { return NormalizeDate(v, DateUS) })
	RegisterFix(fixes.DateEU, func(v string, _ Context) string { return NormalizeDate(v, DateEU) })

	RegisterFix(fixes.CodesToLabels, func(v string, ctx Context) string {
		return CodeToLabel(v, ctx.TargetField)
	})

	RegisterFix(fixes.PhoneNational, func(v string, _ Context) string { return NormalizePhone(v, PhoneNational) })
	RegisterFix(fixes.PhoneNANP, func(v string, _ Context) string { return NormalizePhone(v, PhoneNANP) })
	RegisterFix(fixes.PhoneE164, func(v string, _ Context) string { return NormalizePhone(v, PhoneE164) })

	RegisterFix(fixes.BooleanText, func(v string, _ Context) string { return NormalizeBoolean(v, BoolText) })
	RegisterFix(fixes.BooleanYN, func(v string, _ Context) string { return NormalizeBoolean(v, BoolYN) })
	RegisterFix(fixes.Boolean10, func(v string, _ Context) string { return NormalizeBoolean(v, Bool10) })
}

// ApplyFixes runs the enabled rules of m over a single value.
//
// Rules run in the order the library declares them for the target's
// semantic type, whatever order m.Fixes happens to hold. Rules the library
// does not list for that type run afterwards in their stored order. Ids with
// no implementation are skipped.
func ApplyFixes(value string, m mapping.FieldMapping) string {
	enabled := orderedEnabled(m)
	for _, r := range enabled {
		fn, ok := LookupFix(r.ID)
		if !ok {
			continue
		}
		value = fn(value, Context{TargetField: m.TargetField, Rule: r})
	}
	return value
}

func orderedEnabled(m mapping.FieldMapping) []fixes.Rule {
	library := fixes.DefaultRuleSet(catalog.TypeOrText(m.TargetField))
	pos := make(map[string]int, len(library))
	for i, r := range library {
		pos[r.ID] = i
	}

	out := make([]fixes.Rule, 0, len(m.Fixes))
	for _, r := range m.Fixes {
		if r.Enabled {
			out = append(out, r)
		}
	}

	rank := func(id string) int {
		if p, ok := pos[id]; ok {
			return p
		}
		return len(library)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i].ID) < rank(out[j].ID)
	})
	return out
}

// TransformRecord maps one source record through every enabled mapping, in
// mapping order. A missing source key reads as "". Disabled mappings leave
// no key in the result. When two mappings share a target the later wins.
func TransformRecord(record Record, mappings []mapping.FieldMapping) Record {
	out := make(Record, len(mappings))
	for _, m := range mappings {
		if !m.Enabled {
			continue
		}
		out[m.TargetField] = ApplyFixes(record[m.SourceField], m)
	}
	return out
}
