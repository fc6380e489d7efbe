// Package mapping models source→target field associations and the fix rules
// attached to them.
//
// Every operation is a pure function: it takes a FieldMapping (or a slice of
// them) and returns an updated copy. Callers never mutate a mapping in place.
package mapping

import (
	"errors"
	"fmt"

	"github.com/JonMunkholm/fieldmap/internal/catalog"
	"github.com/JonMunkholm/fieldmap/internal/fixes"
)

// ErrIndexOutOfRange is returned by ApplyMappingEdit for an index outside
// the mapping list.
var ErrIndexOutOfRange = errors.New("mapping index out of range")

// ErrInvalidMapping is wrapped by Validate and SetFixValue failures.
var ErrInvalidMapping = errors.New("invalid mapping")

// FieldMapping associates one source field with one target field.
//
// Fixes always holds the complete rule set of the target field's semantic
// type, in library order. A disabled mapping keeps its fixes.
type FieldMapping struct {
	SourceField string       `json:"sourceField"`
	TargetField string       `json:"targetField"`
	Enabled     bool         `json:"enabled"`
	Fixes       []fixes.Rule `json:"fixes"`
}

// New returns an enabled mapping with the target field's default fixes.
func New(sourceField, targetField string) (FieldMapping, error) {
	return SetTargetField(FieldMapping{SourceField: sourceField, Enabled: true}, targetField)
}

// Clone returns a deep copy of m.
func Clone(m FieldMapping) FieldMapping {
	out := m
	if m.Fixes != nil {
		out.Fixes = make([]fixes.Rule, len(m.Fixes))
		copy(out.Fixes, m.Fixes)
	}
	return out
}

// SetTargetField points m at a new target field and replaces its fixes with
// that field's default rule set.
//
// Any customisation of the previous fixes is discarded: fixes belong to the
// target field's type, so nothing is carried across. Fails with
// *catalog.UnknownFieldError for fields outside the catalog.
func SetTargetField(m FieldMapping, targetField string) (FieldMapping, error) {
	rules, err := fixes.DefaultsForField(targetField)
	if err != nil {
		return m, err
	}
	out := Clone(m)
	out.TargetField = targetField
	out.Fixes = rules
	return out, nil
}

// ToggleFix enables or disables one fix on m.
//
// Enabling a rule that belongs to an exclusivity group disables every other
// rule of that group on the same mapping. Disabling never enables anything,
// so a group may end up with no selected rule. Fails with
// *fixes.UnknownRuleError when ruleID is not among m's fixes.
func ToggleFix(m FieldMapping, ruleID string, enabled bool) (FieldMapping, error) {
	idx := indexOf(m.Fixes, ruleID)
	if idx < 0 {
		return m, &fixes.UnknownRuleError{RuleID: ruleID}
	}

	out := Clone(m)
	out.Fixes[idx].Enabled = enabled

	group := out.Fixes[idx].Group
	if !enabled || group == "" {
		return out, nil
	}
	for i := range out.Fixes {
		if i != idx && out.Fixes[i].Group == group {
			out.Fixes[i].Enabled = false
		}
	}
	return out, nil
}

// SetFixValue sets the payload of a ValueInput fix.
func SetFixValue(m FieldMapping, ruleID, value string) (FieldMapping, error) {
	idx := indexOf(m.Fixes, ruleID)
	if idx < 0 {
		return m, &fixes.UnknownRuleError{RuleID: ruleID}
	}
	if m.Fixes[idx].Kind != fixes.ValueInput {
		return m, fmt.Errorf("%w: fix rule %q does not take a value", ErrInvalidMapping, ruleID)
	}
	out := Clone(m)
	out.Fixes[idx].Value = value
	return out, nil
}

// SetMappingEnabled switches m on or off. Fix states are left untouched, so
// re-enabling restores the previous configuration.
func SetMappingEnabled(m FieldMapping, enabled bool) FieldMapping {
	out := Clone(m)
	out.Enabled = enabled
	return out
}

// ApplyMappingEdit returns a copy of mappings with the entry at index
// replaced by updated. The input slice is not modified.
func ApplyMappingEdit(mappings []FieldMapping, index int, updated FieldMapping) ([]FieldMapping, error) {
	if index < 0 || index >= len(mappings) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(mappings))
	}
	out := CloneAll(mappings)
	out[index] = Clone(updated)
	return out, nil
}

// CloneAll deep-copies a mapping list.
func CloneAll(mappings []FieldMapping) []FieldMapping {
	if mappings == nil {
		return nil
	}
	out := make([]FieldMapping, len(mappings))
	for i, m := range mappings {
		out[i] = Clone(m)
	}
	return out
}

// Validate checks that m's fixes are exactly the rule set of its target
// field's type, in library order, with at most one enabled rule per group.
func Validate(m FieldMapping) error {
	t, err := catalog.ResolveSemanticType(m.TargetField)
	if err != nil {
		return err
	}
	want := fixes.DefaultRuleSet(t)
	if len(want) != len(m.Fixes) {
		return fmt.Errorf("%w: %s: expected %d fixes for %s, got %d",
			ErrInvalidMapping, m.SourceField, len(want), fixes.SetFor(t), len(m.Fixes))
	}

	selected := make(map[string]string)
	for i, r := range m.Fixes {
		if r.ID != want[i].ID {
			return fmt.Errorf("%w: %s: fix %d is %q, expected %q", ErrInvalidMapping, m.SourceField, i, r.ID, want[i].ID)
		}
		if r.Group == "" || !r.Enabled {
			continue
		}
		if prev, ok := selected[r.Group]; ok {
			return fmt.Errorf("%w: %s: %q and %q are both enabled in group %s",
				ErrInvalidMapping, m.SourceField, prev, r.ID, r.Group)
		}
		selected[r.Group] = r.ID
	}
	return nil
}

// Normalize rebuilds m's fixes from the library definition for its target
// field, keeping only the Enabled and Value settings of rules the caller
// supplied. It lets clients send partial or reordered fix lists.
func Normalize(m FieldMapping) (FieldMapping, error) {
	rules, err := fixes.DefaultsForField(m.TargetField)
	if err != nil {
		return m, err
	}
	given := make(map[string]fixes.Rule, len(m.Fixes))
	for _, r := range m.Fixes {
		given[r.ID] = r
	}
	out := Clone(m)
	out.Fixes = rules
	for i := range out.Fixes {
		if r, ok := given[out.Fixes[i].ID]; ok {
			out.Fixes[i].Enabled = r.Enabled
			out.Fixes[i].Value = r.Value
		}
	}
	return out, Validate(out)
}

func indexOf(rules []fixes.Rule, id string) int {
	for i, r := range rules {
		if r.ID == id {
			return i
		}
	}
	return -1
}
