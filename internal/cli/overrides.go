package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/fieldmap/internal/mapping"
)

// overrides adjusts the seed mappings before a preview or transform. Entries
// come from flags or the mappings section of the config file:
//
//	mappings:
//	  target: ["contact.homePhone=Account.PersonMobilePhone"]
//	  disable: ["flags.doNotCall"]
//	  fix: ["lastName=toUpperCase", "accountType=defaultValue:Other"]
//	  unfix: ["customerId=toUpperCase"]
type overrides struct {
	Target  []string // source=targetField; unknown sources are appended
	Disable []string // source
	Fix     []string // source=ruleID, or source=ruleID:value for value rules
	Unfix   []string // source=ruleID
}

var overrideKeys = map[string]string{
	"mappings.target":  "target",
	"mappings.disable": "disable",
	"mappings.fix":     "fix",
	"mappings.unfix":   "unfix",
}

func addOverrideFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSlice("target", nil, "retarget a mapping: source=TargetField (repeatable)")
	f.StringSlice("disable", nil, "disable the mapping of a source field (repeatable)")
	f.StringSlice("fix", nil, "enable a fix: source=ruleID or source=ruleID:value (repeatable)")
	f.StringSlice("unfix", nil, "disable a fix: source=ruleID (repeatable)")
}

func (a *app) overrides(cmd *cobra.Command) (overrides, error) {
	if err := a.bindFlags(cmd, overrideKeys); err != nil {
		return overrides{}, err
	}
	return overrides{
		Target:  a.v.GetStringSlice("mappings.target"),
		Disable: a.v.GetStringSlice("mappings.disable"),
		Fix:     a.v.GetStringSlice("mappings.fix"),
		Unfix:   a.v.GetStringSlice("mappings.unfix"),
	}, nil
}

// buildMappings applies o to the seed list. Retargets run first so fix edits
// apply to the new target's rule set.
func buildMappings(o overrides) ([]mapping.FieldMapping, error) {
	ms := mapping.Seed()

	for _, entry := range o.Target {
		src, target, err := splitPair(entry)
		if err != nil {
			return nil, fmt.Errorf("--target: %w", err)
		}
		i := mapping.IndexOf(ms, src)
		if i < 0 {
			m, err := mapping.New(src, target)
			if err != nil {
				return nil, fmt.Errorf("--target %s: %w", entry, err)
			}
			ms = append(ms, m)
			continue
		}
		if ms[i], err = mapping.SetTargetField(ms[i], target); err != nil {
			return nil, fmt.Errorf("--target %s: %w", entry, err)
		}
	}

	for _, src := range o.Disable {
		i, err := find(ms, strings.TrimSpace(src))
		if err != nil {
			return nil, fmt.Errorf("--disable: %w", err)
		}
		ms[i] = mapping.SetMappingEnabled(ms[i], false)
	}

	for _, entry := range o.Fix {
		src, rule, err := splitPair(entry)
		if err != nil {
			return nil, fmt.Errorf("--fix: %w", err)
		}
		i, err := find(ms, src)
		if err != nil {
			return nil, fmt.Errorf("--fix: %w", err)
		}
		id, value, hasValue := strings.Cut(rule, ":")
		if hasValue {
			if ms[i], err = mapping.SetFixValue(ms[i], id, value); err != nil {
				return nil, fmt.Errorf("--fix %s: %w", entry, err)
			}
		}
		if ms[i], err = mapping.ToggleFix(ms[i], id, true); err != nil {
			return nil, fmt.Errorf("--fix %s: %w", entry, err)
		}
	}

	for _, entry := range o.Unfix {
		src, id, err := splitPair(entry)
		if err != nil {
			return nil, fmt.Errorf("--unfix: %w", err)
		}
		i, err := find(ms, src)
		if err != nil {
			return nil, fmt.Errorf("--unfix: %w", err)
		}
		if ms[i], err = mapping.ToggleFix(ms[i], id, false); err != nil {
			return nil, fmt.Errorf("--unfix %s: %w", entry, err)
		}
	}

	return ms, nil
}

func splitPair(entry string) (key, value string, err error) {
	key, value, ok := strings.Cut(entry, "=")
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if !ok || key == "" || value == "" {
		return "", "", fmt.Errorf("%q is not in source=value form", entry)
	}
	return key, value, nil
}

func find(ms []mapping.FieldMapping, src string) (int, error) {
	if i := mapping.IndexOf(ms, src); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("no mapping for source field %q", src)
}
