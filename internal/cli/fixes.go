package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/fieldmap/internal/catalog"
	"github.com/JonMunkholm/fieldmap/internal/fixes"
)

func (a *app) fixesCmd() *cobra.Command {
	var target, typeName string
	cmd := &cobra.Command{
		Use:   "fixes",
		Short: "Show the default data fixes for a target field or field type",
		Example: `  fieldmap fixes --target Account.Phone
  fieldmap fixes --type currency`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.bindFlags(cmd, map[string]string{"output.format": "format"}); err != nil {
				return err
			}
			rules, err := resolveRules(target, typeName)
			if err != nil {
				return err
			}
			if a.v.GetString("output.format") == "json" {
				return writeJSONTo(cmd.OutOrStdout(), rules)
			}
			return renderRules(cmd.OutOrStdout(), rules)
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "target field API name")
	cmd.Flags().StringVar(&typeName, "type", "", "field type or fix set name, e.g. currency or \"Date/Time\"")
	cmd.Flags().String("format", "table", "output format: table or json")
	cmd.MarkFlagsMutuallyExclusive("target", "type")
	cmd.MarkFlagsOneRequired("target", "type")
	return cmd
}

// resolveRules returns the default rules for a catalog field, or for a type
// given either by display name or by fix set name.
func resolveRules(target, typeName string) ([]fixes.Rule, error) {
	if target != "" {
		return fixes.DefaultsForField(target)
	}
	var t catalog.SemanticType
	if err := t.UnmarshalText([]byte(typeName)); err == nil {
		return fixes.DefaultRuleSet(t), nil
	}
	for _, s := range fixes.Sets() {
		if strings.EqualFold(string(s), typeName) {
			return fixes.RulesFor(s), nil
		}
	}
	return nil, fmt.Errorf("unknown field type %q", typeName)
}

func renderRules(w io.Writer, rules []fixes.Rule) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDEFAULT\tGROUP\tLABEL\tEXAMPLE")
	for _, r := range rules {
		state := "off"
		if r.Enabled {
			state = "on"
		}
		group := r.Group
		if group == "" {
			group = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, state, group, r.Label, r.Example)
	}
	return tw.Flush()
}
