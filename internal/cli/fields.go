package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/fieldmap/internal/catalog"
	"github.com/JonMunkholm/fieldmap/internal/fixes"
)

func (a *app) fieldsCmd() *cobra.Command {
	var object string
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the target fields a source field can map onto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.bindFlags(cmd, map[string]string{"output.format": "format"}); err != nil {
				return err
			}
			opts := filterOptions(catalog.Options(), object)
			if len(opts) == 0 {
				return fmt.Errorf("no target fields for object %q", object)
			}
			if a.v.GetString("output.format") == "json" {
				return writeJSONTo(cmd.OutOrStdout(), opts)
			}
			return renderFields(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&object, "object", "", "only list fields of this object, e.g. Account")
	cmd.Flags().String("format", "table", "output format: table or json")
	return cmd
}

func filterOptions(opts []catalog.Option, object string) []catalog.Option {
	if object == "" {
		return opts
	}
	out := opts[:0:0]
	for _, o := range opts {
		if strings.EqualFold(catalog.TargetField{Name: o.Value}.Object(), object) {
			out = append(out, o)
		}
	}
	return out
}

func renderFields(w io.Writer, opts []catalog.Option) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tTYPE\tFIX SET\tBADGES")
	for _, o := range opts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.Value, o.SemanticType, fixes.SetFor(o.SemanticType), strings.Join(o.Badges, ", "))
	}
	return tw.Flush()
}

func writeJSONTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
