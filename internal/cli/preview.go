package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/fieldmap/internal/preview"
	"github.com/JonMunkholm/fieldmap/internal/samples"
	"github.com/JonMunkholm/fieldmap/internal/transform"
)

func (a *app) previewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show raw and fixed values of sample records under the mapping configuration",
		Long: `preview runs sample records through the default mappings, adjusted by
--target, --disable, --fix and --unfix, and prints the raw value next to the
fixed value for every enabled column.

Samples come from --samples (a CSV file with a header row), from --generate,
or from the built-in FIS extract.`,
		Example: `  fieldmap preview
  fieldmap preview --generate 20 --seed 7 --format json
  fieldmap preview --samples extract.csv --disable flags.doNotCall --fix lastName=toUpperCase`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.bindFlags(cmd, map[string]string{
				"output.format":    "format",
				"preview.samples":  "samples",
				"preview.generate": "generate",
				"preview.seed":     "seed",
			}); err != nil {
				return err
			}
			o, err := a.overrides(cmd)
			if err != nil {
				return err
			}
			ms, err := buildMappings(o)
			if err != nil {
				return err
			}
			rows, err := a.loadSamples()
			if err != nil {
				return err
			}

			res := preview.BuildPreview(rows, ms)
			a.log.Info("preview built",
				"rows", res.Summary.TotalRows,
				"columns", res.Summary.Columns,
				"changed_cells", res.Summary.ChangedCells,
			)

			switch format := a.v.GetString("output.format"); format {
			case "json":
				return writeJSONTo(cmd.OutOrStdout(), res)
			case "table":
				return renderPreview(cmd.OutOrStdout(), res)
			default:
				return fmt.Errorf("unknown format %q (want table or json)", format)
			}
		},
	}
	f := cmd.Flags()
	f.String("samples", "", "CSV file of source records")
	f.Int("generate", 0, "generate this many messy sample records")
	f.Int64("seed", 1, "seed for --generate")
	f.String("format", "table", "output format: table or json")
	addOverrideFlags(cmd)
	cmd.MarkFlagsMutuallyExclusive("samples", "generate")
	return cmd
}

func (a *app) loadSamples() ([]transform.Record, error) {
	if path := a.v.GetString("preview.samples"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer closeQuietly(f, a.log, path)
		rows, err := samples.ReadCSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		a.log.Debug("samples loaded", "path", path, "rows", len(rows))
		return rows, nil
	}
	n := a.v.GetInt("preview.generate")
	if n < 0 {
		return nil, fmt.Errorf("--generate must not be negative, got %d", n)
	}
	if n > 0 {
		return samples.Generate(n, a.v.GetInt64("preview.seed")), nil
	}
	return samples.Builtin(), nil
}

// renderPreview prints one block per sample row. Fixed values that differ
// from the raw value are marked with an asterisk.
func renderPreview(w io.Writer, res preview.Result) error {
	s := res.Summary
	if len(res.Columns) == 0 {
		_, err := fmt.Fprintln(w, "No mappings are enabled.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i := range res.Raw {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "ROW %d\n", i+1)
		fmt.Fprintln(tw, "SOURCE\tTARGET\tRAW\tFIXED\t")
		for _, c := range res.Columns {
			raw := res.Raw[i][c.Source]
			fixed := res.Transformed[i][c.Target]
			mark := ""
			if fixed != raw {
				mark = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%q\t%q\t%s\n", c.Source, c.Target, raw, fixed, mark)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d rows, %d columns: %d values fixed, %d unchanged, %d empty\n",
		s.TotalRows, s.Columns, s.ChangedCells, s.UnchangedCells, s.EmptyCells)
	return err
}
