package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/fieldmap/internal/mapping"
	"github.com/JonMunkholm/fieldmap/internal/preview"
	"github.com/JonMunkholm/fieldmap/internal/samples"
	"github.com/JonMunkholm/fieldmap/internal/transform"
)

func (a *app) transformCmd() *cobra.Command {
	var in, out string
	var progress bool
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Apply the mapping configuration to a CSV extract",
		Long: `transform streams a CSV extract through the mappings and writes one output
row per input row. Output columns are the target fields of the enabled
mappings, in mapping order.`,
		Example: `  fieldmap transform --in extract.csv --out fsc.csv
  fieldmap transform --in extract.csv --fix firstName=toUpperCase > fsc.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := a.overrides(cmd)
			if err != nil {
				return err
			}
			ms, err := buildMappings(o)
			if err != nil {
				return err
			}

			src, err := os.Open(in)
			if err != nil {
				return err
			}
			defer closeQuietly(src, a.log, in)
			var size int64
			if fi, err := src.Stat(); err == nil {
				size = fi.Size()
			}

			var stats transformStats
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				stats, err = transformCSV(src, size, f, ms, a.log, progress)
				if err = closeOutput(f, err); err != nil {
					return err
				}
			} else {
				// The bar shares stdout with the rows.
				if stats, err = transformCSV(src, size, cmd.OutOrStdout(), ms, a.log, false); err != nil {
					return err
				}
			}
			a.log.Info("transform complete",
				"in", in,
				"rows", stats.Rows,
				"columns", stats.Columns,
				"changed_cells", stats.ChangedCells,
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input CSV extract")
	cmd.Flags().StringVar(&out, "out", "-", "output CSV file, - for stdout")
	cmd.Flags().BoolVar(&progress, "progress", true, "show a progress bar when writing to a file")
	_ = cmd.MarkFlagRequired("in")
	addOverrideFlags(cmd)
	return cmd
}

// closeOutput closes the output file and reports its error unless the
// transform already failed.
func closeOutput(f io.Closer, err error) error {
	if cerr := f.Close(); cerr != nil && err == nil {
		return fmt.Errorf("close output: %w", cerr)
	}
	return err
}

type transformStats struct {
	Rows         int
	Columns      int
	ChangedCells int
}

// transformCSV reads records from r and writes the target columns to w.
// size is the input length for progress reporting, 0 when unknown.
func transformCSV(r io.Reader, size int64, w io.Writer, ms []mapping.FieldMapping, log *slog.Logger, showProgress bool) (transformStats, error) {
	counter := samples.NewCountingReader(r, size)
	cr, err := samples.NewCSVReader(counter)
	if err != nil {
		return transformStats{}, err
	}

	cols := preview.Columns(ms)
	if len(cols) == 0 {
		return transformStats{}, errors.New("no mappings are enabled")
	}
	warnMissingSources(cr.Header(), cols, log)

	cw := csv.NewWriter(w)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Target
	}
	if err := cw.Write(header); err != nil {
		return transformStats{}, fmt.Errorf("write header: %w", err)
	}

	var bar *uiprogress.Bar
	if showProgress && size > 0 {
		uiprogress.Start()
		defer uiprogress.Stop()
		bar = uiprogress.AddBar(100).AppendCompleted().PrependElapsed()
	}

	stats := transformStats{Columns: len(cols)}
	shown := 0
	row := make([]string, len(cols))
	for {
		rec, err := cr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}

		fixed := transform.TransformRecord(rec, ms)
		for i, c := range cols {
			row[i] = fixed[c.Target]
			if row[i] != rec[c.Source] {
				stats.ChangedCells++
			}
		}
		if err := cw.Write(row); err != nil {
			return stats, fmt.Errorf("write row %d: %w", stats.Rows+1, err)
		}
		stats.Rows++

		if bar != nil {
			for p := counter.Progress(); shown < p; shown++ {
				bar.Incr()
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}
	return stats, nil
}

func warnMissingSources(header []string, cols []preview.Column, log *slog.Logger) {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for _, c := range cols {
		if !present[c.Source] {
			log.Warn("source field not in input, column will be empty", "source", c.Source, "target", c.Target)
		}
	}
}
