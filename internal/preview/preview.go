// Package preview builds the side-by-side raw vs. fixed view of sample
// records that operators review before a run.
package preview

import (
	"github.com/JonMunkholm/fieldmap/internal/catalog"
	"github.com/JonMunkholm/fieldmap/internal/mapping"
	"github.com/JonMunkholm/fieldmap/internal/transform"
)

// Column describes one enabled mapping as a preview column.
type Column struct {
	Source string               `json:"source"`
	Target string               `json:"target"`
	Type   catalog.SemanticType `json:"type"`
}

// Summary contains counts over the transformed cells.
type Summary struct {
	TotalRows      int `json:"totalRows"`
	Columns        int `json:"columns"`
	ChangedCells   int `json:"changedCells"`   // fixed value differs from raw
	UnchangedCells int `json:"unchangedCells"` // non-empty and left as-is
	EmptyCells     int `json:"emptyCells"`
}

// Result is the complete preview. Raw[i] and Transformed[i] describe the
// same input row.
type Result struct {
	Raw         []transform.Record `json:"raw"`
	Transformed []transform.Record `json:"transformed"`
	Columns     []Column           `json:"columns"`
	Summary     Summary            `json:"summary"`
}

// BuildPreview transforms every sample record through mappings.
//
// One output row is produced per input row, in input order, even when a row
// maps to nothing. Raw holds copies of the inputs; samples are not modified.
func BuildPreview(samples []transform.Record, mappings []mapping.FieldMapping) Result {
	cols := Columns(mappings)
	res := Result{
		Raw:         make([]transform.Record, len(samples)),
		Transformed: make([]transform.Record, len(samples)),
		Columns:     cols,
		Summary: Summary{
			TotalRows: len(samples),
			Columns:   len(cols),
		},
	}

	for i, rec := range samples {
		res.Raw[i] = copyRecord(rec)
		res.Transformed[i] = transform.TransformRecord(rec, mappings)
	}

	for i := range samples {
		for _, c := range cols {
			raw := res.Raw[i][c.Source]
			fixed := res.Transformed[i][c.Target]
			switch {
			case fixed == "":
				res.Summary.EmptyCells++
			case fixed != raw:
				res.Summary.ChangedCells++
			default:
				res.Summary.UnchangedCells++
			}
		}
	}

	return res
}

// Columns lists the enabled mappings in order. When several mappings write
// the same target only the last is listed, matching TransformRecord.
func Columns(mappings []mapping.FieldMapping) []Column {
	last := make(map[string]int, len(mappings))
	for i, m := range mappings {
		if m.Enabled {
			last[m.TargetField] = i
		}
	}

	cols := make([]Column, 0, len(last))
	for i, m := range mappings {
		if !m.Enabled || last[m.TargetField] != i {
			continue
		}
		cols = append(cols, Column{
			Source: m.SourceField,
			Target: m.TargetField,
			Type:   catalog.TypeOrText(m.TargetField),
		})
	}
	return cols
}

func copyRecord(r transform.Record) transform.Record {
	if r == nil {
		return transform.Record{}
	}
	out := make(transform.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
