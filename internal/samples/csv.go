package samples

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/fieldmap/internal/transform"
)

// ErrNoHeader is returned for CSV input without a header row.
var ErrNoHeader = errors.New("csv has no header row")

// CSVReader reads records from CSV input whose first row names the fields.
// Rows that are entirely blank are skipped. Short rows leave the missing
// fields empty; cells beyond the header are ignored.
type CSVReader struct {
	r      *csv.Reader
	header []string
	line   int
}

// NewCSVReader reads the header row from r.
func NewCSVReader(r io.Reader) (*CSVReader, error) {
	cr := csv.NewReader(cleanInput(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	seen := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, fmt.Errorf("header column %d is empty", i+1)
		}
		if seen[h] {
			return nil, fmt.Errorf("duplicate header column %q", h)
		}
		seen[h] = true
		header[i] = h
	}

	return &CSVReader{r: cr, header: header, line: 1}, nil
}

// Header returns the field names in file order.
func (c *CSVReader) Header() []string {
	out := make([]string, len(c.header))
	copy(out, c.header)
	return out
}

// Next returns the next record, or io.EOF when the input is exhausted.
func (c *CSVReader) Next() (transform.Record, error) {
	for {
		row, err := c.r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("line %d: %w", c.line+1, err)
		}
		c.line++
		if blank(row) {
			continue
		}

		rec := make(transform.Record, len(c.header))
		for i, h := range c.header {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		return rec, nil
	}
}

// ReadCSV reads every record from r.
func ReadCSV(r io.Reader) ([]transform.Record, error) {
	cr, err := NewCSVReader(r)
	if err != nil {
		return nil, err
	}
	var out []transform.Record
	for {
		rec, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
