package clean

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/hazyhaar/crmclean/pkg/record"
)

// readCSV loads an export into records keyed by canonical column names,
// reporting which canonical columns the header carried. Columns the schema
// does not know are dropped; the required column must be present under some
// alias or the read fails with ErrMissingColumn.
func (c *Cleaner) readCSV(path string) ([]record.Record, map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	// Transcode non-UTF-8 exports declared in the schema.
	var reader io.Reader = f
	if enc := c.schema.Format.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}

	r := csv.NewReader(reader)
	if delim := c.schema.Format.Delimiter; delim != "" {
		r.Comma = []rune(delim)[0]
	}
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	mapping := c.schema.ColumnMapping(header)
	canonicalByIdx := make([]string, len(header))
	columns := make(map[string]bool, len(mapping))
	for i, col := range header {
		canonicalByIdx[i] = mapping[col]
		if mapping[col] != "" {
			columns[mapping[col]] = true
		}
	}

	if !columns[c.schema.Required] {
		return nil, nil, fmt.Errorf("%w: %q (header: %s)", ErrMissingColumn, c.schema.Required, strings.Join(header, ", "))
	}

	var rows []record.Record
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}

		row := make(record.Record, len(mapping))
		for i, value := range fields {
			if i >= len(canonicalByIdx) || canonicalByIdx[i] == "" {
				continue
			}
			if value != "" {
				row[canonicalByIdx[i]] = value
			}
		}
		rows = append(rows, row)
	}
	return rows, columns, nil
}

// writeCSV writes records in schema column order, absent fields as empty
// cells.
func (c *Cleaner) writeCSV(path string, rows []record.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	w := csv.NewWriter(f)
	if delim := c.schema.Format.Delimiter; delim != "" {
		w.Comma = []rune(delim)[0]
	}

	if err := w.Write(c.schema.Columns); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}

	cells := make([]string, len(c.schema.Columns))
	for _, row := range rows {
		for i, col := range c.schema.Columns {
			value, _ := row.Raw(col)
			cells[i] = value
		}
		if err := w.Write(cells); err != nil {
			f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush output: %w", err)
	}
	return f.Close()
}

func isUTF8(enc string) bool {
	switch strings.ToLower(enc) {
	case "utf-8", "utf8", "":
		return true
	}
	return false
}
