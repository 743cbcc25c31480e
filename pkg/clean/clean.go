// Package clean runs the full cleaning pipeline for one dataset: header
// aliasing, field normalization, invalid-row filtering, dedup, and CSV
// output, with per-step progress logging.
package clean

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/hazyhaar/crmclean/pkg/dedup"
	"github.com/hazyhaar/crmclean/pkg/record"
	"github.com/hazyhaar/crmclean/pkg/schema"
)

// ErrMissingColumn is returned when the dataset's required column (name for
// accounts, email for contacts) is absent under every known alias.
var ErrMissingColumn = errors.New("required column not found")

// Stats summarizes one cleaning run.
type Stats struct {
	Original          int     `json:"original_count"`
	InvalidFiltered   int     `json:"invalid_filtered"`
	DuplicatesRemoved int     `json:"duplicates_removed"`
	Final             int     `json:"final_count"`
	RetainedPct       float64 `json:"data_retained_pct"`
}

// Cleaner runs the pipeline for one schema.
type Cleaner struct {
	schema *schema.Schema
	logger *slog.Logger
}

// New returns a Cleaner for the given schema. A nil logger falls back to
// slog.Default.
func New(s *schema.Schema, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{schema: s, logger: logger}
}

// Schema returns the schema this cleaner runs on.
func (c *Cleaner) Schema() *schema.Schema {
	return c.schema
}

// Rows cleans already-materialized records: normalize fields, drop invalid
// rows, deduplicate, and stamp the source column. Record field names must
// already be canonical (the CSV reader and the API layer both guarantee
// this). A column counts as present when any input row carries it.
func (c *Cleaner) Rows(rows []record.Record) ([]record.Record, Stats, error) {
	columns := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			columns[col] = true
		}
	}
	return c.clean(rows, columns)
}

func (c *Cleaner) clean(rows []record.Record, columns map[string]bool) ([]record.Record, Stats, error) {
	stats := Stats{Original: len(rows)}

	var normalizeRow func(record.Record) bool
	switch c.schema.Kind {
	case schema.KindAccount:
		normalizeRow = cleanAccount
	case schema.KindContact:
		normalizeRow = cleanContact
	default:
		return nil, stats, fmt.Errorf("%w: %q", schema.ErrUnknownKind, c.schema.Kind)
	}

	kept := make([]record.Record, 0, len(rows))
	for _, row := range rows {
		if normalizeRow(row) {
			kept = append(kept, row)
		}
	}
	stats.InvalidFiltered = stats.Original - len(kept)
	c.logger.Info("filtered invalid rows", "kind", c.schema.Kind, "removed", stats.InvalidFiltered)

	resolve, err := dedup.ResolverFor(c.schema.KeyStrategy)
	if err != nil {
		return nil, stats, fmt.Errorf("schema %s: %w", c.schema.Kind, err)
	}

	res := dedup.Deduplicate(kept, resolve, c.schema.CompletenessFields)
	stats.DuplicatesRemoved = res.Removed
	c.logger.Info("deduplicated", "kind", c.schema.Kind, "removed", res.Removed)

	// Exports without a status column get the default; a blank cell in an
	// existing status column stays null.
	if c.schema.Kind == schema.KindAccount && !columns["status"] {
		for _, survivor := range res.Survivors {
			survivor.Set("status", "prospect")
		}
	}

	for _, survivor := range res.Survivors {
		survivor.Set("source", "sheet")
	}

	stats.Final = len(res.Survivors)
	if stats.Original > 0 {
		stats.RetainedPct = math.Round(float64(stats.Final)/float64(stats.Original)*1000) / 10
	}
	return res.Survivors, stats, nil
}

// File reads a CSV export, cleans it, and writes the result. This is the
// CLI entry point; exit-code policy lives in the caller.
func (c *Cleaner) File(inputPath, outputPath string) (Stats, error) {
	c.logger.Info("reading input", "kind", c.schema.Kind, "path", inputPath)
	rows, columns, err := c.readCSV(inputPath)
	if err != nil {
		return Stats{}, err
	}
	c.logger.Info("loaded rows", "count", len(rows))

	survivors, stats, err := c.clean(rows, columns)
	if err != nil {
		return stats, err
	}

	c.logger.Info("writing output", "path", outputPath, "rows", stats.Final)
	if err := c.writeCSV(outputPath, survivors); err != nil {
		return stats, err
	}
	return stats, nil
}
