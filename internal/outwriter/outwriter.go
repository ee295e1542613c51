// Package outwriter has output and writer logic for normalized commit histories.
package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/internal/parquet"
	"github.com/huangsam/commitlog/schema"
)

// WriteCommits outputs the history, dispatching based on the output format configured.
func WriteCommits(records []schema.CommitRecord, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForCommits(w, records)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForCommits(w, records)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteHistory(records, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCommitTable(w, records, cfg, duration)
		}, "Wrote table")
	}
	return nil
}
