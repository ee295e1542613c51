// Package parquet exports normalized commit histories to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/schema"
	"github.com/parquet-go/parquet-go"
)

// DiffsSuffix replaces the extension of the commits file to name the diffs file.
const DiffsSuffix = "_diffs.parquet"

// CommitRow represents a single commit with its aggregate stats.
type CommitRow struct {
	// Position is the zero-based index of the commit, newest first
	Position int32 `parquet:"position,snappy"`

	// Hash is the full commit SHA
	Hash string `parquet:"hash,snappy"`

	// Author is the author display name
	Author string `parquet:"author,snappy"`

	// Date is the ISO-8601 author timestamp as reported by the source
	Date string `parquet:"date,snappy"`

	// Subject is the first line of the message
	Subject string `parquet:"subject,snappy"`

	// Message is the full trimmed message
	Message string `parquet:"message,snappy"`

	FilesChanged int32 `parquet:"files_changed,snappy"`
	Insertions   int32 `parquet:"insertions,snappy"`
	Deletions    int32 `parquet:"deletions,snappy"`
	LinesChanged int32 `parquet:"lines_changed,snappy"`
}

// FileDiffRow represents one file of one commit. Rows exist for every file change;
// diff columns are null when the source provided no textual diff.
type FileDiffRow struct {
	// Hash references the parent commit
	Hash string `parquet:"hash,snappy"`

	// File is the path after the change
	File string `parquet:"file,snappy"`

	Insertions   int32 `parquet:"insertions,snappy"`
	Deletions    int32 `parquet:"deletions,snappy"`
	LinesChanged int32 `parquet:"lines_changed,snappy"`

	// FileA is the path before the change (nullable)
	FileA *string `parquet:"file_a,optional,snappy"`

	// FileB is the path after the change (nullable)
	FileB *string `parquet:"file_b,optional,snappy"`

	// ChangeType is the single-letter change classification (nullable)
	ChangeType *string `parquet:"change_type,optional,snappy"`

	// DiffText is the unified diff (nullable)
	DiffText *string `parquet:"diff_text,optional,zstd"`
}

// ConvertCommitRecords flattens records into commit rows.
func ConvertCommitRecords(records []schema.CommitRecord) []CommitRow {
	rows := make([]CommitRow, 0, len(records))
	for i, r := range records {
		stats := r.Stats()
		rows = append(rows, CommitRow{
			Position:     int32(i),
			Hash:         r.Hash,
			Author:       r.Author,
			Date:         r.Date,
			Subject:      r.Subject(),
			Message:      r.Message,
			FilesChanged: int32(stats.Files),
			Insertions:   int32(stats.Insertions),
			Deletions:    int32(stats.Deletions),
			LinesChanged: int32(stats.Lines),
		})
	}
	return rows
}

// ConvertFileDiffRecords joins each commit's file changes with its diffs by path.
// Diffs without a matching file change still get a row of their own.
func ConvertFileDiffRecords(records []schema.CommitRecord) []FileDiffRow {
	var rows []FileDiffRow
	for _, r := range records {
		diffsByPath := make(map[string]schema.FileDiff, len(r.FileDiffs))
		for _, d := range r.FileDiffs {
			diffsByPath[d.Path()] = d
		}

		for _, fc := range r.FileChanges {
			row := FileDiffRow{
				Hash:         r.Hash,
				File:         fc.File,
				Insertions:   int32(fc.Insertions),
				Deletions:    int32(fc.Deletions),
				LinesChanged: int32(fc.LinesChanged),
			}
			if d, ok := diffsByPath[fc.File]; ok {
				fillDiff(&row, d)
				delete(diffsByPath, fc.File)
			}
			rows = append(rows, row)
		}

		for _, d := range r.FileDiffs {
			if _, ok := diffsByPath[d.Path()]; !ok {
				continue
			}
			row := FileDiffRow{Hash: r.Hash, File: d.Path()}
			fillDiff(&row, d)
			rows = append(rows, row)
		}
	}
	return rows
}

func fillDiff(row *FileDiffRow, d schema.FileDiff) {
	ct := string(d.ChangeType)
	row.FileA = optional(d.FileA)
	row.FileB = optional(d.FileB)
	row.ChangeType = &ct
	row.DiffText = &d.DiffText
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// WriteHistory writes the commits to outputPath and the file diffs next to it,
// e.g. history.parquet and history_diffs.parquet.
func WriteHistory(records []schema.CommitRecord, outputPath string) error {
	if outputPath == "" {
		return contract.NewError(contract.InvalidInput, "parquet output requires an output file")
	}
	if err := WriteCommitsParquet(ConvertCommitRecords(records), outputPath); err != nil {
		return err
	}
	diffsPath := contract.SiblingPath(outputPath, DiffsSuffix)
	if err := WriteFileDiffsParquet(ConvertFileDiffRecords(records), diffsPath); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "Wrote parquet to %s and %s\n", outputPath, diffsPath)
	return nil
}

// WriteCommitsParquet writes a slice of CommitRow structs to a Parquet file.
func WriteCommitsParquet(data []CommitRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteFileDiffsParquet writes a slice of FileDiffRow structs to a Parquet file.
func WriteFileDiffsParquet(data []FileDiffRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows using a schema inferred from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	return writeAndClose(file, data)
}

// writeAndClose encodes rows and the footer to wc, then closes it.
// A failed close is reported even when encoding succeeded.
func writeAndClose[T any](wc io.WriteCloser, data []T) (err error) {
	defer func() {
		if closeErr := wc.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close parquet file: %w", closeErr)
		}
	}()

	writer := parquet.NewGenericWriter[T](wc)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the footer; the file is unreadable without it
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
