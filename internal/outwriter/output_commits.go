package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeCommitTable generates and writes the human-readable table, followed by diffs when enabled.
func writeCommitTable(writer io.Writer, records []schema.CommitRecord, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	table.Header([]string{"Hash", "Date", "Author", "Files", "+/-", "Types", "Subject"})

	// 2. Configure alignment to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	// 3. Populate Rows
	subjectWidth := GetMaxSubjectWidth(cfg)
	data := make([][]string, 0, len(records))
	for _, r := range records {
		stats := r.Stats()
		data = append(data, []string{
			r.ShortHash(),
			formatDate(r.Date),
			schema.AbbreviateName(r.Author),
			strconv.Itoa(stats.Files),
			fmt.Sprintf("+%d/-%d", stats.Insertions, stats.Deletions),
			formatChangeTypes(r.FileDiffs, cfg.UseColors),
			contract.TruncateText(r.Subject(), subjectWidth),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	total := schema.AggregateHistoryStats(records)
	if _, err := fmt.Fprintf(writer, "Showing %d commits (files: %d, insertions: %d, deletions: %d)\n",
		len(records), total.Files, total.Insertions, total.Deletions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "History built in %v from %s source\n", duration.Round(time.Millisecond), cfg.Source); err != nil {
		return err
	}

	if cfg.ShowDiffs {
		return writeDiffs(writer, records, cfg)
	}
	return nil
}

// formatChangeTypes renders per-type counts such as "M2 A1", coloring each letter when enabled.
func formatChangeTypes(diffs []schema.FileDiff, useColors bool) string {
	order, counts := changeTypeCounts(diffs)
	parts := make([]string, 0, len(order))
	for _, ct := range order {
		letter := string(ct)
		if useColors {
			letter = contract.GetColorChangeType(ct)
		}
		parts = append(parts, letter+strconv.Itoa(counts[ct]))
	}
	return strings.Join(parts, " ")
}

// writeCSVResultsForCommits writes one CSV row per commit with its aggregate stats.
func writeCSVResultsForCommits(w io.Writer, records []schema.CommitRecord) error {
	header := []string{"hash", "date", "author", "files", "insertions", "deletions", "lines_changed", "diffs", "subject"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range records {
			stats := r.Stats()
			row := []string{
				r.Hash,
				r.Date,
				r.Author,
				strconv.Itoa(stats.Files),
				strconv.Itoa(stats.Insertions),
				strconv.Itoa(stats.Deletions),
				strconv.Itoa(stats.Lines),
				strconv.Itoa(len(r.FileDiffs)),
				r.Subject(),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// writeJSONResultsForCommits writes the full records, which is the payload handed to summarizers.
func writeJSONResultsForCommits(w io.Writer, records []schema.CommitRecord) error {
	if records == nil {
		records = []schema.CommitRecord{}
	}
	return writeJSON(w, records)
}
