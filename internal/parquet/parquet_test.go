package parquet

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/commitlog/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []schema.CommitRecord {
	return []schema.CommitRecord{
		{
			Hash:    "1111111111111111111111111111111111111111",
			Author:  "Ada Lovelace",
			Date:    "2024-03-01T12:00:00Z",
			Message: "Add engine\n\nFirst draft",
			FileChanges: []schema.FileChange{
				schema.NewFileChange("engine.go", 10, 2),
				schema.NewFileChange("logo.png", 0, 0),
			},
			FileDiffs: []schema.FileDiff{
				{FileA: "engine.go", FileB: "engine.go", ChangeType: schema.ModifiedChange, DiffText: "@@ -1 +1 @@\n-a\n+b"},
			},
		},
		{
			Hash:        "2222222222222222222222222222222222222222",
			Author:      "Bob Builder",
			Date:        "2024-02-28T08:30:00Z",
			Message:     "Remove legacy",
			FileChanges: []schema.FileChange{schema.NewFileChange("legacy.go", 0, 5)},
			FileDiffs: []schema.FileDiff{
				{FileA: "legacy.go", ChangeType: schema.DeletedChange, DiffText: "-gone"},
			},
		},
	}
}

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[T](file)
	defer reader.Close()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func TestCommitRowStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(CommitRow))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"position", "hash", "author", "date", "subject", "message",
		"files_changed", "insertions", "deletions", "lines_changed",
	}
	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestFileDiffRowStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(FileDiffRow))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"hash", "file", "insertions", "deletions", "lines_changed",
		"file_a", "file_b", "change_type", "diff_text",
	}
	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestConvertCommitRecords(t *testing.T) {
	rows := ConvertCommitRecords(sampleRecords())
	require.Len(t, rows, 2)

	assert.Equal(t, int32(0), rows[0].Position)
	assert.Equal(t, "Add engine", rows[0].Subject)
	assert.Equal(t, "Add engine\n\nFirst draft", rows[0].Message)
	assert.Equal(t, int32(2), rows[0].FilesChanged)
	assert.Equal(t, int32(10), rows[0].Insertions)
	assert.Equal(t, int32(2), rows[0].Deletions)
	assert.Equal(t, int32(12), rows[0].LinesChanged)

	assert.Equal(t, int32(1), rows[1].Position)
	assert.Equal(t, int32(5), rows[1].Deletions)
}

func TestConvertFileDiffRecords(t *testing.T) {
	rows := ConvertFileDiffRecords(sampleRecords())
	require.Len(t, rows, 3)

	engine := rows[0]
	assert.Equal(t, "engine.go", engine.File)
	require.NotNil(t, engine.ChangeType)
	assert.Equal(t, "M", *engine.ChangeType)
	require.NotNil(t, engine.DiffText)
	assert.Contains(t, *engine.DiffText, "+b")

	// No textual diff for binary files
	logo := rows[1]
	assert.Equal(t, "logo.png", logo.File)
	assert.Nil(t, logo.ChangeType)
	assert.Nil(t, logo.DiffText)
	assert.Nil(t, logo.FileA)

	legacy := rows[2]
	require.NotNil(t, legacy.FileA)
	assert.Equal(t, "legacy.go", *legacy.FileA)
	assert.Nil(t, legacy.FileB)
	assert.Equal(t, int32(5), legacy.LinesChanged)
}

func TestConvertFileDiffRecords_DiffWithoutChange(t *testing.T) {
	records := []schema.CommitRecord{{
		Hash:      "3333333",
		FileDiffs: []schema.FileDiff{{FileA: "a.go", FileB: "b.go", ChangeType: schema.RenamedChange}},
	}}
	rows := ConvertFileDiffRecords(records)
	require.Len(t, rows, 1)
	assert.Equal(t, "b.go", rows[0].File)
	assert.Equal(t, int32(0), rows[0].LinesChanged)
	require.NotNil(t, rows[0].ChangeType)
	assert.Equal(t, "R", *rows[0].ChangeType)
}

func TestWriteHistory(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "history.parquet")

	require.NoError(t, WriteHistory(sampleRecords(), outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	commits := readAll[CommitRow](t, outputPath)
	require.Len(t, commits, 2)
	assert.Equal(t, "1111111111111111111111111111111111111111", commits[0].Hash)
	assert.Equal(t, "Bob Builder", commits[1].Author)
	assert.Equal(t, "2024-02-28T08:30:00Z", commits[1].Date)

	diffsPath := filepath.Join(tmpDir, "history_diffs.parquet")
	diffs := readAll[FileDiffRow](t, diffsPath)
	require.Len(t, diffs, 3)
	assert.Equal(t, "engine.go", diffs[0].File)
	require.NotNil(t, diffs[0].DiffText)
	assert.Equal(t, "@@ -1 +1 @@\n-a\n+b", *diffs[0].DiffText)
	assert.Nil(t, diffs[1].DiffText, "Nullable diff should survive the round trip")
}

func TestWriteHistory_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty.parquet")

	require.NoError(t, WriteHistory(nil, outputPath))
	assert.Empty(t, readAll[CommitRow](t, outputPath))
	assert.Empty(t, readAll[FileDiffRow](t, filepath.Join(tmpDir, "empty_diffs.parquet")))
}

func TestWriteHistory_InvalidPath(t *testing.T) {
	err := WriteHistory(sampleRecords(), "/nonexistent/directory/history.parquet")
	assert.Error(t, err, "Should return error for invalid path")
}

func TestWriteHistory_MissingPath(t *testing.T) {
	err := WriteHistory(sampleRecords(), "")
	assert.Error(t, err)
}

// failingCloser buffers writes and fails on Close, like a file whose final flush is rejected.
type failingCloser struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return f.closeErr
}

func TestWriteAndClose(t *testing.T) {
	t.Run("close error is reported", func(t *testing.T) {
		diskFull := errors.New("no space left on device")
		wc := &failingCloser{closeErr: diskFull}

		err := writeAndClose(wc, ConvertCommitRecords(sampleRecords()))
		require.Error(t, err)
		assert.ErrorIs(t, err, diskFull)
		assert.True(t, wc.closed)
		assert.Positive(t, wc.Len(), "Rows and footer are written before closing")
	})

	t.Run("successful close", func(t *testing.T) {
		wc := &failingCloser{}
		require.NoError(t, writeAndClose(wc, ConvertFileDiffRecords(sampleRecords())))
		assert.True(t, wc.closed)
	})
}
