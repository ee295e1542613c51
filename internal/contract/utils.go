package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/commitlog/schema"
)

// Color variables for console output.
var (
	AddedColor    = color.New(color.FgGreen, color.Bold) // AddedColor marks new files.
	DeletedColor  = color.New(color.FgRed, color.Bold)   // DeletedColor marks removed files.
	ModifiedColor = color.New(color.FgYellow)            // ModifiedColor marks edits in place.
	RenamedColor  = color.New(color.FgCyan)              // RenamedColor marks renames and copies.
	OtherColor    = color.New(color.FgMagenta)
)

// GetColorChangeType returns a colored change-type letter for console output (table).
func GetColorChangeType(ct schema.ChangeType) string {
	text := string(ct)

	switch ct {
	case schema.AddedChange:
		return AddedColor.Sprint(text)
	case schema.DeletedChange:
		return DeletedColor.Sprint(text)
	case schema.ModifiedChange:
		return ModifiedColor.Sprint(text)
	case schema.RenamedChange, schema.CopiedChange:
		return RenamedColor.Sprint(text)
	default:
		return OtherColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// SiblingPath returns path with its extension replaced by suffix, e.g.
// "out/history.parquet" + "_diffs.parquet" gives "out/history_diffs.parquet".
func SiblingPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix
}

// LogFatal logs an error and exits the program with the exit code of its kind.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(ExitCode(err))
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for the "..." prefix and at least one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// TruncateText shortens free text to maxWidth runes with an ellipsis suffix.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
