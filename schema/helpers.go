package schema

import (
	"strings"
	"unicode"
)

// remoteStatuses maps GitHub file status strings onto change types.
var remoteStatuses = map[string]ChangeType{
	"added":     AddedChange,
	"removed":   DeletedChange,
	"modified":  ModifiedChange,
	"renamed":   RenamedChange,
	"copied":    CopiedChange,
	"changed":   TypeChangedChange,
	"unchanged": ModifiedChange,
}

// NormalizeChangeType maps a source-specific status onto a single-letter change type.
// Single letters are upper-cased as-is; known GitHub status words are looked up;
// anything else falls back to the upper-cased first letter, or UnknownChange when empty.
func NormalizeChangeType(status string) ChangeType {
	status = strings.TrimSpace(status)
	if status == "" {
		return UnknownChange
	}
	if ct, ok := remoteStatuses[strings.ToLower(status)]; ok {
		return ct
	}
	first := []rune(status)[0]
	return ChangeType(string(unicode.ToUpper(first)))
}

// NewFileChange builds a FileChange and fills in LinesChanged.
func NewFileChange(file string, insertions, deletions int) FileChange {
	return FileChange{
		File:         file,
		Insertions:   insertions,
		Deletions:    deletions,
		LinesChanged: insertions + deletions,
	}
}

// AggregateStats sums per-file changes into the commit-level totals.
func AggregateStats(changes []FileChange) FileStats {
	var stats FileStats
	for _, c := range changes {
		stats.Insertions += c.Insertions
		stats.Deletions += c.Deletions
		stats.Lines += c.LinesChanged
	}
	stats.Files = len(changes)
	return stats
}

// AggregateHistoryStats sums the totals across a whole history.
func AggregateHistoryStats(records []CommitRecord) FileStats {
	var stats FileStats
	for _, r := range records {
		s := r.Stats()
		stats.Insertions += s.Insertions
		stats.Deletions += s.Deletions
		stats.Lines += s.Lines
		stats.Files += s.Files
	}
	return stats
}

// TrimMessage strips the surrounding whitespace git and the API leave around commit messages.
func TrimMessage(message string) string {
	return strings.TrimSpace(message)
}

// FirstLine returns the first line of a message with surrounding whitespace removed.
func FirstLine(message string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return strings.TrimSpace(line)
}

// cleanParts cleans a slice of name parts by trimming non-alphanumeric punctuation from ends,
// and additionally trims trailing periods for looser handling.
func cleanParts(parts []string) []string {
	var cleaned []string
	for _, p := range parts {
		cp := strings.TrimFunc(p, func(r rune) bool {
			if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\'' || r == '.' {
				return false
			}
			return true
		})
		cp = strings.TrimSuffix(cp, ".")
		if cp != "" {
			cleaned = append(cleaned, cp)
		}
	}
	return cleaned
}

// AbbreviateName formats "Samuel Huang" to "Samuel H" for narrow author columns.
// Bot accounts such as dependabot[bot] are returned unchanged.
func AbbreviateName(name string) string {
	trimmedName := strings.TrimSpace(name)
	if strings.Contains(name, "[bot]") {
		return strings.Join(strings.Fields(trimmedName), " ")
	}

	trimmedName = strings.Trim(trimmedName, "()\"'`")
	cleaned := cleanParts(strings.Fields(trimmedName))

	switch {
	case len(cleaned) >= 2:
		first := cleaned[0]
		last := []rune(cleaned[len(cleaned)-1])
		return first + " " + string(last[0])
	case len(cleaned) == 1:
		return cleaned[0]
	default:
		return trimmedName
	}
}
