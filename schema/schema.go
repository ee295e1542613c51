// Package schema has the normalized commit-history models shared by every part of commitlog.
package schema

// CommitRecord is one normalized commit. Records are built once per run by either
// acquisition path and are never mutated afterwards.
type CommitRecord struct {
	Hash        string       `json:"hash"`         // Full commit SHA, never empty
	Author      string       `json:"author"`       // Author display name
	Date        string       `json:"date"`         // ISO-8601 author timestamp
	FileChanges []FileChange `json:"file_changes"` // Per-file line stats, in source order
	FileDiffs   []FileDiff   `json:"file_diffs"`   // Per-file unified diffs, in source order
	Message     string       `json:"message"`      // Commit message trimmed of surrounding whitespace
}

// FileChange holds the line stats of a single file touched by a commit.
type FileChange struct {
	File         string `json:"file"`
	Insertions   int    `json:"insertions"`
	Deletions    int    `json:"deletions"`
	LinesChanged int    `json:"lines_changed"`
}

// FileDiff holds the textual diff of a single file touched by a commit.
// Local diffs leave FileA empty for additions and FileB empty for deletions;
// remote diffs always carry both paths as reported by the API.
type FileDiff struct {
	FileA      string     `json:"file_a,omitempty"`
	FileB      string     `json:"file_b,omitempty"`
	ChangeType ChangeType `json:"change_type"`
	DiffText   string     `json:"diff_text"`
}

// FileStats is the aggregate view of a commit's file changes.
type FileStats struct {
	Insertions int `json:"insertions"`
	Deletions  int `json:"deletions"`
	Lines      int `json:"lines"`
	Files      int `json:"files"`
}

// CommitSummary is a single entry of a remote commit listing, before its diff is fetched.
type CommitSummary struct {
	SHA        string
	AuthorName string
	AuthorDate string
	Message    string
}

// Stats derives the aggregate insertions/deletions/lines totals for the commit.
func (c CommitRecord) Stats() FileStats {
	return AggregateStats(c.FileChanges)
}

// Subject returns the first line of the commit message.
func (c CommitRecord) Subject() string {
	return FirstLine(c.Message)
}

// ShortHash returns the abbreviated 7-character hash.
func (c CommitRecord) ShortHash() string {
	if len(c.Hash) <= ShortHashLength {
		return c.Hash
	}
	return c.Hash[:ShortHashLength]
}

// Path returns the most specific path for the diff: the new path, or the old one for deletions.
func (d FileDiff) Path() string {
	if d.FileB != "" {
		return d.FileB
	}
	return d.FileA
}
