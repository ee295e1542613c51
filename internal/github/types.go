package github

import (
	"fmt"
	"strings"

	"github.com/huangsam/commitlog/schema"
)

// commitAuthor is the git author block of a commit, not the GitHub account.
type commitAuthor struct {
	Name *string `json:"name"`
	Date *string `json:"date"`
}

// listEntry is one element of GET /repos/{owner}/{repo}/commits.
type listEntry struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author  *commitAuthor `json:"author"`
		Message *string       `json:"message"`
	} `json:"commit"`
}

// summary validates the entry and converts it to a schema.CommitSummary.
func (e listEntry) summary() (schema.CommitSummary, error) {
	switch {
	case e.SHA == "":
		return schema.CommitSummary{}, fmt.Errorf("missing sha")
	case e.Commit.Author == nil:
		return schema.CommitSummary{}, fmt.Errorf("commit %s: missing commit.author", e.SHA)
	case e.Commit.Author.Name == nil:
		return schema.CommitSummary{}, fmt.Errorf("commit %s: missing commit.author.name", e.SHA)
	case e.Commit.Author.Date == nil:
		return schema.CommitSummary{}, fmt.Errorf("commit %s: missing commit.author.date", e.SHA)
	case e.Commit.Message == nil:
		return schema.CommitSummary{}, fmt.Errorf("commit %s: missing commit.message", e.SHA)
	}
	return schema.CommitSummary{
		SHA:        e.SHA,
		AuthorName: *e.Commit.Author.Name,
		AuthorDate: *e.Commit.Author.Date,
		Message:    schema.TrimMessage(*e.Commit.Message),
	}, nil
}

// commitDetail is the subset of GET /repos/{owner}/{repo}/commits/{sha} we read.
type commitDetail struct {
	Files []commitFile `json:"files"`
}

// commitFile is one element of a commit detail's files array.
type commitFile struct {
	Filename         *string `json:"filename"`
	PreviousFilename string  `json:"previous_filename"`
	Status           string  `json:"status"`
	Additions        int     `json:"additions"`
	Deletions        int     `json:"deletions"`
	Patch            *string `json:"patch"` // absent for binary and very large files
}

// normalize splits the files array into line stats and textual diffs.
// Files without a patch only contribute stats.
func (d commitDetail) normalize() ([]schema.FileChange, []schema.FileDiff, error) {
	changes := make([]schema.FileChange, 0, len(d.Files))
	diffs := make([]schema.FileDiff, 0, len(d.Files))

	for i, f := range d.Files {
		if f.Filename == nil || *f.Filename == "" {
			return nil, nil, fmt.Errorf("file entry %d: missing filename", i)
		}
		name := *f.Filename
		changes = append(changes, schema.NewFileChange(name, f.Additions, f.Deletions))

		if f.Patch == nil {
			continue
		}
		if strings.TrimSpace(f.Status) == "" {
			return nil, nil, fmt.Errorf("file entry %d (%s): missing status", i, name)
		}
		fileA := f.PreviousFilename
		if fileA == "" {
			fileA = name
		}
		diffs = append(diffs, schema.FileDiff{
			FileA:      fileA,
			FileB:      name,
			ChangeType: schema.NormalizeChangeType(f.Status),
			DiffText:   *f.Patch,
		})
	}
	return changes, diffs, nil
}
