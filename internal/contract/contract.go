// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/commitlog/schema"
)

// HistoryReader reads a normalized commit history from a local repository.
// This allows the dispatch logic to be tested without a repository on disk.
type HistoryReader interface {
	// ReadHistory returns up to n commits reachable from HEAD, newest first.
	ReadHistory(ctx context.Context, repoPath string, n int) ([]schema.CommitRecord, error)
}

// RemoteClient defines the remote API operations needed to assemble a history.
type RemoteClient interface {
	// ListCommits returns at most n listing entries for the branch, newest first.
	ListCommits(ctx context.Context, owner, repo string, n int, branch string) ([]schema.CommitSummary, error)

	// FetchDiff returns the per-file changes and diffs of a single commit.
	FetchDiff(ctx context.Context, commitURL string) ([]schema.FileChange, []schema.FileDiff, error)

	// CommitURL builds the detail URL of a commit.
	CommitURL(owner, repo, sha string) string
}
