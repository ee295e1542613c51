// Package gitlocal reads commit history from a repository on the local filesystem
// using go-git, so no git executable is required.
package gitlocal

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/internal/logger"
	"github.com/huangsam/commitlog/schema"
)

// Reader implements contract.HistoryReader over go-git.
type Reader struct {
	// DetectRenames pairs deletions and additions of similar files into renames.
	DetectRenames bool
}

var _ contract.HistoryReader = &Reader{} // Compile-time check

// NewReader returns a Reader with rename detection enabled.
func NewReader() *Reader {
	return &Reader{DetectRenames: true}
}

// ReadHistory returns up to n commits reachable from HEAD, newest first.
func (r *Reader) ReadHistory(ctx context.Context, repoPath string, n int) ([]schema.CommitRecord, error) {
	if n <= 0 {
		return nil, contract.NewError(contract.InvalidInput, "number of commits must be positive (received %d)", n).WithContext(repoPath)
	}
	info, err := os.Stat(repoPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, contract.NewError(contract.InvalidInput, "local repo path '%s' does not exist", repoPath).WithContext(repoPath)
		}
		return nil, contract.WrapError(err, contract.InvalidInput, "cannot access local repo path '%s'", repoPath).WithContext(repoPath)
	}
	if !info.IsDir() {
		return nil, contract.NewError(contract.InvalidInput, "'%s' is not a valid git repository", repoPath).WithContext(repoPath)
	}

	// The path must be the repository root; parent directories are not searched.
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, contract.WrapError(err, contract.InvalidInput, "'%s' is not a valid git repository", repoPath).WithContext(repoPath)
		}
		return nil, internalError(err, repoPath)
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, contract.NewError(contract.NotFound, "no commits found in repository at '%s'", repoPath).WithContext(repoPath)
		}
		return nil, internalError(err, repoPath)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, internalError(err, repoPath)
	}
	defer iter.Close()

	records := make([]schema.CommitRecord, 0, min(n, schema.MaxPerPage))
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		record, err := r.buildRecord(ctx, c)
		if err != nil {
			return fmt.Errorf("commit %s: %w", c.Hash, err)
		}
		records = append(records, record)
		if len(records) >= n {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, internalError(err, repoPath)
	}

	if len(records) == 0 {
		return nil, contract.NewError(contract.NotFound, "no commits found in repository at '%s'", repoPath).WithContext(repoPath)
	}
	logger.Debugf("read %d commits from %s", len(records), repoPath)
	return records, nil
}

// buildRecord normalizes a single commit and its diff against the first parent.
func (r *Reader) buildRecord(ctx context.Context, c *object.Commit) (schema.CommitRecord, error) {
	changes, err := r.treeChanges(ctx, c)
	if err != nil {
		return schema.CommitRecord{}, err
	}

	fileChanges := make([]schema.FileChange, 0, len(changes))
	fileDiffs := make([]schema.FileDiff, 0, len(changes))
	for _, ch := range changes {
		fc, fd, err := normalizeChange(ctx, ch)
		if err != nil {
			return schema.CommitRecord{}, err
		}
		fileChanges = append(fileChanges, fc)
		fileDiffs = append(fileDiffs, fd)
	}

	return schema.CommitRecord{
		Hash:        c.Hash.String(),
		Author:      c.Author.Name,
		Date:        c.Author.When.Format(contract.DateTimeFormat),
		FileChanges: fileChanges,
		FileDiffs:   fileDiffs,
		Message:     schema.TrimMessage(c.Message),
	}, nil
}

// treeChanges diffs the commit tree against its first parent, or the empty tree for a root commit.
func (r *Reader) treeChanges(ctx context.Context, c *object.Commit) (object.Changes, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading tree: %w", err)
	}

	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("reading parent: %w", err)
		}
		if parentTree, err = parent.Tree(); err != nil {
			return nil, fmt.Errorf("reading parent tree: %w", err)
		}
	}

	opts := object.DefaultDiffTreeOptions
	if !r.DetectRenames {
		opts = &object.DiffTreeOptions{}
	}
	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, opts)
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}
	return changes, nil
}

// internalError wraps an unexpected traversal failure.
func internalError(err error, repoPath string) *contract.HistoryError {
	return contract.WrapError(err, contract.InternalError, "error processing local repository '%s'", repoPath).WithContext(repoPath)
}
