package core

import (
	"context"

	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/schema"
	"golang.org/x/sync/errgroup"
)

// ReadRemote lists the newest n commits of a branch and fetches each commit's diff
// on a pool of at most workers goroutines. Results keep the listing order.
// The first failure cancels the outstanding fetches and no partial history is returned.
func ReadRemote(ctx context.Context, client contract.RemoteClient, owner, repo string, n int, branch string, workers int) ([]schema.CommitRecord, error) {
	summaries, err := client.ListCommits(ctx, owner, repo, n, branch)
	if err != nil {
		return nil, asRemoteError(err, owner+"/"+repo)
	}

	records := make([]schema.CommitRecord, len(summaries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, s := range summaries {
		g.Go(func() error {
			commitURL := client.CommitURL(owner, repo, s.SHA)
			if err := gctx.Err(); err != nil {
				return asRemoteError(err, commitURL)
			}
			changes, diffs, err := client.FetchDiff(gctx, commitURL)
			if err != nil {
				return asRemoteError(err, commitURL)
			}
			records[i] = newRecord(s, changes, diffs)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, asRemoteError(err, owner+"/"+repo)
	}
	return records, nil
}

// newRecord joins a listing entry with its extracted diff.
func newRecord(s schema.CommitSummary, changes []schema.FileChange, diffs []schema.FileDiff) schema.CommitRecord {
	if changes == nil {
		changes = []schema.FileChange{}
	}
	if diffs == nil {
		diffs = []schema.FileDiff{}
	}
	return schema.CommitRecord{
		Hash:        s.SHA,
		Author:      s.AuthorName,
		Date:        s.AuthorDate,
		FileChanges: changes,
		FileDiffs:   diffs,
		Message:     schema.TrimMessage(s.Message),
	}
}

// asRemoteError keeps classified errors unchanged and classifies anything else as a remote failure.
func asRemoteError(err error, subject string) error {
	if contract.KindOf(err) != "" {
		return err
	}
	return contract.WrapError(err, contract.RemoteError, "error accessing remote repository '%s'", subject).WithContext(subject)
}
