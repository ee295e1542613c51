// Package core has the commit-history logic: mode dispatch and remote assembly.
package core

import (
	"context"
	"time"

	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/internal/github"
	"github.com/huangsam/commitlog/internal/logger"
	"github.com/huangsam/commitlog/internal/outwriter"
	"github.com/huangsam/commitlog/schema"
)

// ExecuteHistory builds the history selected by cfg and writes it in the configured format.
// Nothing is written when acquisition fails.
func ExecuteHistory(ctx context.Context, cfg *contract.Config, reader contract.HistoryReader, client contract.RemoteClient) error {
	start := time.Now()
	records, err := GetHistory(ctx, cfg, reader, client)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	logger.Debugf("built history of %d commits in %s", len(records), duration)
	if err := outwriter.WriteCommits(records, cfg, duration); err != nil {
		return err
	}
	logger.Infof("wrote %d commits from %s source as %s", len(records), cfg.Source, cfg.Output)
	return nil
}

// GetHistory dispatches to the local reader or the remote assembler based on cfg.Source.
func GetHistory(ctx context.Context, cfg *contract.Config, reader contract.HistoryReader, client contract.RemoteClient) ([]schema.CommitRecord, error) {
	switch cfg.Source {
	case schema.LocalSource:
		return reader.ReadHistory(ctx, cfg.RepoPath, cfg.NumCommits)
	case schema.RemoteSource:
		owner, repo, err := github.ParseRepoURL(cfg.RepoURL)
		if err != nil {
			return nil, err
		}
		return ReadRemote(ctx, client, owner, repo, cfg.NumCommits, cfg.ResolvedBranch(), cfg.History.Workers)
	default:
		return nil, contract.NewError(contract.InvalidInput, "unknown source mode '%s'", cfg.Source)
	}
}
