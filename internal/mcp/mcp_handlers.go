package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/huangsam/commitlog/core"
	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	reader  contract.HistoryReader
	client  contract.RemoteClient
}

func (h *toolHandler) handleGetLocalHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Source = schema.LocalSource
	if cfg.RepoPath == "" {
		cfg.RepoPath = "."
	}
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	abs, err := filepath.Abs(contract.ExpandHome(cfg.RepoPath))
	if err != nil {
		return toolError(contract.WrapError(err, contract.InvalidInput, "failed to resolve repository path")), nil
	}
	cfg.RepoPath = abs
	applyNumCommits(cfg, request)

	return h.history(ctx, cfg)
}

func (h *toolHandler) handleGetRemoteHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Source = schema.RemoteSource
	cfg.RepoURL = request.GetString("repo_url", "")
	if cfg.RepoURL == "" {
		return toolError(contract.NewError(contract.InvalidInput, "repo_url is required")), nil
	}
	if b := request.GetString("branch", ""); b != "" {
		cfg.Branch = b
	}
	applyNumCommits(cfg, request)

	return h.history(ctx, cfg)
}

// history runs the acquisition and renders the records as a JSON array.
func (h *toolHandler) history(ctx context.Context, cfg *contract.Config) (*mcp.CallToolResult, error) {
	records, err := core.GetHistory(ctx, cfg, h.reader, h.client)
	if err != nil {
		return toolError(err), nil
	}
	if records == nil {
		records = []schema.CommitRecord{}
	}
	jsonData, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return toolError(contract.WrapError(err, contract.InternalError, "failed to encode history")), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// applyNumCommits overrides the commit count when the caller passed one.
// Explicit non-positive values are kept so acquisition rejects them.
func applyNumCommits(cfg *contract.Config, request mcp.CallToolRequest) {
	if _, ok := request.GetArguments()["num_commits"]; ok {
		cfg.NumCommits = request.GetInt("num_commits", cfg.NumCommits)
		return
	}
	if cfg.NumCommits <= 0 {
		cfg.NumCommits = contract.DefaultNumCommits
	}
}

// toolError reports a failure to the MCP client; the text starts with the error kind.
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("history failed: %v", err))
}
