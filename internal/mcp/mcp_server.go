// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/commitlog/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the commitlog MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, reader contract.HistoryReader, client contract.RemoteClient, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Commitlog History Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		reader:  reader,
		client:  client,
	}

	// --- 1. Tool: get_local_history ---
	s.AddTool(mcp.NewTool("get_local_history",
		mcp.WithDescription("Read the most recent commits of a local Git repository as normalized records with per-file stats and diffs."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
		mcp.WithNumber("num_commits", mcp.Description("Number of commits to return, newest first.")),
	), h.handleGetLocalHistory)

	// --- 2. Tool: get_remote_history ---
	s.AddTool(mcp.NewTool("get_remote_history",
		mcp.WithDescription("Fetch the most recent commits of a GitHub repository as normalized records with per-file stats and diffs."),
		mcp.WithString("repo_url", mcp.Description("GitHub repository URL, e.g. https://github.com/owner/repo."), mcp.Required()),
		mcp.WithNumber("num_commits", mcp.Description("Number of commits to return, newest first.")),
		mcp.WithString("branch", mcp.Description("Branch to list commits from. Defaults to the configured default branch.")),
	), h.handleGetRemoteHistory)

	return s
}

// StartMCPServer starts the commitlog MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, reader contract.HistoryReader, client contract.RemoteClient, version string) error {
	s := NewMCPServer(baseCfg, reader, client, version)
	return server.ServeStdio(s)
}
