package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/internal/logger"
	"github.com/huangsam/commitlog/schema"
)

// maxErrorBody caps how much of a failed response body ends up in an error message.
const maxErrorBody = 512

// Client provides read-only access to the GitHub REST API.
type Client struct {
	apiURL        string
	userAgent     string
	httpCli       *http.Client
	maxRetries    int
	retryInterval time.Duration
}

var _ contract.RemoteClient = &Client{} // Compile-time check

// NewClient creates a client from the acquisition settings.
// The request timeout applies to every single request, including each retry.
func NewClient(cfg contract.HistoryConfig, version string) *Client {
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = schema.DefaultAPIURL
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = contract.DefaultRequestTimeout
	}
	if version == "" {
		version = "dev"
	}
	return &Client{
		apiURL:     apiURL,
		userAgent:  "commitlog/" + version,
		httpCli:    &http.Client{Timeout: timeout},
		maxRetries: cfg.MaxRetries,
	}
}

// CommitURL builds the detail URL of a commit.
func (c *Client) CommitURL(owner, repo, sha string) string {
	return fmt.Sprintf("%s/repos/%s/%s/commits/%s", c.apiURL, owner, repo, sha)
}

// ListCommits fetches the newest commits of a branch, truncated to n entries.
// Only the first page is requested, so at most schema.MaxPerPage entries are returned.
func (c *Client) ListCommits(ctx context.Context, owner, repo string, n int, branch string) ([]schema.CommitSummary, error) {
	slug := owner + "/" + repo
	if n <= 0 {
		return nil, contract.NewError(contract.InvalidInput, "number of commits must be positive (received %d)", n).WithContext(slug)
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/commits", c.apiURL, owner, repo)
	query := url.Values{}
	query.Set("sha", branch)
	query.Set("per_page", strconv.Itoa(min(n, schema.MaxPerPage)))

	var entries []listEntry
	if err := c.getJSON(ctx, endpoint, query, &entries); err != nil {
		return nil, contract.WrapError(err, contract.RemoteError,
			"error accessing GitHub API for repository '%s'", slug).WithContext(slug)
	}
	if len(entries) == 0 {
		return nil, contract.NewError(contract.NotFound,
			"no commits found in repository '%s' on branch '%s'", slug, branch).WithContext(slug)
	}
	if len(entries) > n {
		entries = entries[:n]
	}

	summaries := make([]schema.CommitSummary, 0, len(entries))
	for i, e := range entries {
		s, err := e.summary()
		if err != nil {
			return nil, contract.WrapError(err, contract.RemoteError,
				"malformed commit listing for repository '%s' at entry %d", slug, i).WithContext(slug)
		}
		summaries = append(summaries, s)
	}
	logger.Debugf("listed %d commits for %s on %s", len(summaries), slug, branch)
	return summaries, nil
}

// FetchDiff fetches one commit's detail and returns its per-file stats and diffs.
func (c *Client) FetchDiff(ctx context.Context, commitURL string) ([]schema.FileChange, []schema.FileDiff, error) {
	var detail commitDetail
	if err := c.getJSON(ctx, commitURL, nil, &detail); err != nil {
		return nil, nil, contract.WrapError(err, contract.RemoteError,
			"error accessing GitHub API for commit '%s'", commitURL).WithContext(commitURL)
	}

	changes, diffs, err := detail.normalize()
	if err != nil {
		return nil, nil, contract.WrapError(err, contract.RemoteError,
			"error processing commit data for '%s'", commitURL).WithContext(commitURL)
	}
	logger.Debugf("fetched %d files (%d diffs) from %s", len(changes), len(diffs), commitURL)
	return changes, diffs, nil
}

// getJSON issues a GET request and decodes a 2xx JSON body into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	return c.withRetry(ctx, endpoint, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		if len(query) > 0 {
			req.URL.RawQuery = query.Encode()
		}
		req.Header.Set("Accept", schema.GitHubMediaType)
		req.Header.Set("User-Agent", c.userAgent)

		logger.Debugf("GET %s", req.URL.String())
		resp, err := c.httpCli.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &StatusError{Code: resp.StatusCode, Body: contract.TruncateText(strings.TrimSpace(string(body)), maxErrorBody)}
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
		return nil
	})
}
