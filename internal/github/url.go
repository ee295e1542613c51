package github

import (
	"slices"
	"strings"

	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/schema"
)

// ParseRepoURL extracts the owner and repository name from a GitHub URL
// such as https://github.com/owner/repo. A trailing ".git" and trailing
// slashes are ignored. Scheme, case and query strings are not normalized.
func ParseRepoURL(rawURL string) (owner, repo string, err error) {
	u := strings.TrimSpace(rawURL)
	u = strings.TrimSuffix(u, ".git")
	u = strings.TrimRight(u, "/")

	parts := strings.Split(u, "/")
	if len(parts) < 2 || !slices.Contains(parts, schema.GitHubHost) {
		return "", "", contract.NewError(contract.InvalidInput,
			"invalid GitHub URL, please use the format 'https://github.com/owner/repo'").WithContext(rawURL)
	}

	owner, repo = parts[len(parts)-2], parts[len(parts)-1]
	if owner == "" || repo == "" {
		return "", "", contract.NewError(contract.InvalidInput,
			"owner or repository name cannot be empty").WithContext(rawURL)
	}
	return owner, repo, nil
}
