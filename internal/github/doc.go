// Package github provides a minimal, unauthenticated GitHub REST API client
// for reading the recent commit history of a public repository.
//
// It lists the newest commits of a branch and fetches each commit's per-file
// stats and patches, normalizing both into the shared schema types. Every
// failure is reported as a contract.HistoryError.
package github
