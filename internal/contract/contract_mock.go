package contract

import (
	"context"

	"github.com/huangsam/commitlog/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryReader is a mock implementation of HistoryReader for testing.
type MockHistoryReader struct {
	mock.Mock
}

var _ HistoryReader = &MockHistoryReader{} // Compile-time check

// ReadHistory implements the HistoryReader interface.
func (m *MockHistoryReader) ReadHistory(ctx context.Context, repoPath string, n int) ([]schema.CommitRecord, error) {
	ret := m.Called(ctx, repoPath, n)
	records, _ := ret.Get(0).([]schema.CommitRecord)
	return records, ret.Error(1)
}

// MockRemoteClient is a mock implementation of RemoteClient for testing.
type MockRemoteClient struct {
	mock.Mock
}

var _ RemoteClient = &MockRemoteClient{} // Compile-time check

// ListCommits implements the RemoteClient interface.
func (m *MockRemoteClient) ListCommits(ctx context.Context, owner, repo string, n int, branch string) ([]schema.CommitSummary, error) {
	ret := m.Called(ctx, owner, repo, n, branch)
	summaries, _ := ret.Get(0).([]schema.CommitSummary)
	return summaries, ret.Error(1)
}

// FetchDiff implements the RemoteClient interface.
func (m *MockRemoteClient) FetchDiff(ctx context.Context, commitURL string) ([]schema.FileChange, []schema.FileDiff, error) {
	ret := m.Called(ctx, commitURL)
	changes, _ := ret.Get(0).([]schema.FileChange)
	diffs, _ := ret.Get(1).([]schema.FileDiff)
	return changes, diffs, ret.Error(2)
}

// CommitURL implements the RemoteClient interface.
func (m *MockRemoteClient) CommitURL(owner, repo, sha string) string {
	ret := m.Called(owner, repo, sha)
	return ret.String(0)
}
