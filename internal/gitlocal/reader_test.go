package gitlocal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, time.January, 2, 10, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

// testRepo is a throwaway repository on disk.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
	tick int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (r *testRepo) write(name, content string) {
	r.t.Helper()
	path := filepath.Join(r.dir, name)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))
	_, err := r.wt.Add(name)
	require.NoError(r.t, err)
}

func (r *testRepo) remove(name string) {
	r.t.Helper()
	_, err := r.wt.Remove(name)
	require.NoError(r.t, err)
}

func (r *testRepo) rename(from, to string) {
	r.t.Helper()
	content, err := os.ReadFile(filepath.Join(r.dir, from))
	require.NoError(r.t, err)
	r.remove(from)
	r.write(to, string(content))
}

// commit records a commit one hour after the previous one and returns its hash.
func (r *testRepo) commit(author, msg string) string {
	r.t.Helper()
	when := baseTime.Add(time.Duration(r.tick) * time.Hour)
	r.tick++
	hash, err := r.wt.Commit(msg, &git.CommitOptions{
		Author:            &object.Signature{Name: author, Email: "dev@example.com", When: when},
		AllowEmptyCommits: true,
	})
	require.NoError(r.t, err)
	return hash.String()
}

func TestReadHistoryOrderAndTrim(t *testing.T) {
	r := newTestRepo(t)
	r.write("README.md", "hello\n")
	c2 := r.commit("Bob Builder", "  first commit\n\n")
	r.write("README.md", "hello\nworld\n")
	c1 := r.commit("Ada Lovelace", "second commit\n\nwith a body\n")

	records, err := NewReader().ReadHistory(context.Background(), r.dir, 5)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, c1, records[0].Hash)
	assert.Equal(t, c2, records[1].Hash)
	assert.Equal(t, "second commit\n\nwith a body", records[0].Message)
	assert.Equal(t, "first commit", records[1].Message)
	assert.Equal(t, "Ada Lovelace", records[0].Author)
	assert.Equal(t, "2024-01-02T11:00:00+02:00", records[0].Date)
	assert.Equal(t, "2024-01-02T10:00:00+02:00", records[1].Date)
}

func TestReadHistoryLimit(t *testing.T) {
	r := newTestRepo(t)
	var hashes []string
	for i := range 4 {
		r.write("counter.txt", string(rune('a'+i))+"\n")
		hashes = append(hashes, r.commit("Dev", "commit"))
	}

	records, err := NewReader().ReadHistory(context.Background(), r.dir, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, hashes[3], records[0].Hash)
	assert.Equal(t, hashes[2], records[1].Hash)
}

func TestReadHistoryFileChanges(t *testing.T) {
	r := newTestRepo(t)
	r.write("main.go", "package main\n")
	r.write("old.txt", "same content\nacross rename\n")
	r.write("doomed.txt", "one\ntwo\n")
	r.commit("Dev", "initial")

	r.write("main.go", "package main\n\nfunc main() {}\n")
	r.rename("old.txt", "new.txt")
	r.remove("doomed.txt")
	r.write("added.txt", "fresh\n")
	r.commit("Dev", "rework")

	records, err := NewReader().ReadHistory(context.Background(), r.dir, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	byPath := map[string]schema.FileDiff{}
	for _, d := range records[0].FileDiffs {
		byPath[d.Path()] = d
	}
	require.Len(t, byPath, 4)

	added := byPath["added.txt"]
	assert.Equal(t, schema.AddedChange, added.ChangeType)
	assert.Empty(t, added.FileA)
	assert.Equal(t, "added.txt", added.FileB)
	assert.Contains(t, added.DiffText, "+fresh")

	deleted := byPath["doomed.txt"]
	assert.Equal(t, schema.DeletedChange, deleted.ChangeType)
	assert.Equal(t, "doomed.txt", deleted.FileA)
	assert.Empty(t, deleted.FileB)
	assert.Contains(t, deleted.DiffText, "-two")

	renamed := byPath["new.txt"]
	assert.Equal(t, schema.RenamedChange, renamed.ChangeType)
	assert.Equal(t, "old.txt", renamed.FileA)
	assert.Equal(t, "new.txt", renamed.FileB)

	modified := byPath["main.go"]
	assert.Equal(t, schema.ModifiedChange, modified.ChangeType)
	assert.Contains(t, modified.DiffText, "+func main() {}")

	stats := records[0].Stats()
	assert.Equal(t, 4, stats.Files)
	// main.go +2, added.txt +1, doomed.txt -2
	assert.Equal(t, 3, stats.Insertions)
	assert.Equal(t, 2, stats.Deletions)
	assert.Equal(t, 5, stats.Lines)

	// The root commit diffs against the empty tree.
	root := records[1]
	require.Len(t, root.FileDiffs, 3)
	for _, d := range root.FileDiffs {
		assert.Equal(t, schema.AddedChange, d.ChangeType)
	}
	assert.LessOrEqual(t, len(root.FileDiffs), len(root.FileChanges))
}

func TestReadHistoryBinaryFile(t *testing.T) {
	r := newTestRepo(t)
	r.write("blob.bin", "\x00\x01\x02binary\x00")
	r.commit("Dev", "add blob")

	records, err := NewReader().ReadHistory(context.Background(), r.dir, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, records[0].FileDiffs, 1)

	assert.Equal(t, schema.AddedChange, records[0].FileDiffs[0].ChangeType)
	assert.Empty(t, records[0].FileDiffs[0].DiffText)
	assert.Equal(t, 0, records[0].FileChanges[0].LinesChanged)
}

func TestReadHistoryWithoutRenameDetection(t *testing.T) {
	r := newTestRepo(t)
	r.write("old.txt", "content\n")
	r.commit("Dev", "initial")
	r.rename("old.txt", "new.txt")
	r.commit("Dev", "move")

	reader := &Reader{DetectRenames: false}
	records, err := reader.ReadHistory(context.Background(), r.dir, 1)
	require.NoError(t, err)
	require.Len(t, records[0].FileDiffs, 2)

	types := map[schema.ChangeType]int{}
	for _, d := range records[0].FileDiffs {
		types[d.ChangeType]++
	}
	assert.Equal(t, map[schema.ChangeType]int{schema.AddedChange: 1, schema.DeletedChange: 1}, types)
}

func TestReadHistoryRejectsPathsInsideRepository(t *testing.T) {
	r := newTestRepo(t)
	r.write("pkg/lib.go", "package pkg\n")
	r.commit("Dev", "add pkg")

	tests := []struct {
		name string
		path string
	}{
		{"subdirectory", filepath.Join(r.dir, "pkg")},
		{"regular file", filepath.Join(r.dir, "pkg", "lib.go")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := NewReader().ReadHistory(context.Background(), tt.path, 3)
			assert.Nil(t, records)
			assert.ErrorIs(t, err, contract.ErrInvalidInput)
			assert.Contains(t, err.Error(), "not a valid git repository")
		})
	}
}

func TestReadHistoryErrors(t *testing.T) {
	t.Run("empty repository", func(t *testing.T) {
		r := newTestRepo(t)
		_, err := NewReader().ReadHistory(context.Background(), r.dir, 3)
		assert.ErrorIs(t, err, contract.ErrNotFound)
	})

	t.Run("missing path", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope")
		_, err := NewReader().ReadHistory(context.Background(), missing, 3)
		assert.ErrorIs(t, err, contract.ErrInvalidInput)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("not a repository", func(t *testing.T) {
		_, err := NewReader().ReadHistory(context.Background(), t.TempDir(), 3)
		assert.ErrorIs(t, err, contract.ErrInvalidInput)
		assert.Contains(t, err.Error(), "not a valid git repository")
	})

	t.Run("non-positive count", func(t *testing.T) {
		r := newTestRepo(t)
		r.write("a.txt", "a\n")
		r.commit("Dev", "a")
		_, err := NewReader().ReadHistory(context.Background(), r.dir, 0)
		assert.ErrorIs(t, err, contract.ErrInvalidInput)
	})

	t.Run("canceled context", func(t *testing.T) {
		r := newTestRepo(t)
		r.write("a.txt", "a\n")
		r.commit("Dev", "a")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewReader().ReadHistory(ctx, r.dir, 3)
		assert.ErrorIs(t, err, contract.ErrInternal)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
