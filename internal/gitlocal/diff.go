package gitlocal

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/filemode"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
	"github.com/huangsam/commitlog/schema"
)

// normalizeChange converts one tree change into its line stats and unified diff.
func normalizeChange(ctx context.Context, ch *object.Change) (schema.FileChange, schema.FileDiff, error) {
	ct, err := classifyChange(ch)
	if err != nil {
		return schema.FileChange{}, schema.FileDiff{}, err
	}

	patch, err := ch.PatchContext(ctx)
	if err != nil {
		return schema.FileChange{}, schema.FileDiff{}, fmt.Errorf("patching %s: %w", changePath(ch), err)
	}

	var insertions, deletions int
	for _, st := range patch.Stats() {
		insertions += st.Addition
		deletions += st.Deletion
	}

	text, err := encodePatch(patch.FilePatches())
	if err != nil {
		return schema.FileChange{}, schema.FileDiff{}, fmt.Errorf("encoding %s: %w", changePath(ch), err)
	}

	fc := schema.NewFileChange(changePath(ch), insertions, deletions)
	fd := schema.FileDiff{
		FileA:      ch.From.Name,
		FileB:      ch.To.Name,
		ChangeType: ct,
		DiffText:   text,
	}
	return fc, fd, nil
}

// changePath is the path after the change, or the old path for deletions.
func changePath(ch *object.Change) string {
	if ch.To.Name != "" {
		return ch.To.Name
	}
	return ch.From.Name
}

// classifyChange maps a tree change onto git's single-letter status.
func classifyChange(ch *object.Change) (schema.ChangeType, error) {
	action, err := ch.Action()
	if err != nil {
		return schema.UnknownChange, err
	}
	switch action {
	case merkletrie.Insert:
		return schema.AddedChange, nil
	case merkletrie.Delete:
		return schema.DeletedChange, nil
	case merkletrie.Modify:
		if ch.From.Name != ch.To.Name {
			return schema.RenamedChange, nil
		}
		if fileKind(ch.From.TreeEntry.Mode) != fileKind(ch.To.TreeEntry.Mode) {
			return schema.TypeChangedChange, nil
		}
		return schema.ModifiedChange, nil
	default:
		return schema.UnknownChange, nil
	}
}

// fileKind folds the executable bit away so only object type changes count.
func fileKind(m filemode.FileMode) filemode.FileMode {
	switch m {
	case filemode.Executable, filemode.Deprecated:
		return filemode.Regular
	default:
		return m
	}
}

// encodePatch renders text file patches in unified format. Binary patches render as "".
func encodePatch(patches []fdiff.FilePatch) (string, error) {
	text := make([]fdiff.FilePatch, 0, len(patches))
	for _, fp := range patches {
		if !fp.IsBinary() {
			text = append(text, fp)
		}
	}
	if len(text) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	enc := fdiff.NewUnifiedEncoder(&buf, fdiff.DefaultContextLines)
	if err := enc.Encode(filePatchSet{patches: text}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// filePatchSet adapts a slice of file patches to the diff.Patch interface.
type filePatchSet struct {
	patches []fdiff.FilePatch
}

func (f filePatchSet) FilePatches() []fdiff.FilePatch { return f.patches }
func (filePatchSet) Message() string                   { return "" }
