package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/schema"
)

// diffStyle is the chroma style used for terminal diff output.
const diffStyle = "monokai"

// writeDiffs prints every file diff after the table, one header line per file.
func writeDiffs(w io.Writer, records []schema.CommitRecord, cfg *contract.Config) error {
	pathWidth := GetMaxPathWidth(cfg)
	for _, r := range records {
		for _, d := range r.FileDiffs {
			letter := string(d.ChangeType)
			if cfg.UseColors {
				letter = contract.GetColorChangeType(d.ChangeType)
			}
			if _, err := fmt.Fprintf(w, "\n%s %s %s\n", r.ShortHash(), letter, contract.TruncatePath(diffLabel(d), pathWidth)); err != nil {
				return err
			}
			if d.DiffText == "" {
				if _, err := fmt.Fprintln(w, "(no textual diff)"); err != nil {
					return err
				}
				continue
			}
			if err := writeDiffText(w, d.DiffText, cfg.UseColors); err != nil {
				return err
			}
		}
	}
	return nil
}

// diffLabel shows "old -> new" when the path changed.
func diffLabel(d schema.FileDiff) string {
	if d.FileA != "" && d.FileB != "" && d.FileA != d.FileB {
		return d.FileA + " -> " + d.FileB
	}
	return d.Path()
}

// writeDiffText writes raw diff text, highlighted with the chroma diff lexer when colors are on.
func writeDiffText(w io.Writer, text string, useColors bool) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if !useColors {
		_, err := io.WriteString(w, text)
		return err
	}
	return highlightDiff(w, text)
}

func highlightDiff(w io.Writer, text string) error {
	lexer := lexers.Get("diff")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(diffStyle)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return fmt.Errorf("tokenising diff: %w", err)
	}
	return formatter.Format(w, style, iterator)
}
