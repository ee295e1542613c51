package outwriter

import (
	"os"

	"github.com/huangsam/commitlog/internal/contract"
	"golang.org/x/term"
)

// Column budget for the commit table and diff headers.
const (
	defaultTermWidth = 80 // Conservative default for narrow terminals and CI
	fixedTableWidth  = 60 // Hash + Date + Author + Files + Lines + Types with borders/padding
	minFlexWidth     = 15
	maxFlexWidth     = 80
)

// getTermWidth returns the configured width override, the detected terminal width,
// or a conservative default.
func getTermWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return defaultTermWidth
	}
	return detectedWidth
}

// GetMaxSubjectWidth calculates the maximum width of the subject column in table output
// based on terminal width and the fixed columns.
func GetMaxSubjectWidth(cfg *contract.Config) int {
	return clampFlex(getTermWidth(cfg) - fixedTableWidth)
}

// GetMaxPathWidth calculates the maximum width of a file path in diff headers.
func GetMaxPathWidth(cfg *contract.Config) int {
	// Room for the short hash, change type and separators
	return clampFlex(getTermWidth(cfg) - 16)
}

func clampFlex(available int) int {
	if available < minFlexWidth {
		return minFlexWidth
	}
	if available > maxFlexWidth {
		return maxFlexWidth
	}
	return available
}
