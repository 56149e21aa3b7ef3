package tracking

import (
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/mathedit/internal/formula"
)

// Diff returns the outline diff between two trees in cmp's
// (-old +new) notation, or "" when they have the same shape.
func Diff(old, current formula.Element) string {
	return diffOutlines(formula.Dump(old), formula.Dump(current))
}

func diffOutlines(old, current string) string {
	if old == current {
		return ""
	}
	return cmp.Diff(lines(old), lines(current))
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
