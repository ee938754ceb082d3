// Package report renders ranked package statistics as fixed-width text.
//
// The layout matches the historical tool: each row is the package name,
// padding, and the file count right-aligned so that name plus digits span
// 50 columns. The block is surrounded by blank lines.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mlindner/pkgstats/pkg/contents"
)

// lineWidth is the total column budget for name plus count digits.
const lineWidth = 50

// Write renders entries to w, one row per entry, preceded and followed by
// a blank line. An empty ranked result renders just the two blank lines.
func Write(w io.Writer, entries []contents.Entry) error {
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, Row(e)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// Row formats a single entry. Padding right-aligns the count within
// lineWidth columns counting name and digits; when the pair is too wide to
// fit, the absolute-value clamp keeps the padding positive so name and
// count stay separated rather than failing.
func Row(e contents.Entry) string {
	digits := strconv.Itoa(e.Count)
	pad := lineWidth - len(e.Name) - len(digits)
	if pad < 0 {
		pad = -pad
	}
	return e.Name + strings.Repeat(" ", pad) + digits
}
