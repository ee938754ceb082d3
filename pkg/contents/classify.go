package contents

import "strings"

// Classify extracts the package names listed on a single raw index line.
//
// The line layout is `<file-path><whitespace><comma-separated packages>`.
// The last whitespace-delimited field is taken as the package list; it is
// split on commas and each token is returned verbatim, including any
// `area/` prefix (e.g. "admin/base-files"). Empty tokens are dropped.
//
// A blank line (or one that is blank after trimming) yields nil. A line
// with no internal whitespace has only one field, so the whole line becomes
// the package field; that is the index format's own ambiguity and is kept
// as-is rather than rejected. Classify never fails: malformed input
// degrades to fewer (or stranger) package names, not to an error.
func Classify(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	fields := strings.Fields(trimmed)
	pkgField := fields[len(fields)-1]

	parts := strings.Split(pkgField, ",")
	pkgs := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			pkgs = append(pkgs, p)
		}
	}
	if len(pkgs) == 0 {
		return nil
	}
	return pkgs
}
