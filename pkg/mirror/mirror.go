// Package mirror retrieves Contents indexes from a Debian-style package
// mirror.
//
// The [Fetcher] downloads the compressed index into a temporary file with
// automatic retry for transient failures, then exposes the decompressed
// byte stream for the tally pipeline. Downloading to disk first keeps the
// retry unit simple (the whole payload) and avoids holding a compressed
// multi-hundred-megabyte body in memory.
package mirror

import "strings"

// DefaultTemplate is the canonical Contents index location. The
// <architecture> placeholder is substituted with the requested
// architecture token.
const DefaultTemplate = "http://ftp.uk.debian.org/debian/dists/stable/main/Contents-<architecture>.gz"

// archPlaceholder is the substitution marker inside a URL template.
const archPlaceholder = "<architecture>"

// Architectures lists the architecture tokens published by Debian stable
// mirrors. Used for shell completion and the interactive picker; the list
// is advisory, any token the mirror accepts works.
var Architectures = []string{
	"all",
	"amd64",
	"arm64",
	"armel",
	"armhf",
	"i386",
	"mips64el",
	"ppc64el",
	"riscv64",
	"s390x",
	"source",
}

// URL expands a mirror URL template for the given architecture. An empty
// template selects [DefaultTemplate]. A template without the placeholder is
// returned unchanged, which lets callers pass a fully explicit URL.
func URL(template, arch string) string {
	if template == "" {
		template = DefaultTemplate
	}
	return strings.ReplaceAll(template, archPlaceholder, arch)
}
