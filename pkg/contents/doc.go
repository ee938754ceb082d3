// Package contents implements the streaming parse-and-aggregate core for
// Debian Contents indexes.
//
// A Contents index is a line-oriented text file mapping file paths to the
// packages that ship them:
//
//	usr/bin/vim                    editors/vim
//	usr/share/doc/README           admin/base-files,doc/docs
//
// The package provides four pieces:
//
//   - [Classify]: extracts the package names listed on one raw line
//   - [Counts]: the running package → file-count aggregate
//   - [Top]: deterministic top-K selection over a Counts map
//   - [Tally]: the streaming driver folding a line stream into Counts
//
// The design constraint throughout is memory proportional to the number of
// distinct packages, never to the number of index lines. Real Contents
// indexes run to tens of millions of lines, so per-line allocations are
// folded into the aggregate immediately and discarded.
package contents
