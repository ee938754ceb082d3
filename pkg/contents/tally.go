package contents

import (
	"bufio"
	"fmt"
	"io"
)

// maxLineBytes bounds a single index line. Contents lines are file paths
// plus a package list, so 1 MiB is far beyond anything a real index emits
// while still catching a corrupt stream before it eats the heap.
const maxLineBytes = 1 << 20

// Tally consumes the decompressed index stream exactly once, classifying
// each line and folding the result into a fresh Counts aggregate. Each
// line's classified output is discarded immediately after folding, so
// memory stays proportional to distinct packages rather than lines.
//
// Read failures from r propagate as-is; Tally performs no retries. A
// malformed line is not a failure (see [Classify]).
func Tally(r io.Reader) (Counts, error) {
	counts := NewCounts()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		counts.Add(Classify(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	return counts, nil
}

// TallyTop runs the full core pipeline: stream → classify → aggregate →
// select. It is the single-call form used by callers that do not need the
// intermediate Counts.
func TallyTop(r io.Reader, k int) ([]Entry, error) {
	counts, err := Tally(r)
	if err != nil {
		return nil, err
	}
	return Top(counts, k), nil
}
