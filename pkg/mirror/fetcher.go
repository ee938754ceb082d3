package mirror

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/klauspost/compress/gzip"

	apperrors "github.com/mlindner/pkgstats/pkg/errors"
	"github.com/mlindner/pkgstats/pkg/httputil"
)

// Fetcher downloads compressed Contents indexes. The zero value is not
// usable; create one with [NewFetcher]. A Fetcher is safe for concurrent
// use by multiple goroutines.
type Fetcher struct {
	client *http.Client

	// retry wraps download attempts; swapped out in tests to skip backoff.
	retry func(ctx context.Context, fn func() error) error
}

// NewFetcher creates a Fetcher using the given HTTP client. Pass nil for a
// default client. The client should not carry a global timeout: index
// downloads legitimately run for minutes on slow links, and cancellation
// is handled through the request context instead.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{client: client, retry: httputil.RetryWithBackoff}
}

// Fetch downloads the index at url into a temporary file and opens a
// decompressing reader over it. Transient failures (network errors, 5xx)
// are retried up to three times with exponential backoff; any other HTTP
// status fails immediately.
//
// Error codes on failure: retrieval for network/status problems, storage
// for temp-file problems, decompress for an invalid gzip payload. The
// caller must Close the returned Index to release the temp file.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Index, error) {
	tmp, err := os.CreateTemp("", "pkgstats-contents-*.gz")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStorage, err, "create temporary index file")
	}
	// The temp file is unlinked on every failure path; on success the
	// Index owns it.
	fail := func(e error) (*Index, error) {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, e
	}

	err = f.retry(ctx, func() error {
		return f.download(ctx, url, tmp)
	})
	if err != nil {
		if code := apperrors.GetCode(err); code != "" {
			return fail(err)
		}
		return fail(apperrors.Wrap(apperrors.ErrCodeRetrieval, err, "download %s", url))
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return fail(apperrors.Wrap(apperrors.ErrCodeStorage, err, "rewind temporary index file"))
	}

	gz, err := gzip.NewReader(tmp)
	if err != nil {
		return fail(apperrors.Wrap(apperrors.ErrCodeDecompress, err, "open gzip stream from %s", url))
	}

	return &Index{file: tmp, gz: gz}, nil
}

// download performs one GET attempt, writing the body into dst from the
// start. Called repeatedly under retry, so it truncates any partial data
// from a previous attempt first.
func (f *Fetcher) download(ctx context.Context, url string, dst *os.File) error {
	if err := dst.Truncate(0); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStorage, err, "truncate temporary index file")
	}
	if _, err := dst.Seek(0, io.SeekStart); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStorage, err, "rewind temporary index file")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeRetrieval, err, "build request for %s", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		// Connection-level failures are worth retrying.
		return &httputil.RetryableError{Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return &httputil.RetryableError{Err: fmt.Errorf("read response body: %w", err)}
	}
	return nil
}

// checkStatus maps an HTTP status to an error: 200 succeeds, 5xx is
// retryable, everything else (including 404 for an unknown architecture)
// fails immediately.
func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("server status %d", code)}
	default:
		return apperrors.New(apperrors.ErrCodeRetrieval, "unexpected status %d", code)
	}
}

// Index is an open, decompressing view over a downloaded Contents index.
// Reads return the decompressed line-oriented text. Close removes the
// backing temporary file.
type Index struct {
	file *os.File
	gz   *gzip.Reader
}

// Read implements io.Reader over the decompressed index text. A corrupt
// stream surfaces mid-read as a decompress-coded error.
func (ix *Index) Read(p []byte) (int, error) {
	n, err := ix.gz.Read(p)
	if err != nil && err != io.EOF {
		return n, apperrors.Wrap(apperrors.ErrCodeDecompress, err, "decompress index")
	}
	return n, err
}

// Close closes the gzip stream and removes the temporary file. Safe to
// call once per Index.
func (ix *Index) Close() error {
	gzErr := ix.gz.Close()
	name := ix.file.Name()
	closeErr := ix.file.Close()
	rmErr := os.Remove(name)

	if gzErr != nil {
		return gzErr
	}
	if closeErr != nil {
		return closeErr
	}
	return rmErr
}
