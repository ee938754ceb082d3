package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlindner/pkgstats/pkg/cache"
	"github.com/mlindner/pkgstats/pkg/contents"
	apperrors "github.com/mlindner/pkgstats/pkg/errors"
	"github.com/mlindner/pkgstats/pkg/mirror"
)

// Runner executes the statistics pipeline with counts caching.
//
// The Runner is stateless except for its collaborators; the per-run
// aggregate is owned by one Execute call and discarded with it. Multiple
// goroutines can safely share one Runner.
type Runner struct {
	Fetcher *mirror.Fetcher
	Cache   cache.Cache
	Logger  *log.Logger
}

// NewRunner creates a runner with the given collaborators.
// A nil fetcher gets a default one; a nil cache disables caching
// (NullCache); a nil logger uses the default.
func NewRunner(fetcher *mirror.Fetcher, c cache.Cache, logger *log.Logger) *Runner {
	if fetcher == nil {
		fetcher = mirror.NewFetcher(nil)
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Fetcher: fetcher,
		Cache:   c,
		Logger:  logger,
	}
}

// Execute runs the complete fetch → tally → select pipeline.
//
// The aggregate mapping is cached by index URL so repeated invocations
// within the TTL skip the download entirely; the ranked selection always
// runs fresh, so differing K values share one cached aggregate.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	tallyStart := time.Now()
	counts, hit, err := r.tallyWithCache(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.CacheHit = hit
	result.Stats.TallyTime = time.Since(tallyStart)
	result.Stats.DistinctPackages = counts.Distinct()
	result.Stats.TotalFiles = counts.Total()

	r.Logger.Info("aggregated index",
		"url", opts.URL,
		"packages", result.Stats.DistinctPackages,
		"files", result.Stats.TotalFiles,
		"cached", hit,
		"duration", result.Stats.TallyTime)

	selectStart := time.Now()
	result.Entries = contents.Top(counts, opts.K)
	result.Stats.SelectTime = time.Since(selectStart)

	r.Logger.Debug("selected top packages",
		"k", opts.K,
		"returned", len(result.Entries),
		"duration", result.Stats.SelectTime)

	return result, nil
}

// tallyWithCache returns the aggregate for opts.URL, from cache when
// possible. The bool reports a cache hit.
func (r *Runner) tallyWithCache(ctx context.Context, opts Options) (contents.Counts, bool, error) {
	key := countsKey(opts.URL)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var counts contents.Counts
			if err := json.Unmarshal(data, &counts); err == nil {
				return counts, true, nil
			}
			// Undecodable entry: fall through to a fresh download.
			_ = r.Cache.Delete(ctx, key)
		}
	}

	counts, err := r.tally(ctx, opts.URL)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(counts); err == nil {
		if err := r.Cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
			r.Logger.Warn("could not cache counts", "err", err)
		}
	}
	return counts, false, nil
}

// tally downloads the index and folds it into a fresh aggregate.
func (r *Runner) tally(ctx context.Context, url string) (contents.Counts, error) {
	r.Logger.Debug("downloading index", "url", url)

	ix, err := r.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	defer ix.Close()

	counts, err := contents.Tally(ix)
	if err != nil {
		if code := apperrors.GetCode(err); code != "" {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeDecompress, err, "read index stream")
	}
	return counts, nil
}

// countsKey is the cache key for a URL's aggregated counts. Hashing keeps
// arbitrary URLs safe for every backend's key syntax.
func countsKey(url string) string {
	return fmt.Sprintf("counts:%s", cache.Hash([]byte(url)))
}
