// Package pipeline orchestrates the fetch → tally → select sequence for
// package statistics.
//
// The [Runner] is the single entry point used by both the CLI and serve
// mode: it resolves the index URL, consults the counts cache, downloads
// and aggregates on a miss, and selects the top K. Centralizing this keeps
// caching and logging behavior identical across entry points.
//
// # Usage
//
//	runner := pipeline.NewRunner(mirror.NewFetcher(nil), fileCache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Arch: "amd64", K: 10})
//	if err != nil {
//	    // error codes map to exit statuses, see pkg/errors
//	}
//	report.Write(os.Stdout, result.Entries)
package pipeline

import (
	"time"

	"github.com/mlindner/pkgstats/pkg/contents"
	apperrors "github.com/mlindner/pkgstats/pkg/errors"
	"github.com/mlindner/pkgstats/pkg/mirror"
)

// DefaultK is the ranked-result size when the caller doesn't set one.
const DefaultK = 10

// DefaultCacheTTL is how long aggregated counts stay valid in the cache.
// Contents indexes on stable mirrors change at most daily.
const DefaultCacheTTL = 24 * time.Hour

// Options configures one pipeline run.
type Options struct {
	// Arch is the architecture token substituted into the mirror template.
	// Required unless URL is set.
	Arch string `json:"arch,omitempty"`

	// URL overrides the index location entirely. When set, Arch is only
	// informational.
	URL string `json:"url,omitempty"`

	// MirrorTemplate overrides the canonical template; empty selects
	// mirror.DefaultTemplate.
	MirrorTemplate string `json:"mirror_template,omitempty"`

	// K is the ranked-result size. Zero applies DefaultK; negative is a
	// usage error. Callers wanting a literally empty ranked result can
	// call contents.Top directly with k <= 0.
	K int `json:"k,omitempty"`

	// Refresh bypasses the counts cache.
	Refresh bool `json:"refresh,omitempty"`

	// CacheTTL overrides DefaultCacheTTL when positive.
	CacheTTL time.Duration `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.URL == "" {
		if err := apperrors.ValidateArch(o.Arch); err != nil {
			return err
		}
		o.URL = mirror.URL(o.MirrorTemplate, o.Arch)
	}
	if o.K < 0 {
		return apperrors.New(apperrors.ErrCodeUsage, "top size must be positive, got %d", o.K)
	}
	if o.K == 0 {
		o.K = DefaultK
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Entries is the ranked result: at most K packages, count descending,
	// ties by name ascending.
	Entries []contents.Entry `json:"entries"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheHit reports whether the aggregate came from the counts cache
	// rather than a fresh download.
	CacheHit bool `json:"cache_hit"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	DistinctPackages int           `json:"distinct_packages"`
	TotalFiles       int           `json:"total_files"`
	TallyTime        time.Duration `json:"tally_time"`
	SelectTime       time.Duration `json:"select_time"`
}
