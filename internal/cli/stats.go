package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/mlindner/pkgstats/pkg/errors"
	"github.com/mlindner/pkgstats/pkg/pipeline"
	"github.com/mlindner/pkgstats/pkg/report"
)

// statsOpts holds the command-line flags for the statistics run.
type statsOpts struct {
	top      int    // ranked-result size
	mirror   string // mirror URL template override
	refresh  bool   // bypass the counts cache
	noCache  bool   // disable caching entirely
	selectUI bool   // pick the architecture interactively
}

// statsCommand creates the command running the statistics pipeline. It
// doubles as the root command; see [CLI.RootCommand].
func (c *CLI) statsCommand() *cobra.Command {
	opts := statsOpts{}

	cmd := &cobra.Command{
		Short: "Report the packages with the most files in a Debian repository",
		Long: `pkgstats downloads the Contents index of a Debian-style repository and
reports the packages associated with the largest number of files.

Examples:
  pkgstats amd64
  pkgstats amd64 http://ftp.uk.debian.org/debian/dists/stable/main/Contents-amd64.gz
  pkgstats --select
  pkgstats -k 25 arm64`,
		Args: cobra.ArbitraryArgs,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return architectures(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd.Context(), &opts, args)
		},
	}

	cmd.Flags().IntVarP(&opts.top, "top", "k", 0, "number of packages to report (default from config, normally 10)")
	cmd.Flags().StringVar(&opts.mirror, "mirror", "", "mirror URL template (use <architecture> as placeholder)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the counts cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching entirely")
	cmd.Flags().BoolVar(&opts.selectUI, "select", false, "pick the architecture interactively")

	return cmd
}

// runStats resolves the invocation into pipeline options and executes.
func (c *CLI) runStats(ctx context.Context, opts *statsOpts, args []string) error {
	popts, err := c.resolveOptions(opts, args)
	if err != nil {
		return err
	}

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Cache.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching Contents index for %s...", describeTarget(popts)))
	spinner.Start()
	result, err := runner.Execute(ctx, popts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Ranked %d of %d packages", len(result.Entries), result.Stats.DistinctPackages))

	if err := report.Write(os.Stdout, result.Entries); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "write report")
	}

	printStats(result.Stats.DistinctPackages, result.Stats.TotalFiles, result.CacheHit)
	return nil
}

// resolveOptions maps positional arguments onto pipeline options.
//
// Accepted shapes: one argument (architecture), two arguments
// (architecture plus explicit index URL), or none with --select. Anything
// else is an invalid invocation.
func (c *CLI) resolveOptions(opts *statsOpts, args []string) (pipeline.Options, error) {
	popts := pipeline.Options{
		K:              opts.top,
		Refresh:        opts.refresh,
		MirrorTemplate: firstNonEmpty(opts.mirror, c.Config.MirrorTemplate),
		CacheTTL:       c.Config.Cache.TTL.Duration,
	}
	if popts.K == 0 {
		popts.K = c.Config.Top
	}

	switch {
	case opts.selectUI && len(args) == 0:
		arch, err := pickArchitecture()
		if err != nil {
			return popts, err
		}
		popts.Arch = arch
	case len(args) == 1:
		popts.Arch = args[0]
	case len(args) == 2:
		popts.Arch = args[0]
		popts.URL = args[1]
	default:
		return popts, apperrors.New(apperrors.ErrCodeUsage,
			"expected <architecture> or <architecture> <contents-url>, got %d arguments", len(args))
	}
	return popts, nil
}

// describeTarget names what is being fetched for spinner/progress text.
func describeTarget(popts pipeline.Options) string {
	if popts.Arch != "" {
		return popts.Arch
	}
	return popts.URL
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
