package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pkgsort/internal/config"
	"github.com/hupe1980/pkgsort/internal/logging"
	"github.com/hupe1980/pkgsort/internal/manifest"
	"github.com/hupe1980/pkgsort/internal/walker"
	"github.com/hupe1980/pkgsort/internal/watch"
)

type watchOptions struct {
	fmtOptions

	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch a directory and keep its manifests canonical",
		Long: `Watch monitors a directory tree and re-formats any package.json that
changes. File events are debounced to avoid rapid re-runs, and newly
created subdirectories are watched automatically.

The watcher runs until interrupted (Ctrl-C).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd, resolveRoot(args), opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.compact, "compact", false, "render compact JSON instead of pretty")
	f.Bool("sort-scripts", false, "also sort the scripts object alphabetically")
	f.DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "debounce interval for file changes")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, root string, opts *watchOptions) error {
	logger := logging.FromContext(ctx)
	cfg := config.FromContext(ctx)

	walkOpts := walker.Options{
		Sort: manifest.Options{
			Pretty:      !opts.compact,
			SortScripts: cfg.SortScripts,
		},
		Logger: logger,
	}

	watchOpts := watch.DefaultOptions()
	watchOpts.Root = root
	watchOpts.Debounce = opts.debounce
	watchOpts.Out = cmd.ErrOrStderr()

	runFn := func(context.Context) (*walker.Result, error) {
		return walker.Run(root, walkOpts)
	}

	if err := watch.Run(ctx, watchOpts, runFn); err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	return nil
}
