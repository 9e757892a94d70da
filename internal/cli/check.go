package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pkgsort/internal/config"
	"github.com/hupe1980/pkgsort/internal/diff"
	"github.com/hupe1980/pkgsort/internal/manifest"
	"github.com/hupe1980/pkgsort/internal/walker"
)

type checkOptions struct {
	compact  bool
	listOnly bool
}

func newCheckCommand() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Report manifests that are not in canonical form",
		Long: `Check every package.json beneath the given path (default: current
directory) against its canonical form without modifying anything.

For each non-canonical manifest a unified diff is printed. The command
exits 0 when all manifests are canonical and 1 otherwise, making it
suitable for CI.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd, resolveRoot(args), opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.compact, "compact", false, "check against compact JSON instead of pretty")
	f.Bool("sort-scripts", false, "also expect the scripts object sorted alphabetically")
	f.BoolVarP(&opts.listOnly, "list", "l", false, "only list non-canonical files, no diffs")

	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, root string, opts *checkOptions) error {
	cfg := config.FromContext(ctx)

	paths, err := walker.Files(root)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	sortOpts := manifest.Options{
		Pretty:      !opts.compact,
		SortScripts: cfg.SortScripts,
	}

	var dirty, errored int

	out := cmd.OutOrStdout()

	for _, path := range paths {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			errored++

			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", path, readErr)

			continue
		}

		canonical, sortErr := manifest.SortWithOptions(string(data), sortOpts)
		if sortErr != nil {
			errored++

			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", path, sortErr)

			continue
		}

		if canonical == string(data) {
			continue
		}

		dirty++

		if opts.listOnly {
			fmt.Fprintln(out, path)
			continue
		}

		diffOpts := diff.DefaultOptions()
		diffOpts.OldLabel = path
		diffOpts.NewLabel = path + " (canonical)"

		result, diffErr := diff.Compute(string(data), canonical, diffOpts)
		if diffErr != nil {
			return &ExitError{Code: 1, Err: diffErr}
		}

		diff.Write(out, result, !cfg.NoColor)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "\n%d manifests checked, %d not canonical, %d errors\n",
		len(paths), dirty, errored)

	if dirty > 0 || errored > 0 {
		return &ExitError{
			Code: 1,
			Err:  fmt.Errorf("%d manifests not canonical, %d errored", dirty, errored),
		}
	}

	return nil
}
