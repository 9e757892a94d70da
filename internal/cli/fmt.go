package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pkgsort/internal/config"
	"github.com/hupe1980/pkgsort/internal/logging"
	"github.com/hupe1980/pkgsort/internal/manifest"
	"github.com/hupe1980/pkgsort/internal/walker"
)

type fmtOptions struct {
	compact bool
	dryRun  bool
}

func newFmtCommand() *cobra.Command {
	opts := &fmtOptions{}

	cmd := &cobra.Command{
		Use:     "fmt [path]",
		Aliases: []string{"sort"},
		Short:   "Rewrite package.json manifests in place",
		Long: `Recursively find every package.json beneath the given path (default:
current directory) and rewrite it into canonical form. The path may also
name a single manifest file.

The recursive search honors .gitignore rules and skips dot-directories.
Files that are already canonical are left untouched. Each file is
processed independently; a file that fails to parse is reported and the
run continues, exiting non-zero at the end.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd.Context(), cmd, resolveRoot(args), opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.compact, "compact", false, "render compact JSON instead of pretty")
	f.Bool("sort-scripts", false, "also sort the scripts object alphabetically")
	f.BoolVar(&opts.dryRun, "dry-run", false, "report what would change without writing files")

	return cmd
}

func runFmt(ctx context.Context, cmd *cobra.Command, root string, opts *fmtOptions) error {
	logger := logging.FromContext(ctx)
	cfg := config.FromContext(ctx)

	res, err := walker.Run(root, walker.Options{
		Sort: manifest.Options{
			Pretty:      !opts.compact,
			SortScripts: cfg.SortScripts,
		},
		DryRun: opts.dryRun,
		Logger: logger,
	})
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	printRunSummary(cmd.ErrOrStderr(), res)

	if res.Failed() {
		return &ExitError{
			Code: 1,
			Err:  fmt.Errorf("%d of %d manifests failed", len(res.Errors), res.Found),
		}
	}

	return nil
}

// printRunSummary prints a human-readable summary of a formatting run.
func printRunSummary(w io.Writer, res *walker.Result) {
	_, _ = fmt.Fprintf(w, "\n--- Summary ---\n")
	_, _ = fmt.Fprintf(w, "Found:   %d\n", res.Found)
	_, _ = fmt.Fprintf(w, "Sorted:  %d\n", res.Sorted)
	_, _ = fmt.Fprintf(w, "Errors:  %d\n", len(res.Errors))

	for _, fe := range res.Errors {
		_, _ = fmt.Fprintf(w, "  ✗ %s\n", fe)
	}

	_, _ = fmt.Fprintf(w, "---------------\n")
}
