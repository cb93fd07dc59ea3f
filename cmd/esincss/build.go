package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yacobolo/esincss/internal/compiler"
	"github.com/yacobolo/esincss/internal/discover"
	"github.com/yacobolo/esincss/internal/logging"
	"github.com/yacobolo/esincss/internal/report"
	"github.com/yacobolo/esincss/internal/watch"
)

var buildCmd = &cobra.Command{
	Use:   "build <glob>...",
	Short: "Compile stylesheet templates to CSS files",
	Long: `Render every stylesheet template matched by the given glob patterns
(or build.include from the config file) and write one .css file per input.

Output paths mirror the inputs' directory structure below --outdir, relative
to their common ancestor directory or --outbase.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	addBuildFlags(buildCmd)
}

func addBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("outdir", "d", "", "Output directory (default: next to each input)")
	f.StringP("outbase", "b", "", "Base directory that --outdir mirrors (default: common ancestor of the inputs)")
	f.StringP("ext", "e", "css", "Output file extension")
	f.BoolP("minify", "m", false, "Minify the output")
	f.BoolP("prettify", "p", false, "Prettify the output (ignored with --minify)")
	f.String("banner", "", "Text to prepend to every output file")
	f.String("footer", "", "Text to append to every output file")
	f.Bool("dry-run", false, "Print the generated CSS instead of writing files")
	f.Int("concurrency", 0, "Max files compiled in parallel (default: number of CPUs)")
	f.StringArray("redirect", nil, "Rewrite output paths with a regexp=>replacement rule (repeatable)")
	f.String("gitignore", discover.DefaultGitIgnore, "Ignore file used to filter matched inputs")
	f.String("output-format", report.FormatText, "Output format: text|json")
	f.BoolP("watch", "w", false, "Rebuild when input files change")
}

func runBuild(cmd *cobra.Command, args []string) error {
	settings, err := buildBuildSettings(args)
	if err != nil {
		return err
	}
	if len(settings.Patterns) == 0 {
		return errors.New("no input files given (pass glob patterns or set build.include)")
	}

	logging.Setup(settings.Verbosity, settings.Quiet, report.ShouldUseColors(settings.Color, os.Stderr))

	var out io.Writer = cmd.OutOrStdout()
	if settings.Quiet {
		out = io.Discard
	}
	rep := report.NewReporter(out, report.Config{
		UseColors: settings.Color,
		Format:    settings.Format,
		Verbose:   settings.Verbosity > 0,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := buildOnce(ctx, settings, rep); err != nil {
		if !settings.Watch {
			return err
		}
		rep.PrintError(err)
	}

	if !settings.Watch {
		return nil
	}
	return watchAndRebuild(ctx, settings, rep)
}

// buildOnce discovers the inputs and compiles them. Patterns matching no
// files are reported but are not an error.
func buildOnce(ctx context.Context, settings buildSettings, rep *report.Reporter) error {
	files, stats, err := discover.Files(settings.Patterns, settings.GitIgnore)
	if err != nil {
		return err
	}
	rep.PrintDiscovery(stats)

	if len(files) == 0 {
		rep.PrintNoFiles(settings.Patterns)
		return nil
	}

	start := time.Now()
	results, err := compiler.Compile(ctx, files, settings.Compile)
	if err != nil {
		return err
	}
	return rep.PrintResults(results, time.Since(start), settings.Compile.DryRun)
}

func watchAndRebuild(ctx context.Context, settings buildSettings, rep *report.Reporter) error {
	logger := logging.GetLogger("watch")

	w, err := watch.New(settings.Patterns, watch.DefaultOptions())
	if err != nil {
		return err
	}
	defer w.Stop()

	rep.PrintWatching(watch.Roots(settings.Patterns))

	err = w.Run(ctx, func(paths []string) {
		logger.Info().Strs("paths", paths).Msg("Rebuilding")
		if err := buildOnce(ctx, settings, rep); err != nil {
			rep.PrintError(err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
