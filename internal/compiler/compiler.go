// Package compiler renders stylesheet templates to CSS files.
//
// Each input file is a text/template document executed with the helpers
// from FuncMap. The rendered CSS is optionally minified or prettified,
// wrapped with a banner and footer, and written to the output path
// computed by package outpath.
package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/esincss/internal/logging"
	"github.com/yacobolo/esincss/internal/outpath"
)

// Options configures a compilation run.
type Options struct {
	outpath.Options

	// Minify strips comments and whitespace. Takes precedence over Prettify.
	Minify bool
	// Prettify reformats the output one declaration per line.
	Prettify bool
	// Banner is prepended to every output file.
	Banner string
	// Footer is appended to every output file.
	Footer string
	// DryRun skips writing and returns the CSS in each Result instead.
	DryRun bool
	// Concurrency limits how many files are compiled at once.
	// Zero or less means no limit.
	Concurrency int
	// Silent suppresses the outbase warning.
	Silent bool
	// Processor replaces the processor selected by Minify and Prettify.
	Processor Processor
}

// Result describes one compiled file. CSS is only set for dry runs.
type Result struct {
	outpath.InOutMap
	CSS string `json:"css,omitempty"`
}

// Compile compiles every input file. Results keep the input order.
// The first failure cancels the remaining work and is returned with the
// offending input file named.
func Compile(ctx context.Context, files []string, opts Options) ([]Result, error) {
	maps, err := outpath.ResolveOutputFiles(files, opts.Options, opts.Silent)
	if err != nil {
		return nil, err
	}

	proc := processorFor(opts)
	logger := logging.GetLogger("compiler")
	results := make([]Result, len(maps))

	g, gCtx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, m := range maps {
		i, m := i, m
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			css, err := compileFile(m, proc, opts)
			if err != nil {
				return processingError(m.InFile, err)
			}

			results[i] = Result{InOutMap: m}
			if opts.DryRun {
				results[i].CSS = css
			}
			logger.Debug().Str("in", m.InFile).Str("out", m.OutFile).Int("bytes", len(css)).Msg("Compiled")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CompileString processes and bannerifies a raw CSS string.
func CompileString(css string, opts Options) (string, error) {
	out, err := processorFor(opts).Process(css)
	if err != nil {
		return "", err
	}
	return bannerify(out, opts.Banner, opts.Footer), nil
}

func compileFile(m outpath.InOutMap, proc Processor, opts Options) (string, error) {
	src, err := loadFile(m.InFile)
	if err != nil {
		return "", err
	}

	css, err := proc.Process(src)
	if err != nil {
		return "", err
	}
	css = bannerify(css, opts.Banner, opts.Footer)

	if opts.DryRun {
		return css, nil
	}
	return css, writeFile(m.OutFile, css)
}

func processorFor(opts Options) Processor {
	if opts.Processor != nil {
		return opts.Processor
	}
	return NewProcessor(opts)
}

func bannerify(css, banner, footer string) string {
	if banner != "" {
		css = banner + "\n" + css
	}
	if footer != "" {
		css = strings.TrimSuffix(css, "\n") + "\n" + footer + "\n"
	}
	return css
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	// #nosec G306 - generated CSS is meant to be world-readable
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// processingError names the failing input and indents the cause below it.
func processingError(inFile string, err error) error {
	msg := strings.ReplaceAll(err.Error(), "\n", "\n  ")
	return &Error{InFile: inFile, Err: err, msg: "processing " + inFile + "\n  " + msg}
}

// Error is returned by Compile when an input file fails to compile.
type Error struct {
	InFile string
	Err    error
	msg    string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.Err }
