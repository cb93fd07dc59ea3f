// Package report prints build results for the esincss CLI.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/yacobolo/esincss/internal/compiler"
	"github.com/yacobolo/esincss/internal/discover"
)

// Output formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config controls how results are printed.
type Config struct {
	UseColors bool
	Format    string
	Verbose   bool
}

// Reporter handles formatting and outputting build results
type Reporter struct {
	w         io.Writer
	useColors bool
	format    string
	verbose   bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config Config) *Reporter {
	format := config.Format
	if format == "" {
		format = FormatText
	}
	return &Reporter{
		w:         w,
		useColors: ShouldUseColors(config.UseColors, w),
		format:    format,
		verbose:   config.Verbose,
	}
}

// ShouldUseColors determines if colors should be enabled for w
func ShouldUseColors(explicit bool, w io.Writer) bool {
	// Explicit flag wins
	if explicit {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return false
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintDiscovery outputs a one-line discovery summary in verbose mode
func (r *Reporter) PrintDiscovery(stats discover.Stats) {
	if !r.verbose || r.format == FormatJSON {
		return
	}
	line := fmt.Sprintf("✓ Found %s", pluralizeCount(stats.FilesSelected, "file", "files"))
	if stats.FilesSkipped > 0 {
		line += fmt.Sprintf(" (skipped %s)", pluralizeCount(stats.FilesSkipped, "ignored file", "ignored files"))
	}
	fmt.Fprintln(r.w, RenderStyle(StyleGray, line, r.useColors))
}

// PrintResults outputs one line per compiled file followed by a summary.
// Dry runs print the generated CSS instead of the file list.
func (r *Reporter) PrintResults(results []compiler.Result, elapsed time.Duration, dryRun bool) error {
	if r.format == FormatJSON {
		return WriteJSON(r.w, results, elapsed)
	}

	for _, res := range results {
		if dryRun {
			fmt.Fprintf(r.w, "%s\n%s\n",
				RenderStyle(StyleCyan, "/* "+res.OutFile+" */", r.useColors),
				strings.TrimSuffix(res.CSS, "\n"))
			continue
		}
		if r.verbose {
			fmt.Fprintf(r.w, "  %s %s %s\n",
				RenderStyle(StyleGray, res.InFile, r.useColors),
				RenderStyle(StyleGray, "→", r.useColors),
				RenderStyle(StyleCyan, res.OutFile, r.useColors))
		}
	}

	verb := "Compiled"
	if dryRun {
		verb = "Rendered"
	}
	summary := fmt.Sprintf("✓ %s %s in %s", verb, pluralizeCount(len(results), "file", "files"), formatElapsed(elapsed))
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, summary, r.useColors))
	return nil
}

// PrintError outputs a build failure
func (r *Reporter) PrintError(err error) {
	fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleRed, "✗ Build failed:", r.useColors), err)
}

// PrintNoFiles outputs the message for patterns that matched nothing
func (r *Reporter) PrintNoFiles(patterns []string) {
	fmt.Fprintf(r.w, "%s %s\n",
		RenderStyle(StyleYellow, "No files found matching", r.useColors),
		strings.Join(patterns, " "))
}

// PrintWatching outputs the watch mode banner
func (r *Reporter) PrintWatching(roots []string) {
	fmt.Fprintf(r.w, "%s %s\n",
		RenderStyle(StyleCyan, "Watching", r.useColors),
		strings.Join(roots, ", "))
	fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Press Ctrl+C to stop", r.useColors))
}

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Files     []compiler.Result `json:"files"`
	Count     int               `json:"count"`
	ElapsedMs int64             `json:"elapsed_ms"`
}

// WriteJSON writes the build results as JSON
func WriteJSON(w io.Writer, results []compiler.Result, elapsed time.Duration) error {
	if results == nil {
		results = []compiler.Result{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(JSONOutput{
		Files:     results,
		Count:     len(results),
		ElapsedMs: elapsed.Milliseconds(),
	})
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

func formatElapsed(d time.Duration) string {
	if d < time.Millisecond {
		return d.Round(time.Microsecond).String()
	}
	return d.Round(time.Millisecond).String()
}
