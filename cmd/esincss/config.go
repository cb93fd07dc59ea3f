package main

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/esincss/internal/compiler"
	"github.com/yacobolo/esincss/internal/discover"
	"github.com/yacobolo/esincss/internal/outpath"
	"github.com/yacobolo/esincss/internal/report"
)

const defaultConfigPath = ".esincss.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence; only flags that were explicitly set,
	// so flag defaults never shadow the config file keys)
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, flagValue(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// flagValue returns a flag's typed value, covering the flag types
// posflag.FlagVal leaves as strings.
func flagValue(flags *pflag.FlagSet, f *pflag.Flag) interface{} {
	switch f.Value.Type() {
	case "count":
		n, _ := flags.GetCount(f.Name)
		return n
	case "stringArray":
		v, _ := flags.GetStringArray(f.Name)
		return v
	}
	return posflag.FlagVal(flags, f)
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (ESINCSS_* prefix)
	if err := k.Load(env.Provider("ESINCSS_", ".", func(s string) string {
		// ESINCSS_BUILD_OUTDIR -> build.outdir
		// ESINCSS_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "ESINCSS_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildSettings is everything a build run needs, resolved from koanf state.
type buildSettings struct {
	Patterns  []string
	GitIgnore string
	Compile   compiler.Options
	Watch     bool
	Format    string
	Verbosity int
	Quiet     bool
	Color     bool
}

// buildBuildSettings constructs the build settings from koanf state.
// Positional args win over the configured include patterns.
func buildBuildSettings(args []string) (buildSettings, error) {
	opts, err := buildCompileOptions()
	if err != nil {
		return buildSettings{}, err
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = k.Strings("build.include")
	}

	settings := buildSettings{
		Patterns:  patterns,
		GitIgnore: getStringWithFallback("gitignore", "build.gitignore", discover.DefaultGitIgnore),
		Compile:   opts,
		Watch:     getBoolWithFallback("watch", "build.watch", false),
		Format:    getStringWithFallback("output-format", "build.output-format", report.FormatText),
		Verbosity: getIntWithFallback("verbose", "verbose", 0),
		Quiet:     getBoolWithFallback("quiet", "quiet", false),
		Color:     getBoolWithFallback("color", "color", false),
	}
	settings.Compile.Silent = settings.Quiet

	if settings.Format != report.FormatText && settings.Format != report.FormatJSON {
		return buildSettings{}, fmt.Errorf("unknown output format %q (want %s or %s)", settings.Format, report.FormatText, report.FormatJSON)
	}
	return settings, nil
}

// buildCompileOptions constructs the compiler's Options struct from koanf state.
func buildCompileOptions() (compiler.Options, error) {
	var rules []string
	if r := k.Strings("redirect"); len(r) > 0 {
		rules = r
	} else {
		rules = k.Strings("build.redirect")
	}
	redirect, err := parseRedirects(rules)
	if err != nil {
		return compiler.Options{}, err
	}

	return compiler.Options{
		Options: outpath.Options{
			Outdir:   getStringWithFallback("outdir", "build.outdir", ""),
			Outbase:  getStringWithFallback("outbase", "build.outbase", ""),
			Ext:      getStringWithFallback("ext", "build.ext", outpath.DefaultExt),
			Redirect: redirect,
		},
		Minify:      getBoolWithFallback("minify", "build.minify", false),
		Prettify:    getBoolWithFallback("prettify", "build.prettify", false),
		Banner:      getStringWithFallback("banner", "build.banner", ""),
		Footer:      getStringWithFallback("footer", "build.footer", ""),
		DryRun:      getBoolWithFallback("dry-run", "build.dry-run", false),
		Concurrency: getIntWithFallback("concurrency", "build.concurrency", runtime.NumCPU()),
	}, nil
}

type redirectRule struct {
	re          *regexp.Regexp
	replacement string
}

// parseRedirects turns "regexp=>replacement" rules into an output path
// redirect. Rules apply in order, each to the result of the previous one.
// Replacements may reference capture groups as $1 or ${name}.
func parseRedirects(specs []string) (func(outFile, inFile string) (string, error), error) {
	if len(specs) == 0 {
		return nil, nil
	}

	rules := make([]redirectRule, 0, len(specs))
	for _, spec := range specs {
		pattern, replacement, ok := strings.Cut(spec, "=>")
		if !ok {
			return nil, fmt.Errorf("invalid redirect %q (want regexp=>replacement)", spec)
		}
		re, err := regexp.Compile(strings.TrimSpace(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid redirect %q: %w", spec, err)
		}
		rules = append(rules, redirectRule{re: re, replacement: strings.TrimSpace(replacement)})
	}

	return func(outFile, _ string) (string, error) {
		for _, r := range rules {
			outFile = r.re.ReplaceAllString(outFile, r.replacement)
		}
		return outFile, nil
	}, nil
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
