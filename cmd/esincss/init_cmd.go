package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .esincss.yaml config file",
	Long:  `Create a .esincss.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# esincss configuration
# Docs: https://github.com/yacobolo/esincss

# Shared settings
verbose: 0                 # 0 warnings | 1 info | 2 debug | 3 trace
quiet: false

# Build settings
build:
  include:
    - "src/**/*.css.tmpl"
  outdir: dist
  # outbase: src           # default: common ancestor of the inputs
  ext: css
  minify: false
  prettify: false          # ignored when minify is set
  banner: ""
  footer: ""
  concurrency: 0           # 0 = number of CPUs
  redirect: []             # e.g. "^dist/legacy/=>dist/"
  gitignore: .gitignore
  output-format: text      # text | json
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
