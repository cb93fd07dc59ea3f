// Package main provides the esincss CLI tool for compiling stylesheet templates to CSS.
package main

import (
	"fmt"
	"os"

	"github.com/yacobolo/esincss/internal/report"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		useColors := report.ShouldUseColors(false, os.Stderr)
		fmt.Fprintf(os.Stderr, "%s %v\n", report.RenderStyle(report.StyleRed, "Error:", useColors), err)
		os.Exit(1)
	}
}
