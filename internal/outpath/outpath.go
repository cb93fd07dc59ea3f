// Package outpath maps compiler input files to their output file paths.
//
// Resolution is a pure string computation: it never touches the file system
// beyond reading the current working directory, so the same inputs and
// options always produce the same outputs.
//
// # Example
//
//	files, err := outpath.ResolveOutputFiles(
//		[]string{"src/css/styles.css.go", "src/css/resets.go"},
//		outpath.Options{Outdir: "dist/styles", Outbase: "./src"},
//		false,
//	)
//	// files[0].OutFile == "dist/styles/css/styles.css"
//	// files[1].OutFile == "dist/styles/css/resets.css"
package outpath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yacobolo/esincss/internal/logging"
)

// DefaultExt is the output file extension used when none is configured.
const DefaultExt = "css"

// InOutMap pairs one input file with its resolved output file.
type InOutMap struct {
	InFile  string `json:"inFile"`
	OutFile string `json:"outFile"`
}

// Options controls where output files are placed. Empty strings mean "not set".
type Options struct {
	// Outdir is the target root directory. When empty, output files are
	// written next to their sources.
	Outdir string
	// Outbase overrides the computed common ancestor of the input files.
	// It is ignored (with a warning) when it is not a prefix of that path.
	Outbase string
	// Ext is the output file extension, with or without a leading dot.
	Ext string
	// ExtFunc computes the extension per input file. An empty return value
	// falls back to DefaultExt. Takes precedence over Ext.
	ExtFunc func(inFile string) string
	// Redirect gets the final say over each output path. An empty result, or
	// one equal to the input path, is ignored. Errors abort the resolution.
	Redirect func(outFile, inFile string) (string, error)
}

// GetCommonPath returns the longest directory prefix shared by all fileNames,
// with a trailing slash, or "" when there is none.
func GetCommonPath(fileNames []string) string {
	if len(fileNames) == 0 || fileNames[0] == "" {
		return ""
	}

	common := strings.Split(fileNames[0], "/")
	common = common[:len(common)-1]

	for _, file := range fileNames[1:] {
		segments := strings.Split(file, "/")
		i := 0
		for i < len(common) && i < len(segments) && common[i] == segments[i] {
			i++
		}
		common = common[:i]
	}

	if len(common) == 0 {
		return ""
	}
	return strings.Join(common, "/") + "/"
}

// ResolveOutputFiles computes one InOutMap per input file, in input order.
//
// The incompatible-outbase warning is logged unless silent is set. The only
// error source is opts.Redirect.
func ResolveOutputFiles(inputFiles []string, opts Options, silent bool) ([]InOutMap, error) {
	cwd, _ := os.Getwd()

	var outdir, outbase string
	if opts.Outdir != "" {
		outdir = relativeDir(cwd, opts.Outdir)
	}
	if opts.Outbase != "" {
		outbase = relativeDir(cwd, opts.Outbase)
	}

	files := make([]string, len(inputFiles))
	for i, f := range inputFiles {
		files[i] = relativeFile(cwd, f)
	}

	commonPath := GetCommonPath(files)
	if outbase != "" {
		if strings.HasPrefix(commonPath, outbase) {
			commonPath = outbase
		} else if !silent {
			logger := logging.GetLogger("outpath")
			logger.Warn().
				Str("outbase", opts.Outbase).
				Str("commonPath", commonPath).
				Msg("Ignoring `outbase` option because it does not match the common path of the input files")
		}
	}

	result := make([]InOutMap, 0, len(files))
	for i, inFile := range files {
		outFile := inFile
		if ext := extname(outFile); ext != "" {
			outFile = outFile[:len(outFile)-len(ext)]
		}

		targetExt := "." + strings.TrimPrefix(resolveExt(opts, inputFiles[i]), ".")
		if extname(outFile) != targetExt {
			outFile += targetExt
		}

		if outdir != "" {
			outFile = outdir + strings.TrimPrefix(outFile, commonPath)
		}

		if opts.Redirect != nil {
			redirected, err := opts.Redirect(outFile, inFile)
			if err != nil {
				return nil, fmt.Errorf("redirect %s: %w", inFile, err)
			}
			if redirected != "" && redirected != inFile {
				outFile = redirected
			}
		}

		result = append(result, InOutMap{InFile: inFile, OutFile: outFile})
	}

	return result, nil
}

// resolveExt picks the raw (possibly dotted) extension for one input file.
func resolveExt(opts Options, inFile string) string {
	if opts.ExtFunc != nil {
		if ext := opts.ExtFunc(inFile); ext != "" {
			return ext
		}
		return DefaultExt
	}
	if opts.Ext != "" {
		return opts.Ext
	}
	return DefaultExt
}

// extname returns the extension of the last path segment, including the dot.
// Dot-files such as ".bashrc" have no extension.
func extname(p string) string {
	base := p[strings.LastIndex(p, "/")+1:]
	if strings.Trim(base, ".") == "" {
		return ""
	}
	i := strings.LastIndex(base, ".")
	if i <= 0 {
		return ""
	}
	return base[i:]
}

// relativeDir makes dir relative to cwd with exactly one trailing slash.
// The cwd itself becomes "./".
func relativeDir(cwd, dir string) string {
	abs := dir
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(cwd, dir)
	}
	rel, err := filepath.Rel(cwd, abs)
	if err != nil {
		rel = filepath.Clean(dir)
	}
	rel = filepath.ToSlash(rel)
	if rel == "" {
		rel = "."
	}
	return strings.TrimSuffix(rel, "/") + "/"
}

// relativeFile converts absolute input paths to cwd-relative slash paths.
// Relative paths are returned untouched.
func relativeFile(cwd, file string) string {
	if !filepath.IsAbs(file) {
		return file
	}
	rel, err := filepath.Rel(cwd, file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}
