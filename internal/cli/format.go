package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/geoknoesis/turtlefmt/formatter"
	"github.com/geoknoesis/turtlefmt/rdf"
)

// ErrCheckFailed is returned by `check` when a file is not formatted.
var ErrCheckFailed = errors.New("some files are not formatted")

// sourceExtensions are the files picked up when a directory is given.
var sourceExtensions = []string{"ttl", "nt", "jsonld"}

func newFormatCommand(opts *options) *cobra.Command {
	var (
		write       bool
		inputFormat string
	)
	cmd := &cobra.Command{
		Use:   "format [paths|globs...]",
		Short: "Format Turtle files",
		Long: `Format the given files, directories or doublestar globs (e.g. "**/*.ttl").
Without arguments the document is read from stdin and written to stdout.
Inputs that are not Turtle are converted; with -w their output is written
next to the input with a .ttl extension.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, logger, err := opts.formatter(cmd)
			if err != nil {
				return err
			}
			format, err := parseInputFormat(inputFormat)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return f.FormatReader(cmd.Context(), opts.stdin, opts.stdout, orTurtle(format))
			}
			paths, err := expandPaths(args)
			if err != nil {
				return err
			}
			for _, path := range paths {
				result, err := formatFile(cmd.Context(), f, path, format)
				if err != nil {
					return err
				}
				if !write {
					if _, err := opts.stdout.Write(result.output); err != nil {
						return err
					}
					continue
				}
				if err := result.save(); err != nil {
					return err
				}
				logger.Info("formatted", slog.String("path", result.target), slog.Bool("changed", result.changed))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result to the file instead of stdout")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "Input format (turtle, ntriples, jsonld); detected from the extension when empty")
	return cmd
}

func newCheckCommand(opts *options) *cobra.Command {
	var inputFormat string
	cmd := &cobra.Command{
		Use:   "check [paths|globs...]",
		Short: "Report files whose formatting differs",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := opts.formatter(cmd)
			if err != nil {
				return err
			}
			format, err := parseInputFormat(inputFormat)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				var input bytes.Buffer
				if _, err := input.ReadFrom(opts.stdin); err != nil {
					return err
				}
				var out bytes.Buffer
				if err := f.FormatReader(cmd.Context(), bytes.NewReader(input.Bytes()), &out, orTurtle(format)); err != nil {
					return err
				}
				if !bytes.Equal(input.Bytes(), out.Bytes()) {
					fmt.Fprintln(opts.stderr, "<stdin> is not formatted")
					return ErrCheckFailed
				}
				return nil
			}
			paths, err := expandPaths(args)
			if err != nil {
				return err
			}
			failed := 0
			for _, path := range paths {
				result, err := formatFile(cmd.Context(), f, path, format)
				if err != nil {
					return err
				}
				if result.changed {
					fmt.Fprintf(opts.stderr, "%s is not formatted\n", path)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", ErrCheckFailed, failed, len(paths))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "Input format (turtle, ntriples, jsonld); detected from the extension when empty")
	return cmd
}

func parseInputFormat(value string) (rdf.Format, error) {
	if value == "" {
		return "", nil
	}
	format, ok := rdf.ParseFormat(value)
	if !ok {
		return "", fmt.Errorf("%w: %s", rdf.ErrUnsupportedFormat, value)
	}
	return format, nil
}

func orTurtle(format rdf.Format) rdf.Format {
	if format == "" {
		return rdf.FormatTurtle
	}
	return format
}

// expandPaths resolves files, directories and globs into a sorted list of
// distinct files. Directories contribute every source file below them.
func expandPaths(args []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			pattern := filepath.ToSlash(filepath.Join(arg, "**", "*.{"+strings.Join(sourceExtensions, ",")+"}"))
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				return nil, fmt.Errorf("glob %s: %w", pattern, err)
			}
			for _, m := range matches {
				add(m)
			}
		case err == nil:
			add(arg)
		case doublestar.ValidatePathPattern(arg) && hasMeta(arg):
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("glob %s: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %s", arg)
			}
			for _, m := range matches {
				add(m)
			}
		default:
			return nil, err
		}
	}
	sort.Strings(out)
	return out, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// fileResult is the formatted form of one input file.
type fileResult struct {
	target  string
	output  []byte
	changed bool
	mode    os.FileMode
}

// formatFile formats path. format may be empty to detect it from the file
// name. The target of a non-Turtle input is the same name with a .ttl
// extension.
func formatFile(ctx context.Context, f *formatter.Formatter, path string, format rdf.Format) (fileResult, error) {
	if format == "" {
		format = rdf.DetectFormat(path)
	}
	input, err := os.ReadFile(path)
	if err != nil {
		return fileResult{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return fileResult{}, err
	}
	var out bytes.Buffer
	if err := f.FormatReader(ctx, bytes.NewReader(input), &out, format); err != nil {
		return fileResult{}, fmt.Errorf("%s: %w", path, err)
	}

	result := fileResult{target: path, output: out.Bytes(), mode: info.Mode().Perm()}
	if format != rdf.FormatTurtle {
		result.target = strings.TrimSuffix(path, filepath.Ext(path)) + ".ttl"
		existing, err := os.ReadFile(result.target)
		result.changed = err != nil || !bytes.Equal(existing, result.output)
		return result, nil
	}
	result.changed = !bytes.Equal(input, result.output)
	return result, nil
}

func (r fileResult) save() error {
	if !r.changed {
		return nil
	}
	return os.WriteFile(r.target, r.output, r.mode)
}
