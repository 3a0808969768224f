// Package cli implements the turtlefmt command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/turtlefmt/formatter"
)

// Version is the release reported by `turtlefmt version`.
var Version = "0.1.0"

const appName = "turtlefmt"

// options holds the flags shared by every command.
type options struct {
	stylePath     string
	logLevel      string
	indent        int
	maxLineLength int
	wrap          string
	eol           string
	charset       string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewRootCommand builds the command tree reading from stdin and writing to
// stdout and stderr.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdin: stdin, stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Deterministic Turtle formatter",
		Long: `turtlefmt rewrites RDF Turtle documents into one canonical layout.

Subjects, predicates, objects and prefixes are sorted into a total order,
blank nodes are nested in brackets wherever possible, and the layout follows
a style that can be loaded from a YAML file and adjusted with flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.stylePath, "style", "", "YAML style file")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.IntVar(&opts.indent, "indent", 2, "Indentation size in spaces")
	flags.IntVar(&opts.maxLineLength, "max-line-length", 100, "Line length at which lists are wrapped")
	flags.StringVar(&opts.wrap, "wrap", "FOR_LONG_LINES", "List wrapping (FOR_LONG_LINES, ALWAYS, NEVER)")
	flags.StringVar(&opts.eol, "eol", "LF", "Line ending (LF, CR, CRLF)")
	flags.StringVar(&opts.charset, "charset", "UTF_8", "Output charset (UTF_8, UTF_8_BOM, LATIN1, UTF_16_BE, UTF_16_LE)")

	cmd.AddCommand(
		newFormatCommand(opts),
		newCheckCommand(opts),
		newWatchCommand(opts),
		newStyleCommand(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(opts.stdout, "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

func (o *options) logger() *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(o.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(o.stderr, &slog.HandlerOptions{Level: level}))
}

// style loads the style file, if any, and applies the flags the user set
// explicitly on top of it.
func (o *options) style(cmd *cobra.Command) (formatter.Style, error) {
	style := formatter.DefaultStyle()
	if o.stylePath != "" {
		loaded, err := formatter.LoadStyle(o.stylePath)
		if err != nil {
			return formatter.Style{}, err
		}
		style = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("indent") {
		style.IndentSize = o.indent
	}
	if flags.Changed("max-line-length") {
		style.MaxLineLength = o.maxLineLength
	}
	if flags.Changed("wrap") {
		if err := style.WrapListItems.UnmarshalText([]byte(o.wrap)); err != nil {
			return formatter.Style{}, err
		}
	}
	if flags.Changed("eol") {
		if err := style.EndOfLine.UnmarshalText([]byte(o.eol)); err != nil {
			return formatter.Style{}, err
		}
	}
	if flags.Changed("charset") {
		if err := style.Charset.UnmarshalText([]byte(o.charset)); err != nil {
			return formatter.Style{}, err
		}
	}
	return style, style.Validate()
}

func (o *options) formatter(cmd *cobra.Command) (*formatter.Formatter, *slog.Logger, error) {
	style, err := o.style(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := o.logger()
	f, err := formatter.New(style, formatter.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return f, logger, nil
}

func newStyleCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "style",
		Short: "Print the effective style as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := opts.style(cmd)
			if err != nil {
				return err
			}
			data, err := formatter.MarshalStyle(style)
			if err != nil {
				return err
			}
			_, err = opts.stdout.Write(data)
			return err
		},
	}
}
