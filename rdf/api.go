package rdf

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxDepth bounds nesting of [] property lists and collections.
const DefaultMaxDepth = 1000

// Option configures parser behavior.
type Option func(*Options)

// Options configures parser behavior.
type Options struct {
	// BaseIRI resolves relative IRIs when the input has no @base directive.
	BaseIRI string
	// MaxDepth limits nesting of [] and () constructs. Zero means DefaultMaxDepth.
	MaxDepth int
	// StrictIRIValidation rejects IRIs that fail ValidateIRI.
	StrictIRIValidation bool
}

func defaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

func applyOptions(opts []Option) Options {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.MaxDepth <= 0 {
		options.MaxDepth = DefaultMaxDepth
	}
	return options
}

// OptBaseIRI sets the base IRI used to resolve relative IRIs.
func OptBaseIRI(base string) Option {
	return func(opts *Options) {
		opts.BaseIRI = base
	}
}

// OptMaxDepth sets the maximum nesting depth limit.
func OptMaxDepth(maxDepth int) Option {
	return func(opts *Options) {
		opts.MaxDepth = maxDepth
	}
}

// OptStrictIRIValidation enables IRI validation while parsing.
func OptStrictIRIValidation() Option {
	return func(opts *Options) {
		opts.StrictIRIValidation = true
	}
}

// Document is a parsed RDF document: the graph plus what the parser learned
// about blank nodes along the way.
type Document struct {
	Graph      *Graph
	BlankNodes *BlankNodeMetadata
	// Base is the last base IRI in effect, if any.
	Base string
}

// Parse reads a document in the given format.
func Parse(ctx context.Context, r io.Reader, format Format, opts ...Option) (*Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	switch format {
	case FormatTurtle, FormatNTriples:
		return ParseTurtle(ctx, r, opts...)
	case FormatJSONLD:
		return ParseJSONLD(ctx, r, opts...)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ParseTurtleString is a convenience wrapper around ParseTurtle.
func ParseTurtleString(input string, opts ...Option) (*Document, error) {
	return ParseTurtle(context.Background(), strings.NewReader(input), opts...)
}
