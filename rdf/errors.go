package rdf

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeUnsupportedFormat indicates an unsupported format.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodeInvalidTriple indicates a triple that cannot be part of a graph.
	ErrCodeInvalidTriple ErrorCode = "INVALID_TRIPLE"
	// ErrCodeDepthExceeded indicates that nesting depth exceeded the configured limit.
	ErrCodeDepthExceeded ErrorCode = "DEPTH_EXCEEDED"
	// ErrCodeParseError indicates a general parse error.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	// ErrCodeContextCanceled indicates the context was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
)

var (
	// ErrUnsupportedFormat indicates an unsupported format.
	ErrUnsupportedFormat = errors.New("rdf: unsupported RDF format")
	// ErrInvalidTriple indicates a triple with missing fields or a literal subject.
	ErrInvalidTriple = errors.New("rdf: invalid triple")
	// ErrDepthExceeded indicates that nesting depth exceeded the configured limit.
	ErrDepthExceeded = errors.New("rdf: nesting depth exceeded configured limit")
)

// Code returns the error code for an error, or ErrCodeParseError if unknown.
// Returns empty string for nil errors.
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return ErrCodeUnsupportedFormat
	case errors.Is(err, ErrInvalidTriple):
		return ErrCodeInvalidTriple
	case errors.Is(err, ErrDepthExceeded):
		return ErrCodeDepthExceeded
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCodeContextCanceled
	}
	return ErrCodeParseError
}

// ParseError provides structured context for parse failures.
type ParseError struct {
	Format    string // Format name (e.g., "turtle", "jsonld")
	Statement string // Offending input excerpt
	Line      int    // 1-based line number (0 if unknown)
	Column    int    // 1-based column number (0 if unknown)
	Offset    int    // Byte offset in input
	Err       error  // Underlying error
}

func (e *ParseError) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Format)
	if e.Line > 0 {
		if e.Column > 0 {
			fmt.Fprintf(&msg, ":%d:%d", e.Line, e.Column)
		} else {
			fmt.Fprintf(&msg, ":%d", e.Line)
		}
	} else if e.Offset >= 0 {
		fmt.Fprintf(&msg, " (offset %d)", e.Offset)
	}
	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())
	if excerpt := e.formatExcerpt(); excerpt != "" {
		msg.WriteString("\n  ")
		msg.WriteString(excerpt)
	}
	return msg.String()
}

// formatExcerpt shows the offending line with a caret under the error column.
func (e *ParseError) formatExcerpt() string {
	if e.Statement == "" {
		return ""
	}
	const contextLen = 40
	if e.Column <= 0 {
		if len(e.Statement) > 2*contextLen {
			return e.Statement[:2*contextLen] + "..."
		}
		return e.Statement
	}
	start := e.Column - 1
	if start > len(e.Statement) {
		start = len(e.Statement)
	}
	excerptStart := start - contextLen
	if excerptStart < 0 {
		excerptStart = 0
	}
	excerptEnd := start + contextLen
	if excerptEnd > len(e.Statement) {
		excerptEnd = len(e.Statement)
	}
	excerpt := e.Statement[excerptStart:excerptEnd]
	caret := start - excerptStart
	if excerptStart > 0 {
		excerpt = "..." + excerpt
		caret += 3
	}
	if excerptEnd < len(e.Statement) {
		excerpt += "..."
	}
	return excerpt + "\n  " + strings.Repeat(" ", caret) + "^"
}

func (e *ParseError) Unwrap() error { return e.Err }

// newParseError locates offset inside input and builds a ParseError carrying
// the line of input the offset falls on.
func newParseError(format, input string, offset int, err error) *ParseError {
	if offset > len(input) {
		offset = len(input)
	}
	line := 1 + strings.Count(input[:offset], "\n")
	lineStart := strings.LastIndexByte(input[:offset], '\n') + 1
	lineEnd := strings.IndexByte(input[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(input)
	} else {
		lineEnd += offset
	}
	return &ParseError{
		Format:    format,
		Statement: strings.TrimRight(input[lineStart:lineEnd], "\r"),
		Line:      line,
		Column:    offset - lineStart + 1,
		Offset:    offset,
		Err:       err,
	}
}
