package rdf

import (
	"path/filepath"
	"strings"
)

// Format identifies the input serializations the loader understands.
type Format string

const (
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
	FormatJSONLD   Format = "jsonld"
)

// ParseFormat normalizes a format string.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "turtle", "ttl":
		return FormatTurtle, true
	case "ntriples", "nt":
		return FormatNTriples, true
	case "jsonld", "json-ld", "json":
		return FormatJSONLD, true
	default:
		return "", false
	}
}

// DetectFormat guesses the format from a file name, defaulting to Turtle.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nt":
		return FormatNTriples
	case ".jsonld", ".json":
		return FormatJSONLD
	default:
		return FormatTurtle
	}
}
