package rdf

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateIRI reports whether iri is a well-formed absolute or relative IRI
// that can be written between angle brackets or abbreviated with a prefix.
func ValidateIRI(iri string) error {
	if iri == "" {
		return fmt.Errorf("empty IRI")
	}
	parsed, err := url.Parse(iri)
	if err != nil {
		return fmt.Errorf("invalid IRI syntax: %w", err)
	}
	if parsed.Scheme == "" {
		if strings.HasPrefix(iri, "//") {
			return fmt.Errorf("relative IRI without scheme: %s", iri)
		}
		if scheme, _, ok := strings.Cut(iri, ":"); ok && !strings.ContainsAny(scheme, "/?#") && !isScheme(scheme) {
			return fmt.Errorf("IRI appears to be missing a scheme: %s", iri)
		}
	} else if first := parsed.Scheme[0]; !((first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')) {
		return fmt.Errorf("scheme must start with a letter: %s", iri)
	}
	for i, r := range iri {
		if isDisallowedIRIChar(r) {
			return fmt.Errorf("invalid character %q at position %d in IRI: %s", r, i, iri)
		}
	}
	return nil
}

func isScheme(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}
