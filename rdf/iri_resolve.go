package rdf

import (
	"net/url"
	"strings"
)

// resolveIRI resolves a relative IRI against a base IRI according to RFC 3986.
func resolveIRI(baseStr, relative string) string {
	baseURL, err := url.Parse(baseStr)
	if err != nil {
		return concatIRI(baseStr, relative)
	}
	relURL, err := url.Parse(relative)
	if err != nil {
		return concatIRI(baseStr, relative)
	}
	if relURL.Scheme != "" {
		return relative
	}
	return baseURL.ResolveReference(relURL).String()
}

func concatIRI(baseStr, relative string) string {
	if strings.HasSuffix(baseStr, "/") {
		return baseStr + relative
	}
	if lastSlash := strings.LastIndex(baseStr, "/"); lastSlash >= 0 {
		return baseStr[:lastSlash+1] + relative
	}
	return baseStr + "/" + relative
}
