// Package rdf provides the in-memory RDF model used by the Turtle formatter.
//
// It covers what a formatter needs from its input side:
//   - Terms and triples: IRI, BlankNode, Literal and Triple.
//   - Graph: a triple set with subject and object indexes and a prefix table.
//   - BlankNodeMetadata: first-appearance order and source labels of blank nodes.
//   - Loaders: ParseTurtle (Turtle and N-Triples) and ParseJSONLD, behind Parse.
//   - Isomorphic, for checking that a rewritten document kept its meaning.
//
// Example:
//
//	doc, err := rdf.Parse(ctx, strings.NewReader(input), rdf.FormatTurtle)
//	if err != nil {
//	    // handle error
//	}
//	for _, t := range doc.Graph.Triples() {
//	    fmt.Println(t)
//	}
package rdf
