package rdf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

const jsonLDDefaultGraph = "@default"

// ParseJSONLD converts a JSON-LD document to a graph. Only the default graph
// is kept. Blank node labels produced by the JSON-LD processor are recorded
// as original labels, in the order the processor emitted them.
func ParseJSONLD(ctx context.Context, r io.Reader, opts ...Option) (*Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	options := applyOptions(opts)
	var input interface{}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&input); err != nil {
		return nil, &ParseError{Format: string(FormatJSONLD), Offset: int(dec.InputOffset()), Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	proc := ld.NewJsonLdProcessor()
	result, err := proc.ToRDF(input, newJSONGoldOptions(options))
	if err != nil {
		return nil, &ParseError{Format: string(FormatJSONLD), Offset: -1, Err: err}
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return nil, fmt.Errorf("jsonld: unexpected ToRDF result %T", result)
	}

	doc := &Document{Graph: NewGraph(), BlankNodes: NewBlankNodeMetadata(), Base: options.BaseIRI}
	conv := jsonLDConverter{doc: doc, nodes: map[string]BlankNode{}}
	for _, quad := range dataset.Graphs[jsonLDDefaultGraph] {
		if quad == nil {
			continue
		}
		triple, err := conv.triple(quad)
		if err != nil {
			return nil, &ParseError{Format: string(FormatJSONLD), Offset: -1, Err: err}
		}
		if err := doc.Graph.Add(triple); err != nil {
			return nil, err
		}
	}
	conv.declarePrefixes(input)
	return doc, nil
}

func newJSONGoldOptions(opts Options) *ld.JsonLdOptions {
	return ld.NewJsonLdOptions(opts.BaseIRI)
}

type jsonLDConverter struct {
	doc   *Document
	nodes map[string]BlankNode
}

func (c *jsonLDConverter) triple(quad *ld.Quad) (Triple, error) {
	s, err := c.term(quad.Subject)
	if err != nil {
		return Triple{}, err
	}
	p, err := c.term(quad.Predicate)
	if err != nil {
		return Triple{}, err
	}
	predicate, ok := p.(IRI)
	if !ok {
		return Triple{}, fmt.Errorf("%w: predicate must be IRI: %s", ErrInvalidTriple, p)
	}
	o, err := c.term(quad.Object)
	if err != nil {
		return Triple{}, err
	}
	return Triple{S: s, P: predicate, O: o}, nil
}

func (c *jsonLDConverter) term(node ld.Node) (Term, error) {
	switch v := node.(type) {
	case *ld.IRI:
		return c.term(*v)
	case *ld.BlankNode:
		return c.term(*v)
	case *ld.Literal:
		return c.term(*v)
	case ld.IRI:
		return IRI{Value: v.Value}, nil
	case ld.BlankNode:
		label := strings.TrimPrefix(v.Attribute, "_:")
		if b, ok := c.nodes[label]; ok {
			return b, nil
		}
		b := BlankNode{ID: fmt.Sprintf("b%d", len(c.nodes)+1)}
		c.nodes[label] = b
		c.doc.BlankNodes.RegisterLabeled(b, label)
		return b, nil
	case ld.Literal:
		lit := Literal{Lexical: v.Value, Lang: v.Language}
		if v.Language == "" && v.Datatype != "" && v.Datatype != XSDString.Value {
			lit.Datatype = IRI{Value: v.Datatype}
		}
		return lit, nil
	case nil:
		return nil, fmt.Errorf("%w: missing term", ErrInvalidTriple)
	default:
		return nil, fmt.Errorf("jsonld: unexpected node type %T", node)
	}
}

// declarePrefixes turns string-valued @context entries that look like
// namespaces into graph prefixes.
func (c *jsonLDConverter) declarePrefixes(input interface{}) {
	doc, ok := input.(map[string]interface{})
	if !ok {
		return
	}
	contexts, ok := doc["@context"].([]interface{})
	if !ok {
		contexts = []interface{}{doc["@context"]}
	}
	for _, ctx := range contexts {
		entries, ok := ctx.(map[string]interface{})
		if !ok {
			continue
		}
		keys := make([]string, 0, len(entries))
		for key := range entries {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			ns, ok := entries[key].(string)
			if !ok || strings.HasPrefix(key, "@") || !IsPNPrefix(key) {
				continue
			}
			if strings.HasSuffix(ns, "/") || strings.HasSuffix(ns, "#") {
				c.doc.Graph.SetPrefix(key, ns)
			}
		}
	}
}
