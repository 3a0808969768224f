// Package formatter renders RDF graphs as deterministic, style-configurable
// Turtle.
//
// A Formatter orders subjects, predicates, objects and prefixes into a total
// order, decides which blank nodes need a label and which can be nested in
// brackets, and lays the statements out according to its Style. Formatting
// the same graph with the same Style always yields the same bytes.
package formatter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/geoknoesis/turtlefmt/rdf"
)

// Formatter writes graphs as Turtle. A Formatter is safe for concurrent use;
// every call builds its own render state.
type Formatter struct {
	style Style
	log   *slog.Logger
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithLogger sets the logger for render diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Formatter) {
		if logger != nil {
			f.log = logger
		}
	}
}

// New validates style and returns a Formatter using a private copy of it.
func New(style Style, opts ...Option) (*Formatter, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	f := &Formatter{style: style.clone(), log: slog.Default()}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Style returns a copy of the formatter's style.
func (f *Formatter) Style() Style {
	return f.style.clone()
}

// Format writes g to w. meta may be nil; without it blank node labels from
// the source are not reused and blank node order falls back to identifiers.
//
// Write failures do not stop the render. They are logged, and the first one
// is returned wrapped in ErrOutput once the render is complete.
func (f *Formatter) Format(w io.Writer, g *rdf.Graph, meta *rdf.BlankNodeMetadata) error {
	style := &f.style
	prefixes := newPrefixTable(g, style)
	cmp := newComparators(style, prefixes, meta)
	labels, err := resolveBlankNodes(g, meta, style, cmp)
	if err != nil {
		return err
	}
	r := &render{
		style:    style,
		graph:    g,
		prefixes: prefixes,
		cmp:      cmp,
		labels:   labels,
		eol:      style.eol(),
	}
	out := newSink(w, style.Charset, f.log)
	e := newEmitter(r, out)

	e.writePrefixes()
	e.writeNamedSubjects()
	e.writeLabeledBlankSubjects()
	if style.InsertFinalNewline && e.last != 0 && e.last != '\n' && e.last != '\r' {
		e.newLine()
	}

	f.log.Debug("formatted graph",
		slog.Int("resources", e.visited.len()),
		slog.Int("named_blank_nodes", len(labels)))
	if err := out.flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	return nil
}

// FormatGraph returns g formatted as a string.
func (f *Formatter) FormatGraph(g *rdf.Graph) (string, error) {
	var buf bytes.Buffer
	if err := f.Format(&buf, g, nil); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatContent parses Turtle text and formats it, reusing the blank node
// labels and order of the source.
func (f *Formatter) FormatContent(ctx context.Context, content string) (string, error) {
	var buf bytes.Buffer
	if err := f.FormatReader(ctx, strings.NewReader(content), &buf, rdf.FormatTurtle); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatReader parses r in the given format and writes the formatted graph
// to w.
func (f *Formatter) FormatReader(ctx context.Context, r io.Reader, w io.Writer, format rdf.Format, opts ...rdf.Option) error {
	doc, err := rdf.Parse(ctx, r, format, opts...)
	if err != nil {
		return err
	}
	return f.Format(w, doc.Graph, doc.BlankNodes)
}

func (e *emitter) writePrefixes() {
	s := e.r.style
	entries := e.r.prefixes.used(e.r.graph, s.KeepUnusedPrefixes)
	width := 0
	for _, entry := range entries {
		if n := utf8.RuneCountInString(entry.prefix); n > width {
			width = n
		}
	}
	beforeDot := ""
	switch s.BeforeDot {
	case GapSpace:
		beforeDot = " "
	case GapNewline:
		beforeDot = e.r.eol
	}
	for _, entry := range entries {
		name := entry.prefix
		padding := strings.Repeat(" ", width-utf8.RuneCountInString(name))
		switch s.AlignPrefixes {
		case AlignLeft:
			name += padding
		case AlignRight:
			name = padding + name
		}
		e.write("@prefix " + name + ": <" + entry.namespace + ">" + beforeDot + ".")
		e.newLine()
	}
	if len(entries) > 0 {
		e.newLine()
	}
}

// namedSubjectOrder lists subjects typed with a class of SubjectOrder first,
// class by class, followed by every subject with other statements. Blank
// nodes used as objects are left to the places that reference them.
func (r *render) namedSubjectOrder() []rdf.Term {
	var ordered []rdf.Term
	byCanonical := func(terms []rdf.Term) {
		sort.SliceStable(terms, func(i, j int) bool { return r.cmp.compareNodes(terms[i], terms[j]) < 0 })
	}
	wellKnown := map[rdf.IRI]bool{}
	for _, class := range r.style.SubjectOrder {
		wellKnown[class] = true
		var group []rdf.Term
		for _, t := range r.graph.Match(nil, rdf.RDFType, class) {
			group = append(group, t.S)
		}
		byCanonical(group)
		ordered = append(ordered, group...)
	}
	var others []rdf.Term
	seen := map[rdf.Term]bool{}
	for _, t := range r.graph.Triples() {
		if class, ok := t.O.(rdf.IRI); ok && t.P == rdf.RDFType && wellKnown[class] {
			continue
		}
		if !seen[t.S] {
			seen[t.S] = true
			others = append(others, t.S)
		}
	}
	byCanonical(others)
	ordered = append(ordered, others...)

	out := ordered[:0]
	for _, s := range ordered {
		if rdf.IsBlank(s) && r.graph.CountObjectRefs(s) > 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (e *emitter) writeNamedSubjects() {
	for _, subject := range e.r.namedSubjectOrder() {
		if !e.r.graph.HasSubject(subject) || e.visited.has(subject) {
			continue
		}
		e.startBlock()
		if !rdf.IsBlank(subject) || e.r.isLabeled(subject) {
			e.writeSubject(subject)
			continue
		}
		e.writeAnonymous(subject.(rdf.BlankNode))
		e.writeDot(true)
	}
}

// writeLabeledBlankSubjects writes the statements of labeled blank nodes
// that no named subject wrote.
func (e *emitter) writeLabeledBlankSubjects() {
	nodes := make([]rdf.BlankNode, 0, len(e.r.labels))
	for b := range e.r.labels {
		nodes = append(nodes, b)
	}
	sort.Slice(nodes, func(i, j int) bool { return e.r.cmp.compareBlankNodes(nodes[i], nodes[j]) < 0 })
	for _, b := range nodes {
		if !e.r.graph.HasSubject(b) || e.visited.has(b) {
			continue
		}
		e.startBlock()
		e.writeSubject(b)
	}
}
