package formatter

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/geoknoesis/turtlefmt/rdf"
)

func (e *emitter) writeDelimiter(delimiter string, before, after GapStyle, indentation string) {
	switch before {
	case GapSpace:
		if e.last != ' ' {
			e.write(" ")
		}
	case GapNewline:
		e.newLine()
		e.write(indentation)
	}
	switch after {
	case GapSpace:
		e.write(delimiter + " ")
	case GapNothing:
		e.write(delimiter)
	case GapNewline:
		e.write(delimiter)
		e.newLine()
		e.write(indentation)
	}
}

func (e *emitter) writeComma() {
	s := e.r.style
	e.writeDelimiter(",", s.BeforeComma, s.AfterComma, e.continuationIndent(e.level))
}

func (e *emitter) writeSemicolon(omitLineBreak, omitSpaceBefore bool, nextLineIndentation string) {
	s := e.r.style
	before, after := s.BeforeSemicolon, s.AfterSemicolon
	if omitSpaceBefore {
		before = GapNothing
	}
	if omitLineBreak {
		after = GapNothing
	}
	e.writeDelimiter(";", before, after, nextLineIndentation)
}

func (e *emitter) writeDot(omitSpaceBefore bool) {
	s := e.r.style
	before := s.BeforeDot
	if omitSpaceBefore {
		before = GapNothing
	}
	e.writeDelimiter(".", before, s.AfterDot, "")
}

func (e *emitter) writeOpeningSquareBracket() {
	s := e.r.style
	before := GapNothing
	if e.level > 0 {
		before = s.BeforeOpeningSquareBracket
	}
	e.writeDelimiter("[", before, s.AfterOpeningSquareBracket, e.indent(e.level))
}

func (e *emitter) writeClosingSquareBracket() {
	s := e.r.style
	e.writeDelimiter("]", s.BeforeClosingSquareBracket, s.AfterClosingSquareBracket, e.indent(e.level))
}

// listElements returns the elements of the RDF list starting at t, or false
// when t cannot be written as a collection. Every cell must be an unlabeled
// blank node with exactly one rdf:first, one rdf:rest and nothing else, and
// every cell after the head must be referenced only by its predecessor.
func (r *render) listElements(t rdf.Term) ([]rdf.Term, bool) {
	head, ok := t.(rdf.BlankNode)
	if !ok {
		return nil, false
	}
	var elements []rdf.Term
	seen := map[rdf.BlankNode]bool{}
	var current rdf.Term = head
	for current != rdf.RDFNil {
		cell, ok := current.(rdf.BlankNode)
		if !ok || seen[cell] {
			return nil, false
		}
		if _, labeled := r.labels[cell]; labeled {
			return nil, false
		}
		seen[cell] = true
		if cell != head && r.graph.CountObjectRefs(cell) != 1 {
			return nil, false
		}
		if len(r.graph.Match(cell, rdf.IRI{}, nil)) != 2 {
			return nil, false
		}
		first := r.graph.ObjectsOf(cell, rdf.RDFFirst)
		rest := r.graph.ObjectsOf(cell, rdf.RDFRest)
		if len(first) != 1 || len(rest) != 1 {
			return nil, false
		}
		elements = append(elements, first[0])
		current = rest[0]
	}
	return elements, true
}

func (r *render) isList(t rdf.Term) bool {
	_, ok := r.listElements(t)
	return ok
}

func (r *render) isLabeled(t rdf.Term) bool {
	b, ok := t.(rdf.BlankNode)
	if !ok {
		return false
	}
	_, labeled := r.labels[b]
	return labeled
}

func (e *emitter) writeNode(t rdf.Term) {
	switch v := t.(type) {
	case rdf.IRI:
		e.writeIRI(v)
	case rdf.BlankNode:
		e.writeBlankNode(v)
	case rdf.Literal:
		e.writeLiteral(v)
	}
}

func (e *emitter) writeBlankNode(b rdf.BlankNode) {
	if label, ok := e.r.labels[b]; ok {
		e.write("_:" + label)
		return
	}
	if elements, ok := e.r.listElements(b); ok {
		e.writeList(elements)
		return
	}
	e.writeAnonymous(b)
}

func (e *emitter) writeIRI(iri rdf.IRI) {
	e.write(e.r.prefixes.shortForm(iri.Value))
}

func (e *emitter) writeAnonymous(b rdf.BlankNode) {
	if label, ok := e.r.labels[b]; ok {
		e.write("_:" + label)
		return
	}
	if !e.r.graph.HasSubject(b) {
		if e.last != ' ' {
			e.write(" ")
		}
		e.write("[]")
		return
	}
	if e.visited.has(b) {
		return
	}
	e.writeOpeningSquareBracket()
	e.writeSubject(b)
	e.writeClosingSquareBracket()
	e.visited.add(b)
}

func (e *emitter) writeList(elements []rdf.Term) {
	s := e.r.style
	afterOpening := s.AfterOpeningParenthesis
	if s.WrapListItems == WrapAlways {
		afterOpening = GapNothing
	}
	continuation := e.continuationIndent(e.level)
	e.writeDelimiter("(", s.BeforeOpeningParenthesis, afterOpening, continuation)
	for i, element := range elements {
		e.writeListElement(element, i == 0)
	}
	if s.WrapListItems == WrapAlways {
		e.newLine()
		e.write(e.indent(e.level))
	}
	e.writeDelimiter(")", s.BeforeClosingParenthesis, s.AfterClosingParenthesis, continuation)
}

// writeListElement decides on a line break before the element. With
// WrapForLongLines the element is first rendered into a discarding copy of
// the cursor to find the column it would end at.
func (e *emitter) writeListElement(element rdf.Term, first bool) {
	switch e.r.style.WrapListItems {
	case WrapNever:
		if !first {
			e.write(" ")
		}
	case WrapAlways:
		e.newLine()
		e.write(e.continuationIndent(e.level))
	default:
		probe := e.lookahead()
		probe.writeNode(element)
		if probe.column+1 > e.r.style.MaxLineLength {
			e.newLine()
			e.write(e.continuationIndent(e.level))
		} else if !first && e.last != ' ' {
			e.write(" ")
		}
	}
	e.writeNode(element)
}

func (e *emitter) predicateText(p rdf.IRI) string {
	if p == rdf.RDFType && e.r.style.UseAForRDFType {
		return "a"
	}
	return e.r.prefixes.shortForm(p.Value)
}

func (e *emitter) writePredicate(p rdf.IRI) {
	e.write(e.predicateText(p))
}

// writeSubject writes the subject (unless it is an unlabeled blank node,
// whose brackets the caller writes) followed by its predicate-object list.
func (e *emitter) writeSubject(subject rdf.Term) {
	if e.visited.has(subject) {
		return
	}
	s := e.r.style
	blank := rdf.IsBlank(subject)
	labeled := e.r.isLabeled(subject)
	if !blank || labeled {
		e.write(e.indent(e.level))
		e.writeNode(subject)
	}
	e.visited.add(subject)
	if !s.FirstPredicateInNewLine && (!blank || labeled) {
		e.write(" ")
	}
	alignment := e.column
	if s.FirstPredicateInNewLine {
		alignment = s.IndentSize
	}

	predicates := e.r.graph.Predicates(subject)
	sort.SliceStable(predicates, func(i, j int) bool {
		return e.r.cmp.comparePredicates(predicates[i], predicates[j]) < 0
	})
	widths := make([]int, len(predicates))
	maxWidth := 0
	for i, p := range predicates {
		widths[i] = utf8.RuneCountInString(e.predicateText(p))
		if widths[i] > maxWidth {
			maxWidth = widths[i]
		}
	}

	e.level++
	for i, p := range predicates {
		gap := " "
		if s.AlignObjects {
			gap = strings.Repeat(" ", maxWidth-widths[i]+1)
		}
		e.writePredicateObjects(subject, p, predicateLayout{
			first:     i == 0,
			last:      i == len(predicates)-1,
			alignment: alignment,
			gap:       gap,
		})
	}
}

type predicateLayout struct {
	first, last bool
	// alignment is the column predicates after the first start at when
	// AlignPredicates is set.
	alignment int
	// gap is written between predicate and object.
	gap string
}

func (r *render) useComma(p rdf.IRI) bool {
	s := r.style
	if s.UseCommaByDefault {
		return !containsIRI(s.NoCommaForPredicate, p)
	}
	return containsIRI(s.CommaForPredicate, p)
}

func containsIRI(list []rdf.IRI, iri rdf.IRI) bool {
	for _, candidate := range list {
		if candidate == iri {
			return true
		}
	}
	return false
}

func (e *emitter) writePredicateObjects(subject rdf.Term, p rdf.IRI, layout predicateLayout) {
	s := e.r.style
	objects := e.r.graph.ObjectsOf(subject, p)
	sort.SliceStable(objects, func(i, j int) bool {
		return e.r.cmp.compareObjects(objects[i], objects[j]) < 0
	})
	useComma := e.r.useComma(p)
	blank := rdf.IsBlank(subject)
	labeled := e.r.isLabeled(subject)
	inBrackets := blank && !labeled
	level := e.level

	if layout.first && s.FirstPredicateInNewLine && !blank {
		e.newLine()
	}
	indentFirstByLevel := layout.first &&
		((s.FirstPredicateInNewLine && !inBrackets) || (inBrackets && level <= 1))
	indentOtherByLevel := !layout.first && (inBrackets || labeled)
	if indentFirstByLevel || indentOtherByLevel {
		e.write(e.indent(level))
	}
	if layout.first && inBrackets && level > 1 {
		e.write(e.indent(1))
	}
	if !layout.first && s.AlignPredicates && !blank {
		e.write(strings.Repeat(" ", layout.alignment))
	}
	if useComma {
		e.writePredicate(p)
		e.write(layout.gap)
	}

	for i, object := range objects {
		lastObject := i == len(objects)-1
		if !useComma {
			e.writePredicate(p)
		}
		objectLabeled := e.r.isLabeled(object)
		inlineBlank := rdf.IsBlank(object) && !objectLabeled
		isList := e.r.isList(object)
		if !inlineBlank && !isList && !useComma {
			e.write(layout.gap)
		}
		e.writeNode(object)
		if useComma && !lastObject {
			e.writeComma()
			continue
		}

		listWritten := isList && s.AfterClosingParenthesis == GapNothing
		omitSpace := inlineBlank && !listWritten
		if layout.last && lastObject && e.level == 1 && !inBrackets {
			e.writeDot(omitSpace)
			continue
		}
		moreIdentical := len(objects) > 1 && !lastObject
		doAlign := s.AlignPredicates || blank
		indentation := e.indent(e.level)
		if doAlign && (blank || lastObject) && !moreIdentical {
			indentation = ""
		}
		e.writeSemicolon(layout.last && lastObject, omitSpace, indentation)
		if blank && layout.last && !moreIdentical {
			e.level--
		}
	}
}
