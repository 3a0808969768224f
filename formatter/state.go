package formatter

import (
	"strings"
	"unicode/utf8"

	"github.com/geoknoesis/turtlefmt/rdf"
)

// render is the read-only context of one Format call.
type render struct {
	style    *Style
	graph    *rdf.Graph
	prefixes *prefixTable
	cmp      *comparators
	labels   map[rdf.BlankNode]string
	eol      string
}

// visitedSet records subjects already written. Lookahead renders write into
// an overlay so the parent set never sees their additions.
type visitedSet struct {
	parent *visitedSet
	nodes  map[rdf.Term]struct{}
}

func newVisitedSet() *visitedSet {
	return &visitedSet{nodes: map[rdf.Term]struct{}{}}
}

func (v *visitedSet) has(t rdf.Term) bool {
	for s := v; s != nil; s = s.parent {
		if _, ok := s.nodes[t]; ok {
			return true
		}
	}
	return false
}

func (v *visitedSet) add(t rdf.Term) { v.nodes[t] = struct{}{} }

func (v *visitedSet) len() int {
	n := 0
	for s := v; s != nil; s = s.parent {
		n += len(s.nodes)
	}
	return n
}

func (v *visitedSet) overlay() *visitedSet {
	return &visitedSet{parent: v, nodes: map[rdf.Term]struct{}{}}
}

// emitter is the mutable cursor of a render: output, indentation level,
// column and the last character written.
type emitter struct {
	r       *render
	out     *sink
	visited *visitedSet
	level   int
	column  int
	// last is the last rune written, 0 before the first write.
	last rune
	// blocks counts top-level statements, used to separate them.
	blocks int
}

func newEmitter(r *render, out *sink) *emitter {
	return &emitter{r: r, out: out, visited: newVisitedSet()}
}

func (e *emitter) write(text string) {
	if text == "" {
		return
	}
	e.out.writeString(text)
	e.last, _ = utf8.DecodeLastRuneInString(text)
	e.column += utf8.RuneCountInString(text)
}

func (e *emitter) newLine() {
	e.write(e.r.eol)
	e.column = 0
}

// lookahead returns a copy of the cursor that writes nowhere.
func (e *emitter) lookahead() *emitter {
	c := *e
	c.out = discard
	c.visited = e.visited.overlay()
	return &c
}

// startBlock separates top-level statements by an empty line.
func (e *emitter) startBlock() {
	if e.blocks > 0 {
		e.newLine()
	}
	e.blocks++
	e.level = 0
}

func (e *emitter) indent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(e.r.indentUnit(), level)
}

func (e *emitter) continuationIndent(level int) string {
	unit := strings.Repeat(" ", e.r.style.ContinuationIndentSize)
	if e.r.style.IndentStyle == IndentTab {
		unit = "\t\t"
	}
	return e.indent(level-1) + unit
}

func (r *render) indentUnit() string {
	if r.style.IndentStyle == IndentTab {
		return "\t"
	}
	return strings.Repeat(" ", r.style.IndentSize)
}
