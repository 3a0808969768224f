package formatter

import (
	"fmt"

	"github.com/geoknoesis/turtlefmt/rdf"
)

// Alignment controls padding of prefix names in the prefix block.
type Alignment uint8

const (
	// AlignOff writes prefix names unpadded.
	AlignOff Alignment = iota
	// AlignLeft pads prefix names on the right, before the colon.
	AlignLeft
	// AlignRight pads prefix names on the left.
	AlignRight
)

// GapStyle is what is written on one side of a delimiter.
type GapStyle uint8

const (
	// GapNothing writes nothing.
	GapNothing GapStyle = iota
	// GapSpace writes a single space.
	GapSpace
	// GapNewline starts a new line.
	GapNewline
)

// IndentStyle selects the indentation unit.
type IndentStyle uint8

const (
	// IndentSpace indents with IndentSize spaces per level.
	IndentSpace IndentStyle = iota
	// IndentTab indents with one tab per level.
	IndentTab
)

// WrappingStyle controls line breaks between RDF list elements.
type WrappingStyle uint8

const (
	// WrapForLongLines wraps a list only when it would exceed MaxLineLength.
	WrapForLongLines WrappingStyle = iota
	// WrapAlways puts every list element on its own line.
	WrapAlways
	// WrapNever keeps lists on one line.
	WrapNever
)

// QuoteStyle controls the delimiters of string literals.
type QuoteStyle uint8

const (
	// QuoteTripleForMultiline uses triple quotes only for strings containing a line break.
	QuoteTripleForMultiline QuoteStyle = iota
	// QuoteAlwaysSingle always uses single quotes and escapes line breaks.
	QuoteAlwaysSingle
	// QuoteAlwaysTriple always uses triple quotes.
	QuoteAlwaysTriple
)

// Charset is the output encoding.
type Charset uint8

const (
	// CharsetUTF8 is UTF-8 without a byte order mark.
	CharsetUTF8 Charset = iota
	// CharsetUTF8BOM is UTF-8 with a byte order mark.
	CharsetUTF8BOM
	// CharsetLatin1 is ISO-8859-1.
	CharsetLatin1
	// CharsetUTF16BE is big endian UTF-16.
	CharsetUTF16BE
	// CharsetUTF16LE is little endian UTF-16.
	CharsetUTF16LE
)

// EndOfLine is the line break sequence.
type EndOfLine uint8

const (
	// EndOfLineLF is "\n".
	EndOfLineLF EndOfLine = iota
	// EndOfLineCR is "\r".
	EndOfLineCR
	// EndOfLineCRLF is "\r\n".
	EndOfLineCRLF
)

// KnownPrefix is a prefix added to the output when the graph does not declare
// a prefix with the same name.
type KnownPrefix struct {
	Prefix string
	IRI    string
}

// Predefined prefixes.
var (
	PrefixRDF     = KnownPrefix{Prefix: "rdf", IRI: rdf.RDFNamespace}
	PrefixRDFS    = KnownPrefix{Prefix: "rdfs", IRI: rdf.RDFSNamespace}
	PrefixXSD     = KnownPrefix{Prefix: "xsd", IRI: rdf.XSDNamespace}
	PrefixOWL     = KnownPrefix{Prefix: "owl", IRI: rdf.OWLNamespace}
	PrefixDCTerms = KnownPrefix{Prefix: "dcterms", IRI: rdf.DCTermsNamespace}
	PrefixVANN    = KnownPrefix{Prefix: "vann", IRI: rdf.VANNNamespace}
	PrefixSKOS    = KnownPrefix{Prefix: "skos", IRI: rdf.SKOSNamespace}
	PrefixFMT     = KnownPrefix{Prefix: "fmt", IRI: rdf.FMTNamespace}
	PrefixEX      = KnownPrefix{Prefix: "ex", IRI: "http://example.org/"}
)

// DefaultEmptyBase is the base IRI stripped from IRIs before they are written.
const DefaultEmptyBase = "urn:turtleformatter:internal"

// Style is the complete layout configuration. A Style is read-only once
// handed to New; the Formatter keeps its own copy of every slice.
type Style struct {
	KnownPrefixes []KnownPrefix
	// EmptyBase is removed from the front of every IRI before writing, so
	// graphs loaded with this placeholder base print relative IRIs.
	EmptyBase string

	AlignPrefixes   Alignment
	AlignPredicates bool
	AlignObjects    bool

	AfterClosingParenthesis    GapStyle
	AfterClosingSquareBracket  GapStyle
	AfterComma                 GapStyle
	AfterDot                   GapStyle
	AfterOpeningParenthesis    GapStyle
	AfterOpeningSquareBracket  GapStyle
	AfterSemicolon             GapStyle
	BeforeClosingParenthesis   GapStyle
	BeforeClosingSquareBracket GapStyle
	BeforeComma                GapStyle
	BeforeDot                  GapStyle
	BeforeOpeningParenthesis   GapStyle
	BeforeOpeningSquareBracket GapStyle
	BeforeSemicolon            GapStyle

	Charset   Charset
	EndOfLine EndOfLine

	IndentStyle            IndentStyle
	IndentSize             int
	ContinuationIndentSize int

	QuoteStyle QuoteStyle

	WrapListItems WrappingStyle
	MaxLineLength int

	FirstPredicateInNewLine bool
	UseAForRDFType          bool
	UseCommaByDefault       bool
	CommaForPredicate       []rdf.IRI
	NoCommaForPredicate     []rdf.IRI

	KeepUnusedPrefixes bool
	InsertFinalNewline bool

	// FormatDoubles rewrites xsd:double literals with DoubleFormat. When false
	// the lexical form is passed through unchanged.
	FormatDoubles bool
	DoubleFormat  func(float64) string

	PrefixOrder    []string
	SubjectOrder   []rdf.IRI
	PredicateOrder []rdf.IRI
	ObjectOrder    []rdf.Term

	BlankNodeIDs BlankNodeIDGenerator
}

// DefaultStyle returns the default configuration.
func DefaultStyle() Style {
	return Style{
		KnownPrefixes: []KnownPrefix{PrefixRDF, PrefixRDFS, PrefixXSD, PrefixOWL, PrefixDCTerms, PrefixFMT},
		EmptyBase:     DefaultEmptyBase,

		AlignPrefixes: AlignOff,

		AfterClosingParenthesis:    GapNothing,
		AfterClosingSquareBracket:  GapSpace,
		AfterComma:                 GapSpace,
		AfterDot:                   GapNewline,
		AfterOpeningParenthesis:    GapSpace,
		AfterOpeningSquareBracket:  GapNewline,
		AfterSemicolon:             GapNewline,
		BeforeClosingParenthesis:   GapSpace,
		BeforeClosingSquareBracket: GapNewline,
		BeforeComma:                GapNothing,
		BeforeDot:                  GapSpace,
		BeforeOpeningParenthesis:   GapSpace,
		BeforeOpeningSquareBracket: GapSpace,
		BeforeSemicolon:            GapSpace,

		Charset:   CharsetUTF8,
		EndOfLine: EndOfLineLF,

		IndentStyle:            IndentSpace,
		IndentSize:             2,
		ContinuationIndentSize: 4,

		QuoteStyle: QuoteTripleForMultiline,

		WrapListItems: WrapForLongLines,
		MaxLineLength: 100,

		UseAForRDFType:     true,
		CommaForPredicate:  []rdf.IRI{rdf.RDFType},
		InsertFinalNewline: true,

		DoubleFormat: FormatDouble,

		PrefixOrder: []string{"rdf", "rdfs", "xsd", "owl"},
		SubjectOrder: []rdf.IRI{
			rdf.RDFSClass,
			rdf.OWLOntology,
			rdf.OWLClass,
			rdf.RDFProperty,
			rdf.OWLObjectProperty,
			rdf.OWLDatatypeProperty,
			rdf.OWLAnnotationProperty,
			rdf.OWLNamedIndividual,
			rdf.OWLAllDifferent,
			rdf.OWLAxiom,
		},
		PredicateOrder: []rdf.IRI{rdf.RDFType, rdf.RDFSLabel, rdf.RDFSComment, rdf.DCTermsDescription},
		ObjectOrder: []rdf.Term{
			rdf.OWLNamedIndividual,
			rdf.OWLObjectProperty,
			rdf.OWLDatatypeProperty,
			rdf.OWLAnnotationProperty,
			rdf.OWLFunctionalProperty,
			rdf.OWLInverseFunctionalProperty,
			rdf.OWLTransitiveProperty,
			rdf.OWLSymmetricProperty,
			rdf.OWLAsymmetricProperty,
			rdf.OWLReflexiveProperty,
			rdf.OWLIrreflexiveProperty,
		},

		BlankNodeIDs: SequentialBlankNodeIDs("gen"),
	}
}

// Validate reports configuration errors. Every error matches ErrInvalidStyle.
func (s Style) Validate() error {
	switch {
	case s.AlignPrefixes > AlignRight:
		return styleErrorf("AlignPrefixes", "unknown alignment %d", s.AlignPrefixes)
	case s.Charset > CharsetUTF16LE:
		return styleErrorf("Charset", "unknown charset %d", s.Charset)
	case s.EndOfLine > EndOfLineCRLF:
		return styleErrorf("EndOfLine", "unknown end of line %d", s.EndOfLine)
	case s.IndentStyle > IndentTab:
		return styleErrorf("IndentStyle", "unknown indent style %d", s.IndentStyle)
	case s.QuoteStyle > QuoteAlwaysTriple:
		return styleErrorf("QuoteStyle", "unknown quote style %d", s.QuoteStyle)
	case s.WrapListItems > WrapNever:
		return styleErrorf("WrapListItems", "unknown wrapping style %d", s.WrapListItems)
	case s.IndentSize < 0:
		return styleErrorf("IndentSize", "must not be negative, got %d", s.IndentSize)
	case s.ContinuationIndentSize < 0:
		return styleErrorf("ContinuationIndentSize", "must not be negative, got %d", s.ContinuationIndentSize)
	case s.MaxLineLength <= 0:
		return styleErrorf("MaxLineLength", "must be positive, got %d", s.MaxLineLength)
	case s.IndentStyle == IndentTab && s.AlignPredicates:
		return styleErrorf("AlignPredicates", "predicate alignment cannot be combined with tab indentation")
	case s.IndentStyle == IndentTab && s.AlignObjects:
		return styleErrorf("AlignObjects", "object alignment cannot be combined with tab indentation")
	}
	for _, g := range s.gaps() {
		if g.value > GapNewline {
			return styleErrorf(g.name, "unknown gap style %d", g.value)
		}
	}
	for _, p := range s.KnownPrefixes {
		if !rdf.IsPNPrefix(p.Prefix) {
			return styleErrorf("KnownPrefixes", "invalid prefix name %q", p.Prefix)
		}
		if p.IRI == "" {
			return styleErrorf("KnownPrefixes", "prefix %q has no IRI", p.Prefix)
		}
	}
	return nil
}

type namedGap struct {
	name  string
	value GapStyle
}

// gaps lists the gap fields in a fixed order.
func (s Style) gaps() []namedGap {
	return []namedGap{
		{"AfterClosingParenthesis", s.AfterClosingParenthesis},
		{"AfterClosingSquareBracket", s.AfterClosingSquareBracket},
		{"AfterComma", s.AfterComma},
		{"AfterDot", s.AfterDot},
		{"AfterOpeningParenthesis", s.AfterOpeningParenthesis},
		{"AfterOpeningSquareBracket", s.AfterOpeningSquareBracket},
		{"AfterSemicolon", s.AfterSemicolon},
		{"BeforeClosingParenthesis", s.BeforeClosingParenthesis},
		{"BeforeClosingSquareBracket", s.BeforeClosingSquareBracket},
		{"BeforeComma", s.BeforeComma},
		{"BeforeDot", s.BeforeDot},
		{"BeforeOpeningParenthesis", s.BeforeOpeningParenthesis},
		{"BeforeOpeningSquareBracket", s.BeforeOpeningSquareBracket},
		{"BeforeSemicolon", s.BeforeSemicolon},
	}
}

// clone deep-copies the slices and fills in missing functions.
func (s Style) clone() Style {
	out := s
	out.KnownPrefixes = append([]KnownPrefix(nil), s.KnownPrefixes...)
	out.CommaForPredicate = append([]rdf.IRI(nil), s.CommaForPredicate...)
	out.NoCommaForPredicate = append([]rdf.IRI(nil), s.NoCommaForPredicate...)
	out.PrefixOrder = append([]string(nil), s.PrefixOrder...)
	out.SubjectOrder = append([]rdf.IRI(nil), s.SubjectOrder...)
	out.PredicateOrder = append([]rdf.IRI(nil), s.PredicateOrder...)
	out.ObjectOrder = append([]rdf.Term(nil), s.ObjectOrder...)
	if out.DoubleFormat == nil {
		out.DoubleFormat = FormatDouble
	}
	if out.BlankNodeIDs == nil {
		out.BlankNodeIDs = SequentialBlankNodeIDs("gen")
	}
	return out
}

func (s Style) eol() string {
	switch s.EndOfLine {
	case EndOfLineCR:
		return "\r"
	case EndOfLineCRLF:
		return "\r\n"
	default:
		return "\n"
	}
}

func styleErrorf(field, format string, args ...interface{}) error {
	return &StyleError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
