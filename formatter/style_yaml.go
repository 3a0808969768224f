package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/geoknoesis/turtlefmt/rdf"
)

var (
	alignmentNames = []string{"OFF", "LEFT", "RIGHT"}
	gapNames       = []string{"NOTHING", "SPACE", "NEWLINE"}
	indentNames    = []string{"SPACE", "TAB"}
	wrappingNames  = []string{"FOR_LONG_LINES", "ALWAYS", "NEVER"}
	quoteNames     = []string{"TRIPLE_QUOTES_FOR_MULTILINE", "ALWAYS_SINGLE_QUOTES", "ALWAYS_TRIPLE_QUOTES"}
	charsetNames   = []string{"UTF_8", "UTF_8_BOM", "LATIN1", "UTF_16_BE", "UTF_16_LE"}
	eolNames       = []string{"LF", "CR", "CRLF"}
)

func enumName(names []string, v uint8) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%d", v)
}

func parseEnum(kind string, names []string, text string) (uint8, error) {
	for i, name := range names {
		if strings.EqualFold(name, strings.TrimSpace(text)) {
			return uint8(i), nil
		}
	}
	return 0, styleErrorf(kind, "unknown value %q, want one of %s", text, strings.Join(names, ", "))
}

// String returns the style file name of the Alignment.
func (a Alignment) String() string { return enumName(alignmentNames, uint8(a)) }

// String returns the style file name of the GapStyle.
func (g GapStyle) String() string { return enumName(gapNames, uint8(g)) }

// String returns the style file name of the IndentStyle.
func (i IndentStyle) String() string { return enumName(indentNames, uint8(i)) }

// String returns the style file name of the WrappingStyle.
func (w WrappingStyle) String() string { return enumName(wrappingNames, uint8(w)) }

// String returns the style file name of the QuoteStyle.
func (q QuoteStyle) String() string { return enumName(quoteNames, uint8(q)) }

// String returns the style file name of the Charset.
func (c Charset) String() string { return enumName(charsetNames, uint8(c)) }

// String returns the style file name of the EndOfLine.
func (e EndOfLine) String() string { return enumName(eolNames, uint8(e)) }

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (g GapStyle) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (i IndentStyle) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (w WrappingStyle) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (q QuoteStyle) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (c Charset) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (e EndOfLine) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText parses a Alignment name, ignoring case.
func (a *Alignment) UnmarshalText(text []byte) error {
	v, err := parseEnum("AlignPrefixes", alignmentNames, string(text))
	*a = Alignment(v)
	return err
}

// UnmarshalText parses a GapStyle name, ignoring case.
func (g *GapStyle) UnmarshalText(text []byte) error {
	v, err := parseEnum("GapStyle", gapNames, string(text))
	*g = GapStyle(v)
	return err
}

// UnmarshalText parses a IndentStyle name, ignoring case.
func (i *IndentStyle) UnmarshalText(text []byte) error {
	v, err := parseEnum("IndentStyle", indentNames, string(text))
	*i = IndentStyle(v)
	return err
}

// UnmarshalText parses a WrappingStyle name, ignoring case.
func (w *WrappingStyle) UnmarshalText(text []byte) error {
	v, err := parseEnum("WrapListItems", wrappingNames, string(text))
	*w = WrappingStyle(v)
	return err
}

// UnmarshalText parses a QuoteStyle name, ignoring case.
func (q *QuoteStyle) UnmarshalText(text []byte) error {
	v, err := parseEnum("QuoteStyle", quoteNames, string(text))
	*q = QuoteStyle(v)
	return err
}

// UnmarshalText parses a Charset name, ignoring case.
func (c *Charset) UnmarshalText(text []byte) error {
	v, err := parseEnum("Charset", charsetNames, string(text))
	*c = Charset(v)
	return err
}

// UnmarshalText parses a EndOfLine name, ignoring case.
func (e *EndOfLine) UnmarshalText(text []byte) error {
	v, err := parseEnum("EndOfLine", eolNames, string(text))
	*e = EndOfLine(v)
	return err
}

// Blank node label schemes selectable in style files.
const (
	BlankNodeIDsSequential = "sequential"
	BlankNodeIDsUUID       = "uuid"
)

type knownPrefixFile struct {
	Prefix string `yaml:"prefix"`
	IRI    string `yaml:"iri"`
}

// styleFile is the YAML form of Style. IRIs are written as prefixed names
// of known prefixes or as full IRIs.
type styleFile struct {
	KnownPrefixes []knownPrefixFile `yaml:"knownPrefixes"`
	EmptyBase     string            `yaml:"emptyBase"`

	AlignPrefixes   Alignment `yaml:"alignPrefixes"`
	AlignPredicates bool      `yaml:"alignPredicates"`
	AlignObjects    bool      `yaml:"alignObjects"`

	AfterClosingParenthesis    GapStyle `yaml:"afterClosingParenthesis"`
	AfterClosingSquareBracket  GapStyle `yaml:"afterClosingSquareBracket"`
	AfterComma                 GapStyle `yaml:"afterComma"`
	AfterDot                   GapStyle `yaml:"afterDot"`
	AfterOpeningParenthesis    GapStyle `yaml:"afterOpeningParenthesis"`
	AfterOpeningSquareBracket  GapStyle `yaml:"afterOpeningSquareBracket"`
	AfterSemicolon             GapStyle `yaml:"afterSemicolon"`
	BeforeClosingParenthesis   GapStyle `yaml:"beforeClosingParenthesis"`
	BeforeClosingSquareBracket GapStyle `yaml:"beforeClosingSquareBracket"`
	BeforeComma                GapStyle `yaml:"beforeComma"`
	BeforeDot                  GapStyle `yaml:"beforeDot"`
	BeforeOpeningParenthesis   GapStyle `yaml:"beforeOpeningParenthesis"`
	BeforeOpeningSquareBracket GapStyle `yaml:"beforeOpeningSquareBracket"`
	BeforeSemicolon            GapStyle `yaml:"beforeSemicolon"`

	Charset   Charset   `yaml:"charset"`
	EndOfLine EndOfLine `yaml:"endOfLine"`

	IndentStyle            IndentStyle `yaml:"indentStyle"`
	IndentSize             int         `yaml:"indentSize"`
	ContinuationIndentSize int         `yaml:"continuationIndentSize"`

	QuoteStyle    QuoteStyle    `yaml:"quoteStyle"`
	WrapListItems WrappingStyle `yaml:"wrapListItems"`
	MaxLineLength int           `yaml:"maxLineLength"`

	FirstPredicateInNewLine bool     `yaml:"firstPredicateInNewLine"`
	UseAForRDFType          bool     `yaml:"useAForRdfType"`
	UseCommaByDefault       bool     `yaml:"useCommaByDefault"`
	CommaForPredicate       []string `yaml:"commaForPredicate"`
	NoCommaForPredicate     []string `yaml:"noCommaForPredicate"`

	KeepUnusedPrefixes bool `yaml:"keepUnusedPrefixes"`
	InsertFinalNewline bool `yaml:"insertFinalNewline"`
	FormatDoubles      bool `yaml:"formatDoubles"`

	PrefixOrder    []string `yaml:"prefixOrder"`
	SubjectOrder   []string `yaml:"subjectOrder"`
	PredicateOrder []string `yaml:"predicateOrder"`
	ObjectOrder    []string `yaml:"objectOrder"`

	BlankNodeIDs      string `yaml:"blankNodeIds,omitempty"`
	BlankNodeIDPrefix string `yaml:"blankNodeIdPrefix,omitempty"`
}

// LoadStyle reads a YAML style file. Keys missing from the file keep their
// default values.
func LoadStyle(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("read style %s: %w", path, err)
	}
	style, err := ParseStyle(data)
	if err != nil {
		return Style{}, fmt.Errorf("style %s: %w", path, err)
	}
	return style, nil
}

// ParseStyle decodes a YAML style document on top of DefaultStyle and
// validates the result.
func ParseStyle(data []byte) (Style, error) {
	file := toStyleFile(DefaultStyle())
	file.KnownPrefixes = nil
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		if errors.Is(err, ErrInvalidStyle) {
			return Style{}, err
		}
		return Style{}, fmt.Errorf("%w: %w", ErrInvalidStyle, err)
	}
	if file.KnownPrefixes == nil {
		file.KnownPrefixes = toStyleFile(DefaultStyle()).KnownPrefixes
	}
	style, err := fromStyleFile(file)
	if err != nil {
		return Style{}, err
	}
	if err := style.Validate(); err != nil {
		return Style{}, err
	}
	return style, nil
}

// MarshalStyle encodes s as YAML. DoubleFormat and custom BlankNodeIDs
// functions cannot be represented and are omitted.
func MarshalStyle(s Style) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toStyleFile(s)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toStyleFile(s Style) styleFile {
	c := newIRICompactor(s.KnownPrefixes)
	file := styleFile{
		EmptyBase:                  s.EmptyBase,
		AlignPrefixes:              s.AlignPrefixes,
		AlignPredicates:            s.AlignPredicates,
		AlignObjects:               s.AlignObjects,
		AfterClosingParenthesis:    s.AfterClosingParenthesis,
		AfterClosingSquareBracket:  s.AfterClosingSquareBracket,
		AfterComma:                 s.AfterComma,
		AfterDot:                   s.AfterDot,
		AfterOpeningParenthesis:    s.AfterOpeningParenthesis,
		AfterOpeningSquareBracket:  s.AfterOpeningSquareBracket,
		AfterSemicolon:             s.AfterSemicolon,
		BeforeClosingParenthesis:   s.BeforeClosingParenthesis,
		BeforeClosingSquareBracket: s.BeforeClosingSquareBracket,
		BeforeComma:                s.BeforeComma,
		BeforeDot:                  s.BeforeDot,
		BeforeOpeningParenthesis:   s.BeforeOpeningParenthesis,
		BeforeOpeningSquareBracket: s.BeforeOpeningSquareBracket,
		BeforeSemicolon:            s.BeforeSemicolon,
		Charset:                    s.Charset,
		EndOfLine:                  s.EndOfLine,
		IndentStyle:                s.IndentStyle,
		IndentSize:                 s.IndentSize,
		ContinuationIndentSize:     s.ContinuationIndentSize,
		QuoteStyle:                 s.QuoteStyle,
		WrapListItems:              s.WrapListItems,
		MaxLineLength:              s.MaxLineLength,
		FirstPredicateInNewLine:    s.FirstPredicateInNewLine,
		UseAForRDFType:             s.UseAForRDFType,
		UseCommaByDefault:          s.UseCommaByDefault,
		CommaForPredicate:          c.compactAll(s.CommaForPredicate),
		NoCommaForPredicate:        c.compactAll(s.NoCommaForPredicate),
		KeepUnusedPrefixes:         s.KeepUnusedPrefixes,
		InsertFinalNewline:         s.InsertFinalNewline,
		FormatDoubles:              s.FormatDoubles,
		PrefixOrder:                append([]string{}, s.PrefixOrder...),
		SubjectOrder:               c.compactAll(s.SubjectOrder),
		PredicateOrder:             c.compactAll(s.PredicateOrder),
	}
	file.KnownPrefixes = []knownPrefixFile{}
	for _, p := range s.KnownPrefixes {
		file.KnownPrefixes = append(file.KnownPrefixes, knownPrefixFile{Prefix: p.Prefix, IRI: p.IRI})
	}
	file.ObjectOrder = []string{}
	for _, o := range s.ObjectOrder {
		if iri, ok := o.(rdf.IRI); ok {
			file.ObjectOrder = append(file.ObjectOrder, c.compact(iri))
		}
	}
	return file
}

func fromStyleFile(file styleFile) (Style, error) {
	s := DefaultStyle()
	s.KnownPrefixes = nil
	for _, p := range file.KnownPrefixes {
		s.KnownPrefixes = append(s.KnownPrefixes, KnownPrefix{Prefix: p.Prefix, IRI: p.IRI})
	}
	c := newIRICompactor(s.KnownPrefixes)
	s.EmptyBase = file.EmptyBase
	s.AlignPrefixes = file.AlignPrefixes
	s.AlignPredicates = file.AlignPredicates
	s.AlignObjects = file.AlignObjects
	s.AfterClosingParenthesis = file.AfterClosingParenthesis
	s.AfterClosingSquareBracket = file.AfterClosingSquareBracket
	s.AfterComma = file.AfterComma
	s.AfterDot = file.AfterDot
	s.AfterOpeningParenthesis = file.AfterOpeningParenthesis
	s.AfterOpeningSquareBracket = file.AfterOpeningSquareBracket
	s.AfterSemicolon = file.AfterSemicolon
	s.BeforeClosingParenthesis = file.BeforeClosingParenthesis
	s.BeforeClosingSquareBracket = file.BeforeClosingSquareBracket
	s.BeforeComma = file.BeforeComma
	s.BeforeDot = file.BeforeDot
	s.BeforeOpeningParenthesis = file.BeforeOpeningParenthesis
	s.BeforeOpeningSquareBracket = file.BeforeOpeningSquareBracket
	s.BeforeSemicolon = file.BeforeSemicolon
	s.Charset = file.Charset
	s.EndOfLine = file.EndOfLine
	s.IndentStyle = file.IndentStyle
	s.IndentSize = file.IndentSize
	s.ContinuationIndentSize = file.ContinuationIndentSize
	s.QuoteStyle = file.QuoteStyle
	s.WrapListItems = file.WrapListItems
	s.MaxLineLength = file.MaxLineLength
	s.FirstPredicateInNewLine = file.FirstPredicateInNewLine
	s.UseAForRDFType = file.UseAForRDFType
	s.UseCommaByDefault = file.UseCommaByDefault
	s.CommaForPredicate = c.expandAll(file.CommaForPredicate)
	s.NoCommaForPredicate = c.expandAll(file.NoCommaForPredicate)
	s.KeepUnusedPrefixes = file.KeepUnusedPrefixes
	s.InsertFinalNewline = file.InsertFinalNewline
	s.FormatDoubles = file.FormatDoubles
	s.PrefixOrder = append([]string(nil), file.PrefixOrder...)
	s.SubjectOrder = c.expandAll(file.SubjectOrder)
	s.PredicateOrder = c.expandAll(file.PredicateOrder)
	s.ObjectOrder = nil
	for _, o := range c.expandAll(file.ObjectOrder) {
		s.ObjectOrder = append(s.ObjectOrder, o)
	}

	prefix := file.BlankNodeIDPrefix
	if prefix == "" {
		prefix = "gen"
	}
	switch strings.ToLower(file.BlankNodeIDs) {
	case "", BlankNodeIDsSequential:
		s.BlankNodeIDs = SequentialBlankNodeIDs(prefix)
	case BlankNodeIDsUUID:
		s.BlankNodeIDs = UUIDBlankNodeIDs(DefaultUUIDNamespace)
	default:
		return Style{}, styleErrorf("BlankNodeIDs", "unknown scheme %q, want %s or %s",
			file.BlankNodeIDs, BlankNodeIDsSequential, BlankNodeIDsUUID)
	}
	return s, nil
}

// iriCompactor converts between IRIs and the prefixed names used in style
// files. The predefined prefixes are always available.
type iriCompactor struct {
	prefixes []KnownPrefix
}

func newIRICompactor(known []KnownPrefix) iriCompactor {
	all := append([]KnownPrefix{}, known...)
	seen := map[string]bool{}
	for _, p := range known {
		seen[p.Prefix] = true
	}
	for _, p := range []KnownPrefix{PrefixRDF, PrefixRDFS, PrefixXSD, PrefixOWL, PrefixDCTerms, PrefixVANN, PrefixSKOS, PrefixFMT} {
		if !seen[p.Prefix] {
			all = append(all, p)
		}
	}
	return iriCompactor{prefixes: all}
}

func (c iriCompactor) compact(iri rdf.IRI) string {
	for _, p := range c.prefixes {
		if local, ok := strings.CutPrefix(iri.Value, p.IRI); ok && rdf.IsPNLocal(local) {
			return p.Prefix + ":" + local
		}
	}
	return "<" + iri.Value + ">"
}

func (c iriCompactor) compactAll(iris []rdf.IRI) []string {
	out := make([]string, 0, len(iris))
	for _, iri := range iris {
		out = append(out, c.compact(iri))
	}
	return out
}

func (c iriCompactor) expand(value string) rdf.IRI {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "<") && strings.HasSuffix(value, ">") {
		return rdf.IRI{Value: value[1 : len(value)-1]}
	}
	if prefix, local, ok := strings.Cut(value, ":"); ok {
		for _, p := range c.prefixes {
			if p.Prefix == prefix {
				return rdf.IRI{Value: p.IRI + local}
			}
		}
	}
	return rdf.IRI{Value: value}
}

func (c iriCompactor) expandAll(values []string) []rdf.IRI {
	if values == nil {
		return nil
	}
	out := make([]rdf.IRI, 0, len(values))
	for _, v := range values {
		out = append(out, c.expand(v))
	}
	return out
}
