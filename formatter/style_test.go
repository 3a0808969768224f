package formatter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/turtlefmt/rdf"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Style)
		field  string
	}{
		{"tabs with predicate alignment", func(s *Style) { s.IndentStyle = IndentTab; s.AlignPredicates = true }, "AlignPredicates"},
		{"tabs with object alignment", func(s *Style) { s.IndentStyle = IndentTab; s.AlignObjects = true }, "AlignObjects"},
		{"zero line length", func(s *Style) { s.MaxLineLength = 0 }, "MaxLineLength"},
		{"negative indent", func(s *Style) { s.IndentSize = -1 }, "IndentSize"},
		{"unknown gap", func(s *Style) { s.AfterComma = GapStyle(7) }, "AfterComma"},
		{"unknown charset", func(s *Style) { s.Charset = Charset(9) }, "Charset"},
		{"invalid prefix name", func(s *Style) { s.KnownPrefixes = []KnownPrefix{{Prefix: "1x", IRI: "http://x/"}} }, "KnownPrefixes"},
		{"prefix without IRI", func(s *Style) { s.KnownPrefixes = []KnownPrefix{{Prefix: "x"}} }, "KnownPrefixes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := DefaultStyle()
			tt.modify(&style)
			err := style.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidStyle)

			var styleErr *StyleError
			require.ErrorAs(t, err, &styleErr)
			assert.Equal(t, tt.field, styleErr.Field)

			_, err = New(style)
			assert.ErrorIs(t, err, ErrInvalidStyle)
		})
	}
}

func TestValidateReportsFirstGapField(t *testing.T) {
	style := DefaultStyle()
	style.BeforeSemicolon = GapStyle(5)
	style.AfterDot = GapStyle(5)
	style.AfterClosingParenthesis = GapStyle(5)
	for range 20 {
		var styleErr *StyleError
		require.ErrorAs(t, style.Validate(), &styleErr)
		assert.Equal(t, "AfterClosingParenthesis", styleErr.Field)
	}
}

func TestDefaultStyleIsValid(t *testing.T) {
	require.NoError(t, DefaultStyle().Validate())
}

func TestFormatterKeepsPrivateStyle(t *testing.T) {
	style := DefaultStyle()
	f := mustNew(t, style)
	style.PredicateOrder[0] = exIRI("changed")
	style.KnownPrefixes[0].Prefix = "changed"

	got := f.Style()
	assert.Equal(t, rdf.RDFType, got.PredicateOrder[0])
	assert.Equal(t, "rdf", got.KnownPrefixes[0].Prefix)

	got.PrefixOrder[0] = "changed"
	assert.Equal(t, "rdf", f.Style().PrefixOrder[0])
}

func TestNilFunctionsFallBack(t *testing.T) {
	style := noKnownPrefixes()
	style.DoubleFormat = nil
	style.BlankNodeIDs = nil
	style.FormatDoubles = true

	g := rdf.NewGraph()
	g.SetPrefix("", "http://example.com/")
	shared := rdf.BlankNode{ID: "x"}
	require.NoError(t, g.Add(
		rdf.Triple{S: exIRI("a"), P: exIRI("p"), O: shared},
		rdf.Triple{S: exIRI("b"), P: exIRI("p"), O: shared},
		rdf.Triple{S: exIRI("a"), P: exIRI("d"), O: rdf.Literal{Lexical: "4.2e9", Datatype: rdf.XSDDouble}},
	))
	out, err := mustNew(t, style).FormatGraph(g)
	require.NoError(t, err)
	assert.Contains(t, out, "_:gen0")
	assert.Contains(t, out, "4.2E9")
}

func TestEnumText(t *testing.T) {
	var wrap WrappingStyle
	require.NoError(t, wrap.UnmarshalText([]byte("always")))
	assert.Equal(t, WrapAlways, wrap)
	assert.Equal(t, "ALWAYS", wrap.String())

	var charset Charset
	require.NoError(t, charset.UnmarshalText([]byte("UTF_16_LE")))
	assert.Equal(t, CharsetUTF16LE, charset)

	var eol EndOfLine
	err := eol.UnmarshalText([]byte("LFCR"))
	assert.ErrorIs(t, err, ErrInvalidStyle)

	text, err := AlignRight.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "RIGHT", string(text))
	assert.Equal(t, "9", Alignment(9).String())
}

func TestParseStyleEmptyDocumentIsDefault(t *testing.T) {
	style, err := ParseStyle(nil)
	require.NoError(t, err)

	want, err := MarshalStyle(DefaultStyle())
	require.NoError(t, err)
	got, err := MarshalStyle(style)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestParseStyleOverrides(t *testing.T) {
	style, err := ParseStyle([]byte(`
alignPrefixes: left
indentSize: 4
wrapListItems: NEVER
endOfLine: CRLF
knownPrefixes:
  - prefix: ex
    iri: http://example.com/
predicateOrder:
  - rdf:type
  - ex:name
  - <http://other.org/p>
commaForPredicate: []
blankNodeIds: sequential
blankNodeIdPrefix: node
`))
	require.NoError(t, err)
	assert.Equal(t, AlignLeft, style.AlignPrefixes)
	assert.Equal(t, 4, style.IndentSize)
	assert.Equal(t, WrapNever, style.WrapListItems)
	assert.Equal(t, EndOfLineCRLF, style.EndOfLine)
	assert.Equal(t, []KnownPrefix{{Prefix: "ex", IRI: "http://example.com/"}}, style.KnownPrefixes)
	assert.Equal(t, []rdf.IRI{rdf.RDFType, exIRI("name"), {Value: "http://other.org/p"}}, style.PredicateOrder)
	assert.Empty(t, style.CommaForPredicate)
	assert.Equal(t, "node3", style.BlankNodeIDs(rdf.BlankNode{}, 3))

	// Untouched keys keep their defaults.
	assert.Equal(t, 100, style.MaxLineLength)
	assert.True(t, style.UseAForRDFType)
}

func TestParseStyleErrors(t *testing.T) {
	tests := map[string]string{
		"unknown enum":     "charset: EBCDIC\n",
		"unknown field":    "bogus: 1\n",
		"invalid combo":    "indentStyle: TAB\nalignPredicates: true\n",
		"unknown id style": "blankNodeIds: random\n",
		"not a mapping":    "- a\n- b\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseStyle([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidStyle)
		})
	}
}

func TestMarshalStyleRoundTrip(t *testing.T) {
	style := DefaultStyle()
	style.AlignPredicates = true
	style.QuoteStyle = QuoteAlwaysTriple
	style.KnownPrefixes = append(style.KnownPrefixes, PrefixSKOS)
	style.SubjectOrder = []rdf.IRI{{Value: rdf.SKOSNamespace + "Concept"}, exIRI("a")}

	data, err := MarshalStyle(style)
	require.NoError(t, err)
	assert.Contains(t, string(data), "quoteStyle: ALWAYS_TRIPLE_QUOTES")
	assert.Contains(t, string(data), "- skos:Concept")
	assert.Contains(t, string(data), "- rdf:type")

	parsed, err := ParseStyle(data)
	require.NoError(t, err)
	again, err := MarshalStyle(parsed)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
	assert.Equal(t, style.SubjectOrder, parsed.SubjectOrder)
}

func TestParseStyleUUIDLabels(t *testing.T) {
	style, err := ParseStyle([]byte("blankNodeIds: uuid\n"))
	require.NoError(t, err)
	want := UUIDBlankNodeIDs(DefaultUUIDNamespace)(rdf.BlankNode{}, 0)
	assert.Equal(t, want, style.BlankNodeIDs(rdf.BlankNode{}, 0))
}

func TestLoadStyle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxLineLength: 40\n"), 0o600))

	style, err := LoadStyle(path)
	require.NoError(t, err)
	assert.Equal(t, 40, style.MaxLineLength)

	_, err = LoadStyle(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidStyle))
}
