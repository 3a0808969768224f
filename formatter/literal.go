package formatter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/geoknoesis/turtlefmt/rdf"
)

// Lexical forms that the Turtle grammar reads back with the same datatype.
var (
	integerPattern = regexp.MustCompile(`^[+-]?\d+$`)
	decimalPattern = regexp.MustCompile(`^[+-]?\d*\.\d+$`)
	doublePattern  = regexp.MustCompile(`^(([+-]?\d+\.\d+)|([+-]?\.\d+)|([+-]?\d+))[eE][+-]?\d+$`)
)

func (e *emitter) writeLiteral(l rdf.Literal) {
	style := e.r.style
	datatype := l.DatatypeIRI()
	switch datatype {
	case rdf.XSDDouble:
		if text, ok := style.shortDouble(l.Lexical); ok {
			e.write(text)
			return
		}
	case rdf.XSDBoolean:
		if l.Lexical == "true" || l.Lexical == "false" {
			e.write(l.Lexical)
			return
		}
	case rdf.XSDInteger:
		if integerPattern.MatchString(l.Lexical) {
			e.write(l.Lexical)
			return
		}
	case rdf.XSDDecimal:
		if decimalPattern.MatchString(l.Lexical) {
			e.write(l.Lexical)
			return
		}
	case rdf.XSDString:
		e.write(style.quote(l.Lexical))
		return
	case rdf.RDFLangString:
		e.write(style.quote(l.Lexical) + "@" + l.Lang)
		return
	}
	e.write(style.quote(l.Lexical) + "^^")
	e.writeIRI(datatype)
}

// shortDouble returns the unquoted form of an xsd:double, reformatted with
// DoubleFormat when FormatDoubles is set.
func (s *Style) shortDouble(lexical string) (string, bool) {
	if s.FormatDoubles {
		if v, err := strconv.ParseFloat(strings.TrimSpace(lexical), 64); err == nil {
			if text := s.DoubleFormat(v); doublePattern.MatchString(text) {
				return text, true
			}
		}
	}
	if doublePattern.MatchString(lexical) {
		return lexical, true
	}
	return "", false
}

// quote delimits and escapes a lexical form according to QuoteStyle.
func (s *Style) quote(value string) string {
	triple := s.QuoteStyle == QuoteAlwaysTriple ||
		(s.QuoteStyle == QuoteTripleForMultiline && strings.Contains(value, "\n"))
	delimiter := `"`
	if triple {
		delimiter = `"""`
	}
	var b strings.Builder
	b.Grow(len(value) + 2*len(delimiter))
	b.WriteString(delimiter)
	// quotes counts the unescaped quotes just written; a third one in a row
	// would close a triple-quoted string.
	quotes := 0
	for i, r := range value {
		switch r {
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\r':
			b.WriteString(`\r`)
		case '\f':
			b.WriteString(`\f`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			if triple {
				b.WriteByte('\n')
			} else {
				b.WriteString(`\n`)
			}
		case '"':
			if triple && quotes < 2 && i != len(value)-1 {
				b.WriteByte('"')
				quotes++
				continue
			}
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
		quotes = 0
	}
	b.WriteString(delimiter)
	return b.String()
}
