package rdf

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ParseTurtle reads a complete Turtle (or N-Triples) document into a graph.
//
// Blank nodes get fresh identities; the labels written in the source and the
// order in which every blank node first appeared are recorded in the
// returned document's BlankNodes. Relative IRIs are resolved only when a base
// IRI is known, either from @base/BASE or from OptBaseIRI.
func ParseTurtle(ctx context.Context, r io.Reader, opts ...Option) (*Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("turtle: read input: %w", err)
	}
	options := applyOptions(opts)
	c := &turtleCursor{
		input:    strings.TrimPrefix(string(data), "\uFEFF"),
		prefixes: map[string]string{},
		base:     options.BaseIRI,
		options:  options,
		graph:    NewGraph(),
		meta:     NewBlankNodeMetadata(),
		labels:   map[string]BlankNode{},
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.skipWS()
		if c.pos >= len(c.input) {
			break
		}
		if err := c.parseStatement(); err != nil {
			return nil, err
		}
	}
	return &Document{Graph: c.graph, BlankNodes: c.meta, Base: c.base}, nil
}

type turtleCursor struct {
	input            string
	pos              int
	prefixes         map[string]string
	base             string
	options          Options
	graph            *Graph
	meta             *BlankNodeMetadata
	labels           map[string]BlankNode
	blankNodeCounter int
	depth            int
}

func (c *turtleCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		case '#':
			for c.pos < len(c.input) && c.input[c.pos] != '\n' {
				c.pos++
			}
		default:
			return
		}
	}
}

func (c *turtleCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *turtleCursor) peek() byte {
	if c.pos >= len(c.input) {
		return 0
	}
	return c.input[c.pos]
}

func (c *turtleCursor) peekNext() byte {
	if c.pos+1 >= len(c.input) {
		return 0
	}
	return c.input[c.pos+1]
}

func (c *turtleCursor) hasKeyword(keyword string, caseInsensitive bool) bool {
	end := c.pos + len(keyword)
	if end >= len(c.input) {
		return false
	}
	word := c.input[c.pos:end]
	if caseInsensitive {
		if !strings.EqualFold(word, keyword) {
			return false
		}
	} else if word != keyword {
		return false
	}
	switch c.input[end] {
	case ' ', '\t', '\r', '\n', '<':
		return true
	}
	return false
}

func (c *turtleCursor) parseStatement() error {
	switch {
	case c.hasKeyword(directiveAtPrefix, false):
		c.pos += len(directiveAtPrefix)
		return c.parsePrefixDirective(true)
	case c.hasKeyword(directiveAtBase, false):
		c.pos += len(directiveAtBase)
		return c.parseBaseDirective(true)
	case c.hasKeyword(directivePrefix, true):
		c.pos += len(directivePrefix)
		return c.parsePrefixDirective(false)
	case c.hasKeyword(directiveBase, true):
		c.pos += len(directiveBase)
		return c.parseBaseDirective(false)
	}
	return c.parseTriples()
}

func (c *turtleCursor) parsePrefixDirective(requireDot bool) error {
	c.skipWS()
	start := c.pos
	for c.pos < len(c.input) && c.input[c.pos] != ':' {
		ch := c.input[c.pos]
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '<' {
			return c.errorf("expected prefix name followed by ':'")
		}
		c.pos++
	}
	if c.pos >= len(c.input) {
		return c.errorf("unterminated prefix directive")
	}
	prefix := c.input[start:c.pos]
	if !IsPNPrefix(prefix) {
		return c.errorf("invalid prefix name %q", prefix)
	}
	c.pos++
	c.skipWS()
	iri, err := c.parseIRIRef()
	if err != nil {
		return err
	}
	if requireDot && !c.consume('.') {
		return c.errorf("expected '.' after prefix directive")
	}
	c.prefixes[prefix] = iri
	c.graph.SetPrefix(prefix, iri)
	return nil
}

func (c *turtleCursor) parseBaseDirective(requireDot bool) error {
	c.skipWS()
	iri, err := c.parseIRIRef()
	if err != nil {
		return err
	}
	if requireDot && !c.consume('.') {
		return c.errorf("expected '.' after base directive")
	}
	c.base = iri
	return nil
}

func (c *turtleCursor) parseTriples() error {
	var subject Term
	var err error
	switch c.peek() {
	case '[':
		var empty bool
		subject, empty, err = c.parseBlankNodePropertyList()
		if err != nil {
			return err
		}
		c.skipWS()
		if c.peek() == '.' {
			if empty {
				return c.errorf("'[]' cannot be used as a statement on its own")
			}
			c.pos++
			return nil
		}
	case '(':
		subject, err = c.parseCollection()
	default:
		subject, err = c.parseResource()
	}
	if err != nil {
		return err
	}
	if err := c.parsePredicateObjectList(subject); err != nil {
		return err
	}
	if !c.consume('.') {
		return c.errorf("expected ',' or ';' or '.'")
	}
	return nil
}

func (c *turtleCursor) parsePredicateObjectList(subject Term) error {
	for {
		predicate, err := c.parsePredicate()
		if err != nil {
			return err
		}
		for {
			object, err := c.parseObject()
			if err != nil {
				return err
			}
			if err := c.graph.Add(Triple{S: subject, P: predicate, O: object}); err != nil {
				return c.fail(err)
			}
			if !c.consume(',') {
				break
			}
		}
		if !c.consume(';') {
			return nil
		}
		for c.consume(';') {
		}
		c.skipWS()
		switch c.peek() {
		case '.', ']', 0:
			return nil
		}
	}
}

func (c *turtleCursor) parsePredicate() (IRI, error) {
	c.skipWS()
	if c.peek() == 'a' && c.isVerbA() {
		c.pos++
		return RDFType, nil
	}
	term, err := c.parseResource()
	if err != nil {
		return IRI{}, err
	}
	iri, ok := term.(IRI)
	if !ok {
		return IRI{}, c.errorf("predicate must be IRI")
	}
	return iri, nil
}

// isVerbA reports whether the "a" at the cursor is the rdf:type keyword
// rather than the start of a prefixed name.
func (c *turtleCursor) isVerbA() bool {
	switch c.peekNext() {
	case 0, ' ', '\t', '\r', '\n', '<', '[', '(', '"', '\'', '#':
		return true
	case '_':
		return strings.HasPrefix(c.input[c.pos+1:], "_:")
	}
	return false
}

// parseResource parses an IRI reference, a prefixed name or a blank node label.
func (c *turtleCursor) parseResource() (Term, error) {
	c.skipWS()
	switch {
	case c.pos >= len(c.input):
		return nil, c.errorf("unexpected end of input")
	case c.input[c.pos] == '<':
		iri, err := c.parseIRIRef()
		if err != nil {
			return nil, err
		}
		return IRI{Value: iri}, nil
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNodeLabel()
	case c.input[c.pos] == '"' || c.input[c.pos] == '\'':
		return nil, c.errorf("literal not allowed here")
	default:
		return c.parsePrefixedName()
	}
}

func (c *turtleCursor) parseObject() (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of input")
	}
	switch c.input[c.pos] {
	case '[':
		node, _, err := c.parseBlankNodePropertyList()
		return node, err
	case '(':
		return c.parseCollection()
	case '"', '\'':
		return c.parseLiteral()
	}
	if lit, ok := c.tryParseNumericLiteral(); ok {
		return lit, nil
	}
	if lit, ok := c.tryParseBooleanLiteral(); ok {
		return lit, nil
	}
	return c.parseResource()
}

func (c *turtleCursor) parseIRIRef() (string, error) {
	if !c.consume('<') {
		return "", c.errorf("expected IRI")
	}
	var builder strings.Builder
	for {
		if c.pos >= len(c.input) {
			return "", c.errorf("unterminated IRI")
		}
		ch := c.input[c.pos]
		if ch == '>' {
			c.pos++
			break
		}
		if ch == '\\' {
			r, err := c.parseUChar()
			if err != nil {
				return "", err
			}
			if isDisallowedIRIChar(r) {
				return "", c.errorf("invalid character in IRI")
			}
			builder.WriteRune(r)
			continue
		}
		r, size := utf8.DecodeRuneInString(c.input[c.pos:])
		if isDisallowedIRIChar(r) {
			return "", c.errorf("invalid character in IRI")
		}
		builder.WriteRune(r)
		c.pos += size
	}
	value := builder.String()
	if c.base != "" {
		value = resolveIRI(c.base, value)
	}
	if c.options.StrictIRIValidation {
		if err := ValidateIRI(value); err != nil {
			return "", c.fail(err)
		}
	}
	return value, nil
}

// parseUChar decodes \uXXXX or \UXXXXXXXX at the cursor, combining UTF-16
// surrogate pairs.
func (c *turtleCursor) parseUChar() (rune, error) {
	if c.pos+1 >= len(c.input) {
		return 0, c.errorf("unterminated escape")
	}
	width := 0
	switch c.input[c.pos+1] {
	case 'u':
		width = 4
	case 'U':
		width = 8
	default:
		return 0, c.errorf("invalid escape sequence")
	}
	if c.pos+2+width > len(c.input) {
		return 0, c.errorf("invalid escape sequence")
	}
	codePoint := decodeUChar(c.input[c.pos+2 : c.pos+2+width])
	if codePoint < 0 {
		return 0, c.errorf("invalid escape sequence")
	}
	c.pos += 2 + width
	if width == 4 && codePoint >= unicodeSurrogateHighStart && codePoint <= unicodeSurrogateHighEnd {
		if !strings.HasPrefix(c.input[c.pos:], `\u`) || c.pos+6 > len(c.input) {
			return 0, c.errorf("invalid escape sequence")
		}
		low := decodeUChar(c.input[c.pos+2 : c.pos+6])
		if low < unicodeSurrogateLowStart || low > unicodeSurrogateLowEnd {
			return 0, c.errorf("invalid escape sequence")
		}
		c.pos += 6
		return unicodeSurrogateBase + ((codePoint - unicodeSurrogateHighStart) << 10) + (low - unicodeSurrogateLowStart), nil
	}
	if !isValidUnicodeCodePoint(codePoint) {
		return 0, c.errorf("invalid escape sequence")
	}
	return codePoint, nil
}

func (c *turtleCursor) parsePrefixedName() (Term, error) {
	start := c.pos
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		if ch == '\\' {
			c.pos += 2
			continue
		}
		if isTurtleTerminator(ch, c.peekNext()) {
			break
		}
		c.pos++
	}
	if c.pos > len(c.input) {
		c.pos = len(c.input)
	}
	token := c.input[start:c.pos]
	if token == "" {
		c.pos = start
		return nil, c.errorf("expected term")
	}
	prefix, rawLocal, ok := strings.Cut(token, ":")
	if !ok {
		c.pos = start
		return nil, c.errorf("invalid token %q", token)
	}
	if !IsPNPrefix(prefix) {
		c.pos = start
		return nil, c.errorf("invalid prefix name %q", prefix)
	}
	local, err := unescapeLocalName(rawLocal)
	if err != nil {
		c.pos = start
		return nil, c.errorf("invalid token %q: %v", token, err)
	}
	namespace, ok := c.prefixes[prefix]
	if !ok {
		c.pos = start
		return nil, c.errorf("unknown prefix %q", prefix)
	}
	return IRI{Value: namespace + local}, nil
}

// unescapeLocalName removes PN_LOCAL_ESC backslashes. Percent escapes are
// part of the IRI and stay as written.
func unescapeLocalName(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if raw[0] == '.' || raw[0] == '-' {
		return "", fmt.Errorf("local name cannot start with %q", raw[0])
	}
	if strings.HasSuffix(raw, ".") && !strings.HasSuffix(raw, `\.`) {
		return "", fmt.Errorf("local name cannot end with '.'")
	}
	var builder strings.Builder
	for i := 0; i < len(raw); i++ {
		switch ch := raw[i]; ch {
		case '\\':
			if i+1 >= len(raw) || !isValidPNLocalEscape(raw[i+1]) {
				return "", fmt.Errorf("invalid escape")
			}
			builder.WriteByte(raw[i+1])
			i++
		case '%':
			if i+2 >= len(raw) || !isHexDigit(raw[i+1]) || !isHexDigit(raw[i+2]) {
				return "", fmt.Errorf("invalid percent escape")
			}
			builder.WriteString(raw[i : i+3])
			i += 2
		case '~', '^', '!', '$', '&', '*', '+', '=', '/', '?', '@', '{', '}', '|', '`':
			return "", fmt.Errorf("character %q must be escaped", ch)
		default:
			builder.WriteByte(ch)
		}
	}
	return builder.String(), nil
}

func (c *turtleCursor) parseBlankNodeLabel() (Term, error) {
	c.pos += 2
	start := c.pos
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		if ch == ':' || isTurtleTerminator(ch, c.peekNext()) {
			break
		}
		c.pos++
	}
	label := c.input[start:c.pos]
	if !IsBlankNodeLabel(label) {
		return nil, c.errorf("invalid blank node label %q", label)
	}
	if node, ok := c.labels[label]; ok {
		return node, nil
	}
	node := c.freshBlankNode()
	c.labels[label] = node
	c.meta.RegisterLabeled(node, label)
	return node, nil
}

func (c *turtleCursor) freshBlankNode() BlankNode {
	c.blankNodeCounter++
	return BlankNode{ID: fmt.Sprintf("b%d", c.blankNodeCounter)}
}

func (c *turtleCursor) newBlankNode() BlankNode {
	node := c.freshBlankNode()
	c.meta.Register(node)
	return node
}

func (c *turtleCursor) enter() error {
	c.depth++
	if c.depth > c.options.MaxDepth {
		return c.fail(ErrDepthExceeded)
	}
	return nil
}

// parseBlankNodePropertyList parses [predicateObjectList] or []. The second
// result reports an empty bracket pair.
func (c *turtleCursor) parseBlankNodePropertyList() (Term, bool, error) {
	if !c.consume('[') {
		return nil, false, c.errorf("expected '['")
	}
	if err := c.enter(); err != nil {
		return nil, false, err
	}
	defer func() { c.depth-- }()
	node := c.newBlankNode()
	if c.consume(']') {
		return node, true, nil
	}
	if err := c.parsePredicateObjectList(node); err != nil {
		return nil, false, err
	}
	if !c.consume(']') {
		return nil, false, c.errorf("expected ']'")
	}
	return node, false, nil
}

// parseCollection parses (object*) into rdf:first/rdf:rest triples and
// returns the head, or rdf:nil for an empty collection.
func (c *turtleCursor) parseCollection() (Term, error) {
	if !c.consume('(') {
		return nil, c.errorf("expected '('")
	}
	if err := c.enter(); err != nil {
		return nil, err
	}
	defer func() { c.depth-- }()
	var head Term = RDFNil
	var previous BlankNode
	for {
		c.skipWS()
		if c.pos >= len(c.input) {
			return nil, c.errorf("unterminated collection")
		}
		if c.input[c.pos] == ')' {
			c.pos++
			break
		}
		cell := c.newBlankNode()
		if head == RDFNil {
			head = cell
		} else if err := c.graph.Add(Triple{S: previous, P: RDFRest, O: cell}); err != nil {
			return nil, c.fail(err)
		}
		element, err := c.parseObject()
		if err != nil {
			return nil, err
		}
		if err := c.graph.Add(Triple{S: cell, P: RDFFirst, O: element}); err != nil {
			return nil, c.fail(err)
		}
		previous = cell
	}
	if head != RDFNil {
		if err := c.graph.Add(Triple{S: previous, P: RDFRest, O: RDFNil}); err != nil {
			return nil, c.fail(err)
		}
	}
	return head, nil
}

func (c *turtleCursor) parseLiteral() (Term, error) {
	quote := c.input[c.pos]
	long := strings.HasPrefix(c.input[c.pos:], strings.Repeat(string(quote), 3))
	var lexical string
	var err error
	if long {
		lexical, err = c.parseLongString(quote)
	} else {
		lexical, err = c.parseShortString(quote)
	}
	if err != nil {
		return nil, err
	}
	if c.peek() == '@' {
		c.pos++
		start := c.pos
		for c.pos < len(c.input) {
			ch := c.input[c.pos]
			if !(ch == '-' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')) {
				break
			}
			c.pos++
		}
		lang := c.input[start:c.pos]
		if !isValidLangTag(lang) {
			return nil, c.errorf("invalid language tag %q", lang)
		}
		return Literal{Lexical: lexical, Lang: lang}, nil
	}
	if strings.HasPrefix(c.input[c.pos:], "^^") {
		c.pos += 2
		dt, err := c.parseResource()
		if err != nil {
			return nil, err
		}
		iri, ok := dt.(IRI)
		if !ok {
			return nil, c.errorf("datatype must be IRI")
		}
		return Literal{Lexical: lexical, Datatype: iri}, nil
	}
	return Literal{Lexical: lexical}, nil
}

func (c *turtleCursor) parseShortString(quote byte) (string, error) {
	c.pos++
	var builder strings.Builder
	for {
		if c.pos >= len(c.input) {
			return "", c.errorf("unterminated string literal")
		}
		ch := c.input[c.pos]
		switch ch {
		case quote:
			c.pos++
			return builder.String(), nil
		case '\n', '\r':
			return "", c.errorf("line break in short string literal")
		case '\\':
			if err := c.parseStringEscape(&builder); err != nil {
				return "", err
			}
		default:
			builder.WriteByte(ch)
			c.pos++
		}
	}
}

func (c *turtleCursor) parseLongString(quote byte) (string, error) {
	c.pos += 3
	closing := strings.Repeat(string(quote), 3)
	var builder strings.Builder
	for {
		if c.pos >= len(c.input) {
			return "", c.errorf("unterminated long string literal")
		}
		if strings.HasPrefix(c.input[c.pos:], closing) {
			c.pos += 3
			// Quotes directly before the closing delimiter belong to the content.
			for c.pos < len(c.input) && c.input[c.pos] == quote {
				builder.WriteByte(quote)
				c.pos++
			}
			return builder.String(), nil
		}
		ch := c.input[c.pos]
		if ch == '\\' {
			if err := c.parseStringEscape(&builder); err != nil {
				return "", err
			}
			continue
		}
		builder.WriteByte(ch)
		c.pos++
	}
}

func (c *turtleCursor) parseStringEscape(builder *strings.Builder) error {
	if c.pos+1 >= len(c.input) {
		return c.errorf("unterminated escape")
	}
	switch next := c.input[c.pos+1]; next {
	case 'u', 'U':
		r, err := c.parseUChar()
		if err != nil {
			return err
		}
		builder.WriteRune(r)
		return nil
	case 'n':
		builder.WriteByte('\n')
	case 't':
		builder.WriteByte('\t')
	case 'r':
		builder.WriteByte('\r')
	case 'b':
		builder.WriteByte('\b')
	case 'f':
		builder.WriteByte('\f')
	case '"', '\'', '\\':
		builder.WriteByte(next)
	default:
		return c.errorf("invalid escape sequence")
	}
	c.pos += 2
	return nil
}

func (c *turtleCursor) tryParseNumericLiteral() (Literal, bool) {
	start := c.pos
	if c.pos < len(c.input) && (c.input[c.pos] == '+' || c.input[c.pos] == '-') {
		c.pos++
	}
	hasDot, hasExponent, hasDigits := false, false, false
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		switch {
		case ch >= '0' && ch <= '9':
			hasDigits = true
			c.pos++
		case ch == '.' && !hasDot && !hasExponent:
			next := c.peekNext()
			// A dot is a decimal point only when a digit or exponent follows.
			if (next >= '0' && next <= '9') || ((next == 'e' || next == 'E') && hasDigits) {
				hasDot = true
				c.pos++
				continue
			}
			return c.finishNumber(start, hasDigits, hasDot, hasExponent)
		case (ch == 'e' || ch == 'E') && !hasExponent && hasDigits:
			hasExponent = true
			c.pos++
			if c.pos < len(c.input) && (c.input[c.pos] == '+' || c.input[c.pos] == '-') {
				c.pos++
			}
			if c.pos >= len(c.input) || c.input[c.pos] < '0' || c.input[c.pos] > '9' {
				c.pos = start
				return Literal{}, false
			}
		default:
			return c.finishNumber(start, hasDigits, hasDot, hasExponent)
		}
	}
	return c.finishNumber(start, hasDigits, hasDot, hasExponent)
}

func (c *turtleCursor) finishNumber(start int, hasDigits, hasDot, hasExponent bool) (Literal, bool) {
	if !hasDigits || (c.pos < len(c.input) && !isTurtleTerminator(c.input[c.pos], c.peekNext())) {
		c.pos = start
		return Literal{}, false
	}
	lexical := c.input[start:c.pos]
	switch {
	case hasExponent:
		return Literal{Lexical: lexical, Datatype: XSDDouble}, true
	case hasDot:
		return Literal{Lexical: lexical, Datatype: XSDDecimal}, true
	default:
		return Literal{Lexical: lexical, Datatype: XSDInteger}, true
	}
}

func (c *turtleCursor) tryParseBooleanLiteral() (Literal, bool) {
	for _, word := range []string{"true", "false"} {
		end := c.pos + len(word)
		if !strings.HasPrefix(c.input[c.pos:], word) {
			continue
		}
		next := byte(0)
		if end+1 < len(c.input) {
			next = c.input[end+1]
		}
		if end == len(c.input) || isTurtleTerminator(c.input[end], next) {
			c.pos = end
			return Literal{Lexical: word, Datatype: XSDBoolean}, true
		}
	}
	return Literal{}, false
}

func (c *turtleCursor) errorf(format string, args ...interface{}) error {
	return newParseError(string(FormatTurtle), c.input, c.pos, fmt.Errorf(format, args...))
}

func (c *turtleCursor) fail(err error) error {
	return newParseError(string(FormatTurtle), c.input, c.pos, err)
}
