package vhdl

import (
	"strings"

	"github.com/hdlpm/hdlpm/internal/position"
)

// Lexer tokenizes VHDL source code, tracking positions as it goes.
// Grounded on the teacher's character-dispatch lexer shape, generalized
// to VHDL's richer literal grammar (based integers, bit strings,
// extended identifiers, attribute ticks).
type Lexer struct {
	tr       *position.Tracker
	filename string
	errors   []*LexError
}

// New creates a Lexer over input, tagging tokens with filename for
// error reporting.
func New(input, filename string) *Lexer {
	return &Lexer{tr: position.New(input), filename: filename}
}

// Errors returns all lex errors recorded so far.
func (l *Lexer) Errors() []*LexError {
	return l.errors
}

func (l *Lexer) fail(kind ErrorKind, at position.Position, msg string) {
	l.errors = append(l.errors, &LexError{Kind: kind, Message: msg, Position: at})
}

func isWhitespace(c rune) bool {
	switch c {
	case ' ', ' ', '\t', '\v', '\r', '\n':
		return true
	}
	return false
}

func isLetter(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func digitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// TokenizeAll lexes the entire input, returning every token including a
// final EOF. Call Errors afterward to retrieve any lex errors.
func (l *Lexer) TokenizeAll() []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.tr.Locate()
	c, ok := l.tr.Peek()
	if !ok {
		return Token{Kind: EOF, Start: start.NextCol(), End: start.NextCol()}
	}

	switch {
	case isLetter(c):
		return l.lexWord(start)
	case c == '\\':
		return l.lexExtendedIdentifier(start)
	case c == '"':
		return l.lexString(start)
	case isDigit(c):
		return l.lexNumber(start)
	case c == '-':
		if n, ok := l.tr.PeekAt(1); ok && n == '-' {
			return l.lexLineComment(start)
		}
		return l.lexOneDelimiter(start)
	case c == '/':
		if n, ok := l.tr.PeekAt(1); ok && n == '*' {
			return l.lexBlockComment(start)
		}
		return l.lexDelimiter(start)
	case c == '\'':
		return l.lexCharLiteral(start)
	default:
		return l.lexDelimiter(start)
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		c, ok := l.tr.Peek()
		if !ok || !isWhitespace(c) {
			return
		}
		l.tr.Consume()
	}
}

// lexWord reads a basic identifier, keyword, or (if an unsized
// bit-string base specifier is immediately followed by a quote) a
// bit-string literal.
func (l *Lexer) lexWord(start position.Position) Token {
	mark := l.tr.Mark()
	for {
		c, ok := l.tr.Peek()
		if !ok || !(isLetter(c) || isDigit(c) || c == '_') {
			break
		}
		l.tr.Consume()
	}
	word := l.tr.Slice(mark)

	if c, ok := l.tr.Peek(); ok && c == '"' && isBitStringBase(word) {
		return l.lexBitStringBody(start, "", word)
	}

	kind, form, kw := lookupWord(word)
	return Token{Kind: kind, Form: form, Value: word, KeywordName: kw, Start: start, End: l.tr.Locate()}
}

var bitStringBases = map[string]bool{
	"b": true, "o": true, "x": true, "d": true,
	"ub": true, "uo": true, "ux": true,
	"sb": true, "so": true, "sx": true,
}

func isBitStringBase(word string) bool {
	return bitStringBases[strings.ToLower(word)]
}

// lexBitStringBody reads the quoted body of a bit-string literal,
// given the already-scanned numeric width prefix and base specifier.
func (l *Lexer) lexBitStringBody(start position.Position, widthPrefix, baseSpec string) Token {
	mark := l.tr.Mark()
	l.tr.Consume() // opening quote

	for {
		c, ok := l.tr.Peek()
		if !ok {
			l.fail(UnclosedLiteral, start, "unclosed bit string literal")
			break
		}
		if c == '"' {
			l.tr.Consume()
			if n, ok := l.tr.Peek(); ok && n == '"' {
				l.tr.Consume() // doubled quote: embedded quote char, keep reading
				continue
			}
			break
		}
		l.tr.Consume()
	}

	value := widthPrefix + baseSpec + l.tr.Slice(mark)
	return Token{Kind: BitStringLiteral, Value: value, Start: start, End: l.tr.Locate()}
}

// lexExtendedIdentifier reads a \name\ identifier; doubled backslash is
// an embedded backslash, and an empty body is an error.
func (l *Lexer) lexExtendedIdentifier(start position.Position) Token {
	mark := l.tr.Mark()
	l.tr.Consume() // opening backslash

	bodyStart := l.tr.Mark()
	for {
		c, ok := l.tr.Peek()
		if !ok {
			l.fail(UnclosedLiteral, start, "unclosed extended identifier")
			break
		}
		if c == '\\' {
			l.tr.Consume()
			if n, ok := l.tr.Peek(); ok && n == '\\' {
				l.tr.Consume() // doubled backslash: embedded backslash
				continue
			}
			break
		}
		l.tr.Consume()
	}

	body := l.tr.Slice(bodyStart)
	body = strings.TrimSuffix(body, "\\")
	if body == "" {
		l.fail(EmptyExtendedIdentifier, start, "extended identifier must not be empty")
	}

	value := l.tr.Slice(mark)
	return Token{Kind: Identifier, Form: IdentExtended, Value: value, Start: start, End: l.tr.Locate()}
}

// lexString reads a "..." string literal; doubled quote is an
// embedded quote.
func (l *Lexer) lexString(start position.Position) Token {
	mark := l.tr.Mark()
	l.tr.Consume() // opening quote

	for {
		c, ok := l.tr.Peek()
		if !ok {
			l.fail(UnclosedLiteral, start, "unclosed string literal")
			break
		}
		if c == '"' {
			l.tr.Consume()
			if n, ok := l.tr.Peek(); ok && n == '"' {
				l.tr.Consume()
				continue
			}
			break
		}
		l.tr.Consume()
	}

	value := l.tr.Slice(mark)
	return Token{Kind: StringLiteral, Value: value, Start: start, End: l.tr.Locate()}
}

// lexCharLiteral reads 'c', exactly one graphic character between
// single quotes. Attribute access (name'event) is not disambiguated
// here: a bare tick with no closing quote is reported as a Delimiter,
// leaving disambiguation to higher layers per spec §4.B.
func (l *Lexer) lexCharLiteral(start position.Position) Token {
	// Lookahead for graphic-char-then-closing-quote shape.
	if second, ok := l.tr.PeekAt(1); ok && second != '\'' {
		if third, ok := l.tr.PeekAt(2); ok && third == '\'' {
			mark := l.tr.Mark()
			l.tr.Consume() // opening quote
			l.tr.Consume() // the character
			l.tr.Consume() // closing quote
			value := l.tr.Slice(mark)
			return Token{Kind: CharLiteral, Value: value, Start: start, End: l.tr.Locate()}
		}
	}
	return l.lexOneDelimiter(start)
}

// lexNumber reads an abstract literal: decimal, real, based, or a
// digit-prefixed sized bit-string literal.
func (l *Lexer) lexNumber(start position.Position) Token {
	mark := l.tr.Mark()
	l.readDigitRun()
	intPart := l.tr.Slice(mark)

	if c, ok := l.tr.Peek(); ok && c == '.' {
		if n, ok := l.tr.PeekAt(1); ok && isDigit(n) {
			l.tr.Consume() // '.'
			fracMark := l.tr.Mark()
			l.readDigitRun()
			if l.tr.Slice(fracMark) == "" {
				l.fail(MissingFractionDigits, start, "expected digits after decimal point")
			}
			l.readOptionalExponent(start)
			return Token{Kind: AbstractLiteral, Form: LiteralDecimal, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
		}
	}

	if c, ok := l.tr.Peek(); ok && (c == '#' || c == ':') {
		return l.lexBasedLiteral(start, mark, intPart, c)
	}

	if c, ok := l.tr.Peek(); ok && isLetter(c) && c != 'e' && c != 'E' {
		letterMark := l.tr.Mark()
		for {
			c, ok := l.tr.Peek()
			if !ok || !isLetter(c) {
				break
			}
			l.tr.Consume()
		}
		letters := l.tr.Slice(letterMark)
		if c, ok := l.tr.Peek(); ok && c == '"' && isBitStringBase(letters) {
			return l.lexBitStringBody(start, intPart, letters)
		}
		l.fail(InvalidCharacterAfterDigit, start, "unexpected letters after digit")
		value := l.tr.Slice(mark)
		return Token{Kind: AbstractLiteral, Form: LiteralDecimal, Value: value, Start: start, End: l.tr.Locate()}
	}

	l.readOptionalExponent(start)
	return Token{Kind: AbstractLiteral, Form: LiteralDecimal, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
}

// readDigitRun consumes a run of digits, allowing a single underscore
// between two digits as a separator.
func (l *Lexer) readDigitRun() {
	for {
		c, ok := l.tr.Peek()
		if !ok {
			return
		}
		if isDigit(c) {
			l.tr.Consume()
			continue
		}
		if c == '_' {
			if n, ok := l.tr.PeekAt(1); ok && isDigit(n) {
				l.tr.Consume()
				continue
			}
		}
		return
	}
}

// readBasedDigitRun consumes a run of digits valid in base (allowing
// letters a-f/A-F once base exceeds 10), underscore-separated. It
// stops at the first digit or letter whose value is out of range for
// base and records a DigitOutOfBaseRange error for it.
func (l *Lexer) readBasedDigitRun(start position.Position, base int) {
	for {
		c, ok := l.tr.Peek()
		if !ok {
			return
		}
		if c == '_' {
			if n, ok := l.tr.PeekAt(1); ok && (isDigit(n) || isLetter(n)) {
				l.tr.Consume()
				continue
			}
			return
		}
		if isDigit(c) || isLetter(c) {
			v := digitValue(c)
			if v < 0 || v >= base {
				l.fail(DigitOutOfBaseRange, start, "digit out of range for base")
				return
			}
			l.tr.Consume()
			continue
		}
		return
	}
}

func (l *Lexer) lexBasedLiteral(start position.Position, mark position.Mark, intPart string, delim rune) Token {
	base := 0
	for _, d := range intPart {
		if d == '_' {
			continue
		}
		base = base*10 + int(d-'0')
	}
	if base < 2 || base > 16 {
		l.fail(InvalidBase, start, "base must be between 2 and 16")
		base = max(2, min(base, 16))
	}

	l.tr.Consume() // opening delimiter
	digitsStart := l.tr.Mark()
	l.readBasedDigitRun(start, base)
	if l.tr.Slice(digitsStart) == "" {
		l.fail(MissingBaseSpecifier, start, "expected digits after base delimiter")
	}

	if c, ok := l.tr.Peek(); ok && c == '.' {
		l.tr.Consume()
		fracStart := l.tr.Mark()
		l.readBasedDigitRun(start, base)
		if l.tr.Slice(fracStart) == "" {
			l.fail(MissingFractionDigits, start, "expected digits after decimal point")
		}
	}

	if c, ok := l.tr.Peek(); ok && c == delim {
		l.tr.Consume()
	} else {
		l.fail(UnclosedLiteral, start, "based literal missing closing delimiter")
	}

	l.readOptionalExponent(start)

	return Token{Kind: AbstractLiteral, Form: LiteralBased, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
}

// readOptionalExponent consumes E[+-]?digits if present.
func (l *Lexer) readOptionalExponent(start position.Position) {
	c, ok := l.tr.Peek()
	if !ok || (c != 'e' && c != 'E') {
		return
	}
	l.tr.Consume()
	if s, ok := l.tr.Peek(); ok && (s == '+' || s == '-') {
		l.tr.Consume()
	}
	digitsMark := l.tr.Mark()
	l.readDigitRun()
	if l.tr.Slice(digitsMark) == "" {
		l.fail(BadExponent, start, "expected digits in exponent")
	}
}

func (l *Lexer) lexLineComment(start position.Position) Token {
	mark := l.tr.Mark()
	for {
		c, ok := l.tr.Peek()
		if !ok || c == '\n' {
			break
		}
		l.tr.Consume()
	}
	return Token{Kind: Comment, Form: CommentSingle, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
}

func (l *Lexer) lexBlockComment(start position.Position) Token {
	mark := l.tr.Mark()
	l.tr.Consume() // '/'
	l.tr.Consume() // '*'
	for {
		c, ok := l.tr.Peek()
		if !ok {
			l.fail(UnclosedComment, start, "unclosed delimited comment")
			break
		}
		if c == '*' {
			if n, ok := l.tr.PeekAt(1); ok && n == '/' {
				l.tr.Consume()
				l.tr.Consume()
				break
			}
		}
		l.tr.Consume()
	}
	return Token{Kind: Comment, Form: CommentDelimited, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
}

// delimiters3 and delimiters2 are the VHDL multi-character delimiters,
// longest first so maximal munch can try 3 then 2 then fall back to 1.
var delimiters3 = []string{"?/=", "?<=", "?>="}
var delimiters2 = []string{"=>", "**", ":=", "/=", ">=", "<=", "<>", "??", "?=", "?<", "?>", "<<", ">>"}

func (l *Lexer) lexDelimiter(start position.Position) Token {
	return l.lexOneDelimiter(start)
}

// lexOneDelimiter performs maximal-munch matching of the VHDL
// delimiter set, up to 3 characters.
func (l *Lexer) lexOneDelimiter(start position.Position) Token {
	var buf [3]rune
	n := 0
	for n < 3 {
		c, ok := l.tr.PeekAt(n)
		if !ok {
			break
		}
		buf[n] = c
		n++
	}

	if n >= 3 {
		s := string(buf[:3])
		if contains(delimiters3, s) {
			l.tr.Consume()
			l.tr.Consume()
			l.tr.Consume()
			return Token{Kind: Delimiter, Value: s, Start: start, End: l.tr.Locate()}
		}
	}
	if n >= 2 {
		s := string(buf[:2])
		if contains(delimiters2, s) {
			l.tr.Consume()
			l.tr.Consume()
			return Token{Kind: Delimiter, Value: s, Start: start, End: l.tr.Locate()}
		}
	}

	c, ok := l.tr.Consume()
	if !ok {
		return Token{Kind: EOF, Start: start, End: start}
	}
	if !isSingleCharDelimiter(c) {
		l.fail(InvalidCharacter, start, "unrecognized character")
	}
	return Token{Kind: Delimiter, Value: string(c), Start: start, End: l.tr.Locate()}
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

var singleCharDelimiters = map[rune]bool{
	'&': true, '\'': true, '(': true, ')': true, '*': true, '+': true,
	',': true, '-': true, '.': true, '/': true, ':': true, ';': true,
	'<': true, '=': true, '>': true, '[': true, ']': true, '|': true,
}

func isSingleCharDelimiter(c rune) bool {
	return singleCharDelimiters[c]
}
