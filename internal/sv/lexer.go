package sv

import (
	"github.com/hdlpm/hdlpm/internal/position"
)

// Lexer tokenizes (System)Verilog source code, tracking positions as
// it goes. Sibling of the VHDL lexer, sharing its character-dispatch
// shape but with SV's richer number-literal grammar, `-directives,
// and case-sensitive keywords.
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
	case ' ', '\t', '\v', '\r', '\n':
		return true
	}
	return false
}

func isLetter(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentTail(c rune) bool {
	return isLetter(c) || isDigit(c) || c == '$'
}

// TokenizeAll lexes the entire input, returning every token including
// a final EOF. Call Errors afterward to retrieve any lex errors.
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
	case c == '$':
		return l.lexSystemIdentifier(start)
	case c == '\\':
		return l.lexEscapedIdentifier(start)
	case isDigit(c):
		return l.lexNumber(start)
	case c == '\'':
		return l.lexTick(start)
	case c == '"':
		return l.lexString(start)
	case c == '`':
		return l.lexDirective(start)
	case c == '/':
		if n, ok := l.tr.PeekAt(1); ok && n == '/' {
			return l.lexLineComment(start)
		}
		if n, ok := l.tr.PeekAt(1); ok && n == '*' {
			return l.lexBlockComment(start)
		}
		return l.lexOperator(start)
	default:
		return l.lexOperator(start)
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

// lexWord reads a basic identifier or keyword.
func (l *Lexer) lexWord(start position.Position) Token {
	mark := l.tr.Mark()
	for {
		c, ok := l.tr.Peek()
		if !ok || !isIdentTail(c) {
			break
		}
		l.tr.Consume()
	}
	word := l.tr.Slice(mark)
	kind, form, kw := lookupWord(word)
	return Token{Kind: kind, Form: form, Value: word, KeywordName: kw, Start: start, End: l.tr.Locate()}
}

// lexSystemIdentifier reads a $-prefixed system task/function name.
func (l *Lexer) lexSystemIdentifier(start position.Position) Token {
	mark := l.tr.Mark()
	l.tr.Consume() // '$'
	for {
		c, ok := l.tr.Peek()
		if !ok || !isIdentTail(c) {
			break
		}
		l.tr.Consume()
	}
	return Token{Kind: Identifier, Form: IdentSystem, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
}

// lexEscapedIdentifier reads a \-prefixed identifier that runs until
// the next whitespace character.
func (l *Lexer) lexEscapedIdentifier(start position.Position) Token {
	mark := l.tr.Mark()
	l.tr.Consume() // '\'
	for {
		c, ok := l.tr.Peek()
		if !ok || isWhitespace(c) {
			break
		}
		l.tr.Consume()
	}
	return Token{Kind: Identifier, Form: IdentEscaped, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
}

// lexString reads a "..." string literal using backslash escaping
// (not doubled quotes, unlike VHDL).
func (l *Lexer) lexString(start position.Position) Token {
	mark := l.tr.Mark()
	l.tr.Consume() // opening quote

	for {
		c, ok := l.tr.Peek()
		if !ok || c == '\n' {
			l.fail(UnclosedLiteral, start, "unclosed string literal")
			break
		}
		if c == '\\' {
			l.tr.Consume()
			if _, ok := l.tr.Peek(); ok {
				l.tr.Consume()
			}
			continue
		}
		if c == '"' {
			l.tr.Consume()
			break
		}
		l.tr.Consume()
	}

	return Token{Kind: StringLiteral, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
}

// lexDirective reads a backtick-introduced compiler directive name.
func (l *Lexer) lexDirective(start position.Position) Token {
	mark := l.tr.Mark()
	l.tr.Consume() // '`'
	nameMark := l.tr.Mark()
	for {
		c, ok := l.tr.Peek()
		if !ok || !isIdentTail(c) {
			break
		}
		l.tr.Consume()
	}
	if l.tr.Slice(nameMark) == "" {
		l.fail(EmptyDirective, start, "compiler directive must name a macro")
	}
	return Token{Kind: Directive, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
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
	return Token{Kind: Comment, Form: CommentOneLine, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
}

func (l *Lexer) lexBlockComment(start position.Position) Token {
	mark := l.tr.Mark()
	l.tr.Consume() // '/'
	l.tr.Consume() // '*'
	for {
		c, ok := l.tr.Peek()
		if !ok {
			l.fail(UnclosedComment, start, "unclosed block comment")
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
	return Token{Kind: Comment, Form: CommentBlock, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
}

// --- numbers ---

func (l *Lexer) lexNumber(start position.Position) Token {
	mark := l.tr.Mark()
	l.readDigitRun()

	if c, ok := l.tr.Peek(); ok && c == '\'' {
		if n, ok := l.tr.PeekAt(1); ok && (n == '(' || n == '{') {
			// "only base": a bare tick before ( or { is an operator,
			// not part of this number.
			return Token{Kind: Number, Form: NumberDecimal, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
		}
		return l.lexBasedOrUnbased(start, mark, l.tr.Slice(mark))
	}

	if c, ok := l.tr.Peek(); ok && c == '.' {
		if n, ok := l.tr.PeekAt(1); ok && isDigit(n) {
			l.tr.Consume()
			fracMark := l.tr.Mark()
			l.readDigitRun()
			if l.tr.Slice(fracMark) == "" {
				l.fail(MissingFractionDigits, start, "expected digits after decimal point")
			}
			l.readOptionalExponent(start)
			return Token{Kind: Number, Form: NumberReal, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
		}
	}

	if c, ok := l.tr.Peek(); ok && (c == 'e' || c == 'E') {
		if n, ok := l.tr.PeekAt(1); ok && (isDigit(n) || n == '+' || n == '-') {
			l.readOptionalExponent(start)
			return Token{Kind: Number, Form: NumberReal, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
		}
	}

	if unit, ok := l.matchTimeUnit(); ok {
		l.consumeRunes(len(unit))
		return Token{Kind: Number, Form: NumberTime, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
	}

	return Token{Kind: Number, Form: NumberDecimal, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
}

// lexTick handles a number (or only-base operator) that begins at a
// bare tick, with no preceding width digits.
func (l *Lexer) lexTick(start position.Position) Token {
	if n, ok := l.tr.PeekAt(1); ok && (n == '(' || n == '{') {
		mark := l.tr.Mark()
		l.tr.Consume()
		return Token{Kind: Operator, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
	}
	mark := l.tr.Mark()
	return l.lexBasedOrUnbased(start, mark, "")
}

var baseLetters = map[rune]bool{'d': true, 'D': true, 'o': true, 'O': true, 'h': true, 'H': true, 'b': true, 'B': true}

func baseFor(c rune) int {
	switch c {
	case 'b', 'B':
		return 2
	case 'o', 'O':
		return 8
	case 'd', 'D':
		return 10
	case 'h', 'H':
		return 16
	}
	return 0
}

func isUnbasedDigit(c rune) bool {
	switch c {
	case '0', '1', 'x', 'X', 'z', 'Z':
		return true
	}
	return false
}

// lexBasedOrUnbased consumes the portion of a number starting at the
// tick: base-specifier numbers ('b0011, 'sd3, 8'hFF), unbased values
// ('0 '1 'x 'z), recording an error when neither shape matches.
func (l *Lexer) lexBasedOrUnbased(start position.Position, mark position.Mark, widthPrefix string) Token {
	l.tr.Consume() // tick

	c, ok := l.tr.Peek()
	if !ok {
		l.fail(MissingBaseSpecifier, l.tr.Locate(), "expected base specifier after tick")
		return Token{Kind: Number, Form: NumberBased, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
	}

	if c == 's' || c == 'S' {
		l.tr.Consume()
		c, ok = l.tr.Peek()
	}

	if ok && baseLetters[c] {
		base := baseFor(c)
		l.tr.Consume()
		digitsMark := l.tr.Mark()
		l.readBasedDigits(base)
		if l.tr.Slice(digitsMark) == "" {
			l.fail(MissingBaseSpecifier, l.tr.Locate(), "expected digits after base specifier")
		}
		return Token{Kind: Number, Form: NumberBased, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
	}

	if widthPrefix == "" && ok && isUnbasedDigit(c) {
		l.tr.Consume()
		return Token{Kind: Number, Form: NumberUnbased, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
	}

	l.fail(MissingBaseSpecifier, l.tr.Locate(), "expected a base specifier (d/o/h/b) or 0/1/x/z")
	return Token{Kind: Number, Form: NumberBased, Value: l.tr.Slice(mark), Start: start, End: l.tr.Locate()}
}

// readBasedDigits consumes digits valid for base, also accepting the
// SV four-state placeholders x, z, and ?, with underscore separators.
func (l *Lexer) readBasedDigits(base int) {
	for {
		c, ok := l.tr.Peek()
		if !ok {
			return
		}
		if c == '_' {
			l.tr.Consume()
			continue
		}
		if c == 'x' || c == 'X' || c == 'z' || c == 'Z' || c == '?' {
			l.tr.Consume()
			continue
		}
		if isDigit(c) || (base == 16 && isHexLetter(c)) {
			v := digitValue(c)
			if v >= base {
				return
			}
			l.tr.Consume()
			continue
		}
		return
	}
}

func isHexLetter(c rune) bool {
	return c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
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

func (l *Lexer) matchTimeUnit() (string, bool) {
	for _, unit := range timeUnits {
		matches := true
		for i, want := range unit {
			c, ok := l.tr.PeekAt(i)
			if !ok || c != want {
				matches = false
				break
			}
		}
		if !matches {
			continue
		}
		// Must not be followed by more identifier characters (so "nsx"
		// isn't mistaken for the "ns" unit).
		if c, ok := l.tr.PeekAt(len(unit)); ok && isIdentTail(c) {
			continue
		}
		return unit, true
	}
	return "", false
}

func (l *Lexer) consumeRunes(n int) {
	for i := 0; i < n; i++ {
		l.tr.Consume()
	}
}

// --- operators ---

var operators4 = []string{"<<<=", ">>>="}
var operators3 = []string{"===", "!==", "<<=", ">>=", "|->", "|=>", "->>", "<->"}
var operators2 = []string{
	"==", "!=", "<=", ">=", "&&", "||", "++", "--", "+=", "-=", "*=", "/=",
	"%=", "&=", "|=", "^=", "<<", ">>", "~&", "~|", "~^", "^~", "::", "**",
	"->", "=>", "+:", "-:",
}

func (l *Lexer) lexOperator(start position.Position) Token {
	var buf [4]rune
	n := 0
	for n < 4 {
		c, ok := l.tr.PeekAt(n)
		if !ok {
			break
		}
		buf[n] = c
		n++
	}

	if n >= 4 && containsOp(operators4, string(buf[:4])) {
		l.consumeRunes(4)
		return Token{Kind: Operator, Value: string(buf[:4]), Start: start, End: l.tr.Locate()}
	}
	if n >= 3 && containsOp(operators3, string(buf[:3])) {
		l.consumeRunes(3)
		return Token{Kind: Operator, Value: string(buf[:3]), Start: start, End: l.tr.Locate()}
	}
	if n >= 2 && containsOp(operators2, string(buf[:2])) {
		l.consumeRunes(2)
		return Token{Kind: Operator, Value: string(buf[:2]), Start: start, End: l.tr.Locate()}
	}

	c, ok := l.tr.Consume()
	if !ok {
		return Token{Kind: EOF, Start: start, End: start}
	}
	if c < 0x20 || c == 0x7f {
		l.fail(InvalidCharacter, start, "unrecognized character")
	}
	return Token{Kind: Operator, Value: string(c), Start: start, End: l.tr.Locate()}
}

func containsOp(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
