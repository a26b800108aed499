package vhdl

import (
	"fmt"

	"github.com/hdlpm/hdlpm/internal/position"
)

// ErrorKind classifies a VHDL lex error per spec §7's lex-error
// taxonomy.
type ErrorKind int

const (
	InvalidCharacter ErrorKind = iota
	UnclosedComment
	UnclosedLiteral
	EmptyExtendedIdentifier
	InvalidBase
	DigitOutOfBaseRange
	MissingBaseSpecifier
	BadExponent
	InvalidCharacterAfterDigit
	MissingFractionDigits
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidCharacter:
		return "invalid character"
	case UnclosedComment:
		return "unclosed comment"
	case UnclosedLiteral:
		return "unclosed literal"
	case EmptyExtendedIdentifier:
		return "empty extended identifier"
	case InvalidBase:
		return "invalid base"
	case DigitOutOfBaseRange:
		return "digit out of base range"
	case MissingBaseSpecifier:
		return "missing base specifier"
	case BadExponent:
		return "bad exponent"
	case InvalidCharacterAfterDigit:
		return "invalid character after digit"
	case MissingFractionDigits:
		return "missing digits after decimal point"
	default:
		return "lex error"
	}
}

// LexError is a positioned VHDL lexical error.
type LexError struct {
	Kind     ErrorKind
	Message  string
	Position position.Position
}

func (e *LexError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Position, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Position, e.Kind)
}

// At reports where the error occurred, satisfying render.PositionedError.
func (e *LexError) At() position.Position {
	return e.Position
}
