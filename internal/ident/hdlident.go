package ident

import "fmt"

// Kind distinguishes the five HDL source-identifier shapes. Equality
// between identifiers of different kinds is always false, even if
// their text happens to coincide.
type Kind int

const (
	VHDLBasic Kind = iota
	VHDLExtended
	SVBasic
	SVEscaped
	SVSystem
)

func (k Kind) String() string {
	switch k {
	case VHDLBasic:
		return "vhdl-basic"
	case VHDLExtended:
		return "vhdl-extended"
	case SVBasic:
		return "sv-basic"
	case SVEscaped:
		return "sv-escaped"
	case SVSystem:
		return "sv-system"
	default:
		return "unknown"
	}
}

// HDLIdent is the identifier a Primary Unit is keyed by: a VHDL or SV
// source-level name, carrying the language-appropriate case and
// escaping rules. Basic VHDL identifiers are case-insensitive; all
// other forms, including SV's (a case-sensitive language throughout),
// are compared exactly.
type HDLIdent struct {
	kind    Kind
	display string
	norm    string
}

// Key is the comparable projection of an HDLIdent suitable for use as
// a map key under the identifier's own equivalence rule (kind plus
// normalized spelling), independent of display casing.
type Key struct {
	kind Kind
	norm string
}

// NewVHDLBasic wraps a basic VHDL identifier spelling (no escaping).
// Normalized to lowercase for equality/hashing per spec §3.
func NewVHDLBasic(spelling string) HDLIdent {
	return HDLIdent{kind: VHDLBasic, display: spelling, norm: toLowerASCII(spelling)}
}

// NewVHDLExtended wraps an extended VHDL identifier, given including
// its surrounding backslashes (e.g. `\my signal\`). Case-sensitive;
// doubled backslashes are un-escaped to their single-backslash form
// for the normalized comparison key, matching how the lexer captures
// an embedded backslash.
func NewVHDLExtended(spelling string) (HDLIdent, error) {
	if len(spelling) < 2 || spelling[0] != '\\' || spelling[len(spelling)-1] != '\\' {
		return HDLIdent{}, fmt.Errorf("ident: extended VHDL identifier %q must be delimited by backslashes", spelling)
	}
	inner := unescapeDoubled(spelling[1:len(spelling)-1], '\\')
	if inner == "" {
		return HDLIdent{}, fmt.Errorf("ident: extended VHDL identifier %q must not be empty", spelling)
	}
	return HDLIdent{kind: VHDLExtended, display: spelling, norm: inner}, nil
}

// NewSVBasic wraps a basic SV identifier spelling. Case-sensitive.
func NewSVBasic(spelling string) HDLIdent {
	return HDLIdent{kind: SVBasic, display: spelling, norm: spelling}
}

// NewSVEscaped wraps a \-escaped SV identifier, given including its
// leading backslash. Case-sensitive.
func NewSVEscaped(spelling string) (HDLIdent, error) {
	if len(spelling) < 2 || spelling[0] != '\\' {
		return HDLIdent{}, fmt.Errorf("ident: escaped SV identifier %q must start with a backslash", spelling)
	}
	return HDLIdent{kind: SVEscaped, display: spelling, norm: spelling[1:]}, nil
}

// NewSVSystem wraps a $-prefixed SV system identifier, given including
// its leading '$'. Case-sensitive.
func NewSVSystem(spelling string) (HDLIdent, error) {
	if len(spelling) < 2 || spelling[0] != '$' {
		return HDLIdent{}, fmt.Errorf("ident: system SV identifier %q must start with '$'", spelling)
	}
	return HDLIdent{kind: SVSystem, display: spelling, norm: spelling}, nil
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// unescapeDoubled collapses a doubled delimiter rune into a single
// occurrence, mirroring the lexer's escape rule for extended
// identifiers and bit-string/string literals.
func unescapeDoubled(s string, delim rune) string {
	var b []rune
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		b = append(b, runes[i])
		if runes[i] == delim && i+1 < len(runes) && runes[i+1] == delim {
			i++
		}
	}
	return string(b)
}

// Kind returns the identifier's shape.
func (id HDLIdent) Kind() Kind {
	return id.kind
}

// String returns the identifier's original display spelling.
func (id HDLIdent) String() string {
	return id.display
}

// Equal reports whether id and other denote the same source
// identifier: same kind, and matching normalized spelling. Identifiers
// of different kinds are never equal, even with coincident text.
func (id HDLIdent) Equal(other HDLIdent) bool {
	return id.kind == other.kind && id.norm == other.norm
}

// AsKey returns the comparable map-key projection of id.
func (id HDLIdent) AsKey() Key {
	return Key{kind: id.kind, norm: id.norm}
}
