// Package sv implements the (System)Verilog lexer: position-tracked
// tokens over SV source text, including its richer numeric-literal
// grammar and backtick directives, per spec §4.C.
package sv

import (
	"fmt"

	"github.com/hdlpm/hdlpm/internal/position"
)

// Kind is the coarse token category.
type Kind int

const (
	EOF Kind = iota
	Comment
	Operator
	Number
	Identifier
	Keyword
	StringLiteral
	Directive
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Comment:
		return "Comment"
	case Operator:
		return "Operator"
	case Number:
		return "Number"
	case Identifier:
		return "Identifier"
	case Keyword:
		return "Keyword"
	case StringLiteral:
		return "StringLiteral"
	case Directive:
		return "Directive"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Form distinguishes the sub-shape of a token within its Kind, as
// spec §3 lays out per language. Meaning depends on Kind: for Comment,
// {CommentOneLine, CommentBlock}; for Number, {NumberDecimal,
// NumberBased, NumberReal, NumberTime, NumberUnbased, NumberOnlyBase};
// for Identifier, {IdentBasic, IdentEscaped, IdentSystem}. Zero
// (unused) for all other kinds. The lexer never emits NumberOnlyBase:
// a tick directly before "(" or "{" becomes an Operator token.
type Form int

const (
	FormNone Form = iota
	CommentOneLine
	CommentBlock
	NumberDecimal
	NumberBased
	NumberReal
	NumberTime
	NumberUnbased
	NumberOnlyBase
	IdentBasic
	IdentEscaped
	IdentSystem
)

// Token is a single positioned SystemVerilog lexical token.
type Token struct {
	Kind        Kind
	Form        Form
	Value       string
	KeywordName string
	Start       position.Position
	End         position.Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Value)
}

// keywords is a curated SystemVerilog-2017 reserved word set,
// case-sensitive per spec §3.
var keywords = map[string]bool{
	"module": true, "endmodule": true, "input": true, "output": true,
	"inout": true, "wire": true, "reg": true, "logic": true, "always": true,
	"always_ff": true, "always_comb": true, "always_latch": true,
	"initial": true, "assign": true, "parameter": true, "localparam": true,
	"specparam": true, "defparam": true, "generate": true,
	"endgenerate": true, "genvar": true, "for": true, "while": true,
	"if": true, "else": true, "case": true, "endcase": true, "casex": true,
	"casez": true, "default": true, "function": true, "endfunction": true,
	"task": true, "endtask": true, "begin": true, "end": true,
	"posedge": true, "negedge": true, "edge": true, "interface": true,
	"endinterface": true, "modport": true, "package": true,
	"endpackage": true, "import": true, "export": true, "typedef": true,
	"struct": true, "union": true, "enum": true, "class": true,
	"endclass": true, "extends": true, "implements": true,
	"virtual": true, "pure": true, "static": true, "automatic": true,
	"bit": true, "byte": true, "shortint": true, "int": true,
	"longint": true, "integer": true, "time": true, "real": true,
	"shortreal": true, "string": true, "void": true, "signed": true,
	"unsigned": true, "packed": true, "unpacked": true, "primitive": true,
	"endprimitive": true, "table": true, "endtable": true,
	"specify": true, "endspecify": true, "fork": true, "join": true,
	"join_any": true, "join_none": true, "disable": true, "wait": true,
	"force": true, "release": true, "deassign": true, "tri": true,
	"tri0": true, "tri1": true, "wand": true, "wor": true,
	"supply0": true, "supply1": true, "uwire": true, "sequence": true,
	"endsequence": true, "property": true, "endproperty": true,
	"assert": true, "assume": true, "cover": true, "restrict": true,
	"program": true, "endprogram": true, "clocking": true,
	"endclocking": true, "global": true, "chandle": true, "event": true,
	"const": true, "ref": true, "var": true, "rand": true, "randc": true,
	"constraint": true, "solve": true, "before": true, "dist": true,
	"inside": true, "unique": true, "unique0": true, "priority": true,
	"iff": true, "implies": true, "foreach": true, "return": true,
	"break": true, "continue": true, "do": true, "repeat": true,
	"forever": true, "bind": true, "checker": true, "endchecker": true,
	"localparam_type": true, "type": true, "vectored": true,
	"scalared": true, "timeunit": true, "timeprecision": true,
	"this": true, "super": true, "null": true, "new": true,
	"and": true, "or": true, "not": true, "nand": true, "nor": true,
	"xor": true, "xnor": true, "buf": true, "bufif0": true,
	"bufif1": true, "notif0": true, "notif1": true,
}

// lookupWord classifies a basic-identifier spelling as Keyword or
// Identifier. Unlike VHDL, SV keywords are case-sensitive.
func lookupWord(spelling string) (Kind, Form, string) {
	if keywords[spelling] {
		return Keyword, FormNone, spelling
	}
	return Identifier, IdentBasic, ""
}

// timeUnits recognizes the SV time-literal unit suffixes.
var timeUnits = []string{"fs", "ps", "ns", "us", "ms", "s"}
