package units

import (
	"fmt"

	"github.com/hdlpm/hdlpm/internal/ident"
	"github.com/hdlpm/hdlpm/internal/vhdl"
)

// ExtractVHDL walks a VHDL token stream and returns the primary units
// it declares, in source order, with coarse outbound references (the
// identifiers mentioned in each unit's body — type marks, component
// and signal names, use-clause targets — without resolving them).
func ExtractVHDL(toks []vhdl.Token, sourcePath string) ([]*Unit, error) {
	body := stripVHDLComments(toks)

	var out []*Unit
	for i := 0; i < len(body); {
		t := body[i]
		if t.Kind != vhdl.Keyword {
			i++
			continue
		}
		var (
			u   *Unit
			ni  int
			err error
		)
		switch t.KeywordName {
		case "entity":
			u, ni, err = parseVHDLEntity(body, i, sourcePath)
		case "architecture":
			u, ni, err = parseVHDLOwnedUnit(body, i, sourcePath, Architecture)
		case "configuration":
			u, ni, err = parseVHDLOwnedUnit(body, i, sourcePath, Configuration)
		case "package":
			u, ni, err = parseVHDLPackage(body, i, sourcePath)
		default:
			i++
			continue
		}
		if err != nil {
			return out, err
		}
		out = append(out, u)
		i = ni
	}
	return out, nil
}

func stripVHDLComments(toks []vhdl.Token) []vhdl.Token {
	out := make([]vhdl.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind != vhdl.Comment {
			out = append(out, t)
		}
	}
	return out
}

func toVHDLIdent(tok vhdl.Token) (ident.HDLIdent, error) {
	switch tok.Form {
	case vhdl.IdentExtended:
		return ident.NewVHDLExtended(tok.Value)
	default:
		return ident.NewVHDLBasic(tok.Value), nil
	}
}

// parseVHDLEntity parses "entity <name> is <body> end [entity] [name] ;"
// starting at the 'entity' keyword token index i.
func parseVHDLEntity(toks []vhdl.Token, i int, sourcePath string) (*Unit, int, error) {
	start := toks[i].Start
	i++
	name, i, err := expectVHDLIdent(toks, i, "entity name")
	if err != nil {
		return nil, i, err
	}
	i = skipVHDLKeyword(toks, i, "is")

	refs, sawPort, portEmpty, i := scanVHDLBody(toks, i)
	i = consumeVHDLTrailer(toks, i)

	return &Unit{
		Shape:        Entity,
		Name:         name,
		SourcePath:   sourcePath,
		Position:     start,
		OutboundRefs: refs.order,
		IsTestbench:  !sawPort || portEmpty,
	}, i, nil
}

// parseVHDLOwnedUnit parses architecture/configuration declarations,
// which share the "<kw> <name> of <owner> is <body> end ... ;" shape.
func parseVHDLOwnedUnit(toks []vhdl.Token, i int, sourcePath string, shape Shape) (*Unit, int, error) {
	start := toks[i].Start
	i++
	name, i, err := expectVHDLIdent(toks, i, shape.String()+" name")
	if err != nil {
		return nil, i, err
	}
	i = skipVHDLKeyword(toks, i, "of")
	owner, i, err := expectVHDLIdent(toks, i, shape.String()+" owner")
	if err != nil {
		return nil, i, err
	}
	i = skipVHDLKeyword(toks, i, "is")

	refs, _, _, i := scanVHDLBody(toks, i)
	i = consumeVHDLTrailer(toks, i)

	return &Unit{
		Shape:        shape,
		Name:         name,
		SourcePath:   sourcePath,
		Position:     start,
		Owner:        &owner,
		OutboundRefs: refs.order,
	}, i, nil
}

// parseVHDLPackage parses "package <name> is <body> end ... ;" or
// "package body <name> is <body> end ... ;".
func parseVHDLPackage(toks []vhdl.Token, i int, sourcePath string) (*Unit, int, error) {
	start := toks[i].Start
	i++

	isBody := i < len(toks) && toks[i].Kind == vhdl.Keyword && toks[i].KeywordName == "body"
	if isBody {
		i++
	}

	name, i, err := expectVHDLIdent(toks, i, "package name")
	if err != nil {
		return nil, i, err
	}
	i = skipVHDLKeyword(toks, i, "is")

	refs, _, _, i := scanVHDLBody(toks, i)
	i = consumeVHDLTrailer(toks, i)

	u := &Unit{
		Shape:        Package,
		Name:         name,
		SourcePath:   sourcePath,
		Position:     start,
		OutboundRefs: refs.order,
	}
	if isBody {
		u.Shape = PackageBody
		owner := name
		u.Owner = &owner
	}
	return u, i, nil
}

func expectVHDLIdent(toks []vhdl.Token, i int, what string) (ident.HDLIdent, int, error) {
	if i >= len(toks) || toks[i].Kind != vhdl.Identifier {
		return ident.HDLIdent{}, i, fmt.Errorf("units: expected %s at %s", what, posOf(toks, i))
	}
	id, err := toVHDLIdent(toks[i])
	return id, i + 1, err
}

func skipVHDLKeyword(toks []vhdl.Token, i int, kw string) int {
	if i < len(toks) && toks[i].Kind == vhdl.Keyword && toks[i].KeywordName == kw {
		return i + 1
	}
	return i
}

// vhdlBlockOpeners are the keywords that, seen in a declarative or
// statement part, open a nested region closed by its own 'end' —
// unconditionally, unlike "if"/"case"/"for" and the subprogram and
// component keywords, which need a lookahead to tell whether an 'end'
// of their own follows (see vhdlOpensOwnBlock).
var vhdlBlockOpeners = map[string]bool{
	"process": true, "block": true,
	"record": true, "protected": true, "units": true,
	"generate": true, "loop": true,
}

// vhdlOpensOwnBlock reports whether the "if"/"case"/"for" keyword at
// toks[i] opens a region that will be closed by its own "end if"/
// "end case"/"end for" — as opposed to being the header of a
// generate/loop alternative, whose later "generate"/"loop" keyword is
// itself the real block opener and already accounted for by
// vhdlBlockOpeners. Distinguished by which keyword is reached first
// scanning forward: "then"/"is"/"end" (own block) or "generate"/
// "loop" (the alternative form, not double-counted here). A
// "function"/"procedure" opens a region only when "is" comes before a
// ";" outside its parameter list (a body, not a declaration), and a
// "component" only when it is not a "label: component" instantiation.
func vhdlOpensOwnBlock(toks []vhdl.Token, i int) bool {
	kw := toks[i].KeywordName
	if kw == "component" {
		return i == 0 || toks[i-1].Value != ":"
	}
	parens := 0
	for j := i + 1; j < len(toks); j++ {
		switch toks[j].Value {
		case "(":
			parens++
		case ")":
			parens--
		case ";":
			if parens == 0 && (kw == "function" || kw == "procedure") {
				return false
			}
		}
		if toks[j].Kind != vhdl.Keyword {
			continue
		}
		switch toks[j].KeywordName {
		case "generate", "loop":
			return false
		case "then":
			if kw == "if" {
				return true
			}
		case "is":
			if kw == "case" || kw == "function" || kw == "procedure" {
				return true
			}
		case "end":
			if kw == "for" {
				return true
			}
			return false
		}
	}
	return false
}

// scanVHDLBody collects outbound identifier references until the
// matching 'end' keyword — tracking nesting depth so that inner
// "end process;"/"end if;"/"end case;"/"end loop;"/"end generate;"/
// "end block;"/"end component;"/subprogram "end;" and similar nested
// closings are skipped rather than mistaken for the unit's own
// closing 'end' — and detects an empty "port ( )" clause along the
// way so callers can classify testbenches.
func scanVHDLBody(toks []vhdl.Token, i int) (refs *outboundSet, sawPort, portEmpty bool, next int) {
	refs = newOutboundSet()
	depth := 0
	for i < len(toks) {
		t := toks[i]
		if t.Kind == vhdl.Keyword && t.KeywordName == "end" {
			if depth > 0 {
				depth--
				i = skipVHDLEndTrailer(toks, i+1)
				continue
			}
			break
		}
		if t.Kind == vhdl.Keyword {
			switch t.KeywordName {
			case "if", "case", "for", "function", "procedure", "component":
				if vhdlOpensOwnBlock(toks, i) {
					depth++
				}
			default:
				if vhdlBlockOpeners[t.KeywordName] {
					depth++
				}
			}
		}
		if t.Kind == vhdl.Keyword && t.KeywordName == "port" {
			sawPort = true
			if i+2 < len(toks) && toks[i+1].Value == "(" && toks[i+2].Value == ")" {
				portEmpty = true
			}
		}
		if t.Kind == vhdl.Identifier {
			if id, err := toVHDLIdent(t); err == nil {
				refs.add(id)
			}
		}
		i++
	}
	return refs, sawPort, portEmpty, i
}

// skipVHDLEndTrailer consumes whatever optional keyword/repeated-name
// identifier/semicolon follows an already-consumed 'end', without
// strictly validating their shape — a coarse extractor only needs to
// resynchronize on the next token after the closing construct.
func skipVHDLEndTrailer(toks []vhdl.Token, i int) int {
	for i < len(toks) {
		t := toks[i]
		if t.Kind == vhdl.Keyword || t.Kind == vhdl.Identifier {
			i++
			continue
		}
		break
	}
	if i < len(toks) && toks[i].Kind == vhdl.Delimiter && toks[i].Value == ";" {
		i++
	}
	return i
}

// consumeVHDLTrailer consumes the unit's own closing 'end' keyword and
// its trailer, per skipVHDLEndTrailer.
func consumeVHDLTrailer(toks []vhdl.Token, i int) int {
	if i < len(toks) && toks[i].Kind == vhdl.Keyword && toks[i].KeywordName == "end" {
		i++
	}
	return skipVHDLEndTrailer(toks, i)
}

func posOf(toks []vhdl.Token, i int) string {
	if i < len(toks) {
		return toks[i].Start.String()
	}
	if len(toks) > 0 {
		return toks[len(toks)-1].End.String()
	}
	return "0:0"
}
