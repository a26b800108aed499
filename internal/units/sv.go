package units

import (
	"github.com/hdlpm/hdlpm/internal/ident"
	"github.com/hdlpm/hdlpm/internal/sv"
)

// ExtractSV walks a SystemVerilog token stream and returns the module
// primary units it declares, in source order, with coarse outbound
// references and testbench classification (an empty port list).
func ExtractSV(toks []sv.Token, sourcePath string) ([]*Unit, error) {
	body := stripSVComments(toks)

	var out []*Unit
	for i := 0; i < len(body); {
		t := body[i]
		if t.Kind == sv.Keyword && t.KeywordName == "module" {
			u, ni := parseSVModule(body, i, sourcePath)
			out = append(out, u)
			i = ni
			continue
		}
		i++
	}
	return out, nil
}

func stripSVComments(toks []sv.Token) []sv.Token {
	out := make([]sv.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind != sv.Comment {
			out = append(out, t)
		}
	}
	return out
}

func toSVIdent(tok sv.Token) (ident.HDLIdent, error) {
	switch tok.Form {
	case sv.IdentEscaped:
		return ident.NewSVEscaped(tok.Value)
	case sv.IdentSystem:
		return ident.NewSVSystem(tok.Value)
	default:
		return ident.NewSVBasic(tok.Value), nil
	}
}

// parseSVModule parses "module <name> [#(params)] [(ports)] ; <body>
// endmodule [: name]" starting at the 'module' keyword token index i.
func parseSVModule(toks []sv.Token, i int, sourcePath string) (*Unit, int) {
	start := toks[i].Start
	i++

	var name ident.HDLIdent
	if i < len(toks) && toks[i].Kind == sv.Identifier {
		if id, err := toSVIdent(toks[i]); err == nil {
			name = id
		}
		i++
	}

	if i < len(toks) && toks[i].Value == "#" {
		i++
		if i < len(toks) && toks[i].Value == "(" {
			i, _ = skipBalancedParens(toks, i)
		}
	}

	sawPort := false
	portEmpty := false
	if i < len(toks) && toks[i].Value == "(" {
		sawPort = true
		var empty bool
		i, empty = skipBalancedParens(toks, i)
		portEmpty = empty
	}

	if i < len(toks) && toks[i].Value == ";" {
		i++
	}

	refs := newOutboundSet()
	for i < len(toks) && !(toks[i].Kind == sv.Keyword && toks[i].KeywordName == "endmodule") {
		if toks[i].Kind == sv.Identifier {
			if id, err := toSVIdent(toks[i]); err == nil {
				refs.add(id)
			}
		}
		i++
	}
	if i < len(toks) {
		i++ // consume 'endmodule'
	}
	if i < len(toks) && toks[i].Value == ":" {
		i++
		if i < len(toks) && toks[i].Kind == sv.Identifier {
			i++
		}
	}

	return &Unit{
		Shape:        Module,
		Name:         name,
		SourcePath:   sourcePath,
		Position:     start,
		OutboundRefs: refs.order,
		IsTestbench:  !sawPort || portEmpty,
	}, i
}

// skipBalancedParens assumes toks[i] is an opening "(" and returns the
// index just past its matching ")", plus whether the parenthesized
// span was empty (no tokens between).
func skipBalancedParens(toks []sv.Token, i int) (next int, empty bool) {
	if i >= len(toks) || toks[i].Value != "(" {
		return i, false
	}
	if i+1 < len(toks) && toks[i+1].Value == ")" {
		return i + 2, true
	}
	depth := 0
	j := i
	for j < len(toks) {
		switch toks[j].Value {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return j + 1, false
			}
		}
		j++
	}
	return j, false
}
