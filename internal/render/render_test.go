package render

import (
	"strings"
	"testing"

	"github.com/hdlpm/hdlpm/internal/position"
)

type fakeErr struct {
	msg string
	pos position.Position
}

func (e fakeErr) Error() string         { return e.msg }
func (e fakeErr) At() position.Position { return e.pos }

func TestSourceContext_PlainNoColor(t *testing.T) {
	src := "entity fa is\n  port (a : in bit@);\nend entity;\n"
	err := fakeErr{msg: "invalid character", pos: position.Position{Line: 2, Col: 20}}

	out := SourceContext("fa.vhd", src, err, false)

	if !strings.Contains(out, "fa.vhd:2:20: invalid character") {
		t.Fatalf("missing header line, got:\n%s", out)
	}
	if !strings.Contains(out, "  2 |   port (a : in bit@);") {
		t.Fatalf("missing highlighted source line, got:\n%s", out)
	}
	if !strings.Contains(out, "  1 | entity fa is") {
		t.Fatalf("missing leading context line, got:\n%s", out)
	}
	if !strings.Contains(out, "  3 | end entity;") {
		t.Fatalf("missing trailing context line, got:\n%s", out)
	}

	lines := strings.Split(out, "\n")
	var caretLine string
	for i, l := range lines {
		if strings.Contains(l, "port (a") {
			caretLine = lines[i+1]
			break
		}
	}
	wantCol := 6 + err.pos.Col
	if len(caretLine) < wantCol+1 || caretLine[wantCol] != '^' {
		t.Fatalf("caret not at expected column, line = %q", caretLine)
	}
}

func TestSourceContext_FirstLine(t *testing.T) {
	src := "entity@ fa is\nend entity;\n"
	err := fakeErr{msg: "invalid character", pos: position.Position{Line: 1, Col: 7}}

	out := SourceContext("fa.vhd", src, err, false)
	if !strings.Contains(out, "  1 | entity@ fa is") {
		t.Fatalf("missing source line, got:\n%s", out)
	}
}

func TestSourceContext_Color(t *testing.T) {
	src := "x@\n"
	err := fakeErr{msg: "invalid character", pos: position.Position{Line: 1, Col: 1}}

	out := SourceContext("x.vhd", src, err, true)
	if !strings.Contains(out, ColorRed) || !strings.Contains(out, ColorBold) {
		t.Fatalf("expected ANSI color codes in output, got:\n%s", out)
	}
}
