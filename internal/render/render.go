// Package render renders lexer and primary-unit-extractor errors with
// surrounding source context and a caret pointer under the offending
// column, adapted from the teacher's colored VCL execution-trace and
// DetailedError rendering (spec §7, SPEC_FULL.md Supplemented
// Features) into a plain positioned-error renderer for VHDL/SV.
package render

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/hdlpm/hdlpm/internal/position"
)

// ANSI color codes, same palette as the teacher's formatter package.
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorGray  = "\033[90m"
	ColorBold  = "\033[1m"
)

// ShouldUseColor reports whether stdout is a terminal, mirroring the
// teacher's formatter.ShouldUseColor.
func ShouldUseColor() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PositionedError is the minimal shape SourceContext needs from a lex
// or extraction error: a message and the position it occurred at.
// internal/vhdl.LexError and internal/sv.LexError both satisfy this.
type PositionedError interface {
	error
	At() position.Position
}

// SourceContext renders err's message with up to one line of context
// before and after its position, plus a caret pointing at the exact
// column, matching the shape of the teacher's
// parser.DetailedError.Error() but for VHDL/SV lexical errors rather
// than VCL parse errors.
func SourceContext(filename, source string, err PositionedError, useColor bool) string {
	var out strings.Builder
	pos := err.At()

	fmt.Fprintf(&out, "%s:%s: %s\n", filename, pos, err.Error())

	lines := strings.Split(source, "\n")
	errorLine := pos.Line - 1 // convert to 0-indexed

	if errorLine > 0 && errorLine-1 < len(lines) {
		writeContextLine(&out, errorLine, lines[errorLine-1], useColor, false)
	}
	if errorLine >= 0 && errorLine < len(lines) {
		writeContextLine(&out, errorLine+1, lines[errorLine], useColor, true)
		caret := strings.Repeat(" ", 6+pos.Col)
		if useColor {
			fmt.Fprintf(&out, "%s%s^%s\n", caret, ColorRed, ColorReset)
		} else {
			fmt.Fprintf(&out, "%s^\n", caret)
		}
	}
	if errorLine+1 < len(lines) {
		writeContextLine(&out, errorLine+2, lines[errorLine+1], useColor, false)
	}

	return out.String()
}

func writeContextLine(out *strings.Builder, lineNum int, text string, useColor, highlight bool) {
	if !useColor {
		fmt.Fprintf(out, "%3d | %s\n", lineNum, text)
		return
	}
	if highlight {
		fmt.Fprintf(out, "%s%3d | %s%s\n", ColorBold, lineNum, text, ColorReset)
		return
	}
	fmt.Fprintf(out, "%s%3d | %s%s\n", ColorGray, lineNum, text, ColorReset)
}
