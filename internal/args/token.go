// Package args implements the CLI argument tokenizer and binder: a
// single-pass scan of the process argument vector into a stream of
// tagged, nullable tokens (spec §4.G), plus typed queries that bind
// positionals, flags, and options against that stream and surface
// violations as distinct error kinds.
package args

// Kind is a CLI token's coarse category.
type Kind int

const (
	UnattachedArg Kind = iota
	AttachedArg
	FlagTok
	SwitchTok
	IgnoreTok
	TerminatorTok
)

func (k Kind) String() string {
	switch k {
	case UnattachedArg:
		return "UnattachedArg"
	case AttachedArg:
		return "AttachedArg"
	case FlagTok:
		return "Flag"
	case SwitchTok:
		return "Switch"
	case IgnoreTok:
		return "Ignore"
	case TerminatorTok:
		return "Terminator"
	default:
		return "Unknown"
	}
}

// Token is one tagged entry in the argument stream. Str carries the
// raw string payload for UnattachedArg/AttachedArg/Ignore; Char
// carries the short-option letter for Switch. Index is this token's
// fixed position in the stream, used by the side maps in Stream and
// by callers reporting "leftover token at index N" diagnostics.
type Token struct {
	Index int
	Kind  Kind
	Str   string
	Char  rune
}
