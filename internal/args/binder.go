package args

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

// Binder drains a Stream through a sequence of typed queries. Each
// successful query nulls the tokens it consumed; IsEmpty reports an
// error if anything is left over once binding is done (spec §4.G,
// invariant I6).
type Binder struct {
	stream *Stream
	// known accumulates every flag/option spelling this binder has
	// been asked about, successful or not — the only "schema" the
	// binder has, and the source of IsEmpty's suggestion candidates.
	known []string
}

// NewBinder wraps a tokenized Stream for querying.
func NewBinder(s *Stream) *Binder {
	return &Binder{stream: s}
}

// RequirePositional scans for the next UnattachedArg, removes it, and
// parses it as T. End of stream (or a Terminator reached first) is a
// MissingPositional error.
func RequirePositional[T Parseable](b *Binder, name string) (T, error) {
	v, ok, err := CheckPositional[T](b, name)
	if err != nil {
		return v, err
	}
	if !ok {
		var zero T
		return zero, &Error{Kind: MissingPositional, Message: fmt.Sprintf("missing positional argument %q", name)}
	}
	return v, nil
}

// CheckPositional scans for the next UnattachedArg, removes it, and
// parses it as T. End of stream, or a Terminator reached first,
// yields ok=false with no error.
func CheckPositional[T Parseable](b *Binder, name string) (v T, ok bool, err error) {
	for _, t := range b.stream.tokens {
		if t == nil {
			continue
		}
		switch t.Kind {
		case UnattachedArg:
			b.stream.take(t.Index)
			v, err = parseAs[T](t.Str)
			if err != nil {
				var zero T
				return zero, false, &Error{Kind: BadTypeParse, Message: fmt.Sprintf("%s: %v", name, err)}
			}
			return v, true, nil
		case TerminatorTok:
			var zero T
			return zero, false, nil
		}
	}
	var zero T
	return zero, false, nil
}

// activePositions returns, in ascending order, the still-live stream
// indices recorded for name under either its long-flag or short-switch
// side map.
func (b *Binder) activePositions(name string) []int {
	var out []int
	out = append(out, b.stream.flagPositions[name]...)
	if r := []rune(name); len(r) == 1 {
		out = append(out, b.stream.switchPositions[r[0]]...)
	}
	live := out[:0]
	for _, idx := range out {
		if b.stream.at(idx) != nil {
			live = append(live, idx)
		}
	}
	sort.Ints(live)
	return live
}

// attachedAfter reports the AttachedArg token immediately following
// idx, if the slot there is still live and holds one.
func (b *Binder) attachedAfter(idx int) (*Token, bool) {
	t := b.stream.at(idx + 1)
	if t != nil && t.Kind == AttachedArg {
		return t, true
	}
	return nil, false
}

// CheckFlag reports whether flag occurred (as a long "--name" or,
// when flag is a single character, a short "-x" switch), removing all
// occurrences from the stream. More than one occurrence is a
// DuplicateOptions error; an attached "=value" on a flag is
// UnexpectedValue.
func (b *Binder) CheckFlag(flag string) (bool, error) {
	b.known = append(b.known, flag)
	positions := b.activePositions(flag)
	if len(positions) == 0 {
		return false, nil
	}
	if len(positions) > 1 {
		return false, &Error{Kind: DuplicateOptions, Message: fmt.Sprintf("flag %q given more than once", flag)}
	}
	idx := positions[0]
	if _, ok := b.attachedAfter(idx); ok {
		return false, &Error{Kind: UnexpectedValue, Message: fmt.Sprintf("flag %q does not take a value", flag)}
	}
	b.stream.take(idx)
	return true, nil
}

// CheckOption reports the single value bound to opt, pulling it first
// from a following AttachedArg ("--opt=value" / "-o=value"), otherwise
// from the adjacent UnattachedArg ("--opt value"). Zero occurrences
// yields ok=false; more than one occurrence, a missing value, or a
// parse failure are each distinct errors.
func CheckOption[T Parseable](b *Binder, opt string) (v T, ok bool, err error) {
	b.known = append(b.known, opt)
	positions := b.activePositions(opt)
	var zero T
	if len(positions) == 0 {
		return zero, false, nil
	}
	if len(positions) > 1 {
		return zero, false, &Error{Kind: DuplicateOptions, Message: fmt.Sprintf("option %q given more than once", opt)}
	}
	idx := positions[0]

	var raw string
	valueIdx := -1
	if t, ok := b.attachedAfter(idx); ok {
		raw, valueIdx = t.Str, idx+1
	} else if t := b.stream.at(idx + 1); t != nil && t.Kind == UnattachedArg {
		raw, valueIdx = t.Str, idx+1
	}
	if valueIdx == -1 {
		return zero, false, &Error{Kind: MissingValue, Message: fmt.Sprintf("option %q requires a value", opt)}
	}

	v, perr := parseAs[T](raw)
	if perr != nil {
		return zero, false, &Error{Kind: BadTypeParse, Message: fmt.Sprintf("%s: %v", opt, perr)}
	}
	b.stream.take(idx)
	b.stream.take(valueIdx)
	return v, true, nil
}

// CheckRemainder drains every Ignore token after the terminator, in
// order, and consumes the terminator itself. An AttachedArg found
// between the terminator and the remainder (the "--=value" shape) is
// an OutOfContextArgument error.
func (b *Binder) CheckRemainder() ([]string, error) {
	if b.stream.terminatorIndex == -1 {
		return nil, nil
	}
	var out []string
	for i := b.stream.terminatorIndex + 1; i < len(b.stream.tokens); i++ {
		t := b.stream.at(i)
		if t == nil {
			continue
		}
		switch t.Kind {
		case AttachedArg:
			return nil, &Error{Kind: OutOfContextArgument, Message: "unexpected value attached to the \"--\" terminator"}
		case IgnoreTok:
			out = append(out, t.Str)
			b.stream.take(i)
		}
	}
	b.stream.take(b.stream.terminatorIndex)
	return out, nil
}

// IsEmpty reports an error if any Flag, Switch, UnattachedArg, or
// Terminator token remains unconsumed (invariant I6). Unknown
// flag/switch leftovers get a "did you mean" suggestion when the
// closest name this Binder was asked about is within edit distance 4.
func (b *Binder) IsEmpty() error {
	for _, t := range b.stream.tokens {
		if t == nil {
			continue
		}
		switch t.Kind {
		case FlagTok:
			return &Error{
				Kind:       UnknownArgument,
				Message:    fmt.Sprintf("unknown flag --%s", t.Str),
				Suggestion: b.suggest(t.Str),
			}
		case SwitchTok:
			return &Error{
				Kind:       UnknownArgument,
				Message:    fmt.Sprintf("unknown flag -%c", t.Char),
				Suggestion: b.suggest(string(t.Char)),
			}
		case UnattachedArg:
			return &Error{Kind: UnknownArgument, Message: fmt.Sprintf("unexpected argument %q", t.Str)}
		case TerminatorTok:
			return &Error{Kind: OutOfContextArgument, Message: "unexpected \"--\" terminator"}
		}
	}
	return nil
}

// suggest returns the closest name this Binder was queried about to
// name, bounded at edit distance 4 (spec §9's suggestion metric), or
// "" if nothing qualifies.
func (b *Binder) suggest(name string) string {
	best := ""
	bestDist := 5
	for _, known := range b.known {
		d := levenshtein.ComputeDistance(name, known)
		if d <= 4 && d < bestDist {
			bestDist = d
			best = known
		}
	}
	return best
}
