package position

import "testing"

func TestTrackerConsumeTracksLinesAndColumns(t *testing.T) {
	tr := New("ab\ncd")

	want := []struct {
		ch   rune
		line int
		col  int
	}{
		{'a', 1, 1},
		{'b', 1, 2},
		{'\n', 2, 0},
		{'c', 2, 1},
		{'d', 2, 2},
	}

	for i, w := range want {
		c, ok := tr.Consume()
		if !ok {
			t.Fatalf("step %d: unexpected EOF", i)
		}
		if c != w.ch {
			t.Fatalf("step %d: got char %q want %q", i, c, w.ch)
		}
		if got := tr.Locate(); got.Line != w.line || got.Col != w.col {
			t.Fatalf("step %d: got position %d:%d want %d:%d", i, got.Line, got.Col, w.line, w.col)
		}
	}

	if _, ok := tr.Consume(); ok {
		t.Fatal("expected EOF after consuming all input")
	}
}

func TestTrackerPeekDoesNotAdvance(t *testing.T) {
	tr := New("xy")
	if c, ok := tr.Peek(); !ok || c != 'x' {
		t.Fatalf("Peek() = %q, %v", c, ok)
	}
	if c, ok := tr.Peek(); !ok || c != 'x' {
		t.Fatalf("second Peek() = %q, %v, want unchanged", c, ok)
	}
	c, _ := tr.Consume()
	if c != 'x' {
		t.Fatalf("Consume() = %q, want 'x'", c)
	}
	if c, ok := tr.Peek(); !ok || c != 'y' {
		t.Fatalf("Peek() after consume = %q, %v", c, ok)
	}
}

func TestTrackerPeekAt(t *testing.T) {
	tr := New("abc")
	if c, ok := tr.PeekAt(2); !ok || c != 'c' {
		t.Fatalf("PeekAt(2) = %q, %v", c, ok)
	}
	if _, ok := tr.PeekAt(3); ok {
		t.Fatal("PeekAt(3) should be out of range")
	}
}

func TestFastForwardSingleLine(t *testing.T) {
	tr := New("")
	tr.at = Position{Line: 5, Col: 3}
	got := tr.FastForward(Position{Line: 1, Col: 4})
	want := Position{Line: 5, Col: 7}
	if got != want {
		t.Fatalf("FastForward = %+v, want %+v", got, want)
	}
}

func TestFastForwardMultiLine(t *testing.T) {
	tr := New("")
	tr.at = Position{Line: 5, Col: 3}
	got := tr.FastForward(Position{Line: 3, Col: 2})
	want := Position{Line: 7, Col: 2}
	if got != want {
		t.Fatalf("FastForward = %+v, want %+v", got, want)
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Col: 12}
	if got := p.String(); got != "3:12" {
		t.Fatalf("String() = %q, want %q", got, "3:12")
	}
}
