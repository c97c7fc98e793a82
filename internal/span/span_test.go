package span

import "testing"

func TestJoin(t *testing.T) {
	a := Span{Start: Position{Offset: 4, Line: 1, Column: 5}, End: Position{Offset: 6, Line: 1, Column: 7}}
	b := Span{Start: Position{Offset: 0, Line: 1, Column: 1}, End: Position{Offset: 2, Line: 1, Column: 3}}

	want := Span{Start: b.Start, End: a.End}
	if got := Join(a, b); got != want {
		t.Errorf("Join(a, b) = %s, want %s", got, want)
	}
	if got := Join(b, a); got != want {
		t.Errorf("Join(b, a) = %s, want %s", got, want)
	}
	if got := Join(a, a); got != a {
		t.Errorf("Join(a, a) = %s, want %s", got, a)
	}
}
