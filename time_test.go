package monkeyboard

import "testing"

func TestAfterBefore(t *testing.T) {
	cases := []struct {
		name   string
		a, b   Time
		after  bool
		before bool
	}{
		{"ordinary forward gap", 10, 5, true, false},
		{"ordinary backward gap", 5, 10, false, true},
		{"equal", 7, 7, false, false},
		{"wrap just past zero", 1, 0xFFFFFFFF, true, false},
		{"wrap just before zero", 0xFFFFFFFF, 1, false, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := After(c.a, c.b); got != c.after {
				t.Errorf("After(%d,%d) = %v, want %v", c.a, c.b, got, c.after)
			}
			if got := Before(c.a, c.b); got != c.before {
				t.Errorf("Before(%d,%d) = %v, want %v", c.a, c.b, got, c.before)
			}
			if After(c.a, c.b) && Before(c.a, c.b) {
				t.Errorf("After and Before both true for (%d,%d)", c.a, c.b)
			}
		})
	}
}

func TestAfterOrEqualIsReflexive(t *testing.T) {
	if !AfterOrEqual(42, 42) {
		t.Error("AfterOrEqual(a, a) must be true")
	}
	if !BeforeOrEqual(42, 42) {
		t.Error("BeforeOrEqual(a, a) must be true")
	}
}

func TestSpan(t *testing.T) {
	if got := Span(10, 25); got != 15 {
		t.Errorf("Span(10,25) = %d, want 15", got)
	}
	if got := Span(25, 10); got != 0 {
		t.Errorf("Span(25,10) = %d, want 0 (treated as not-yet-elapsed)", got)
	}
	if got := Span(0xFFFFFFFE, 2); got != 4 {
		t.Errorf("Span across wrap = %d, want 4", got)
	}
}
