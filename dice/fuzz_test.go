package dice

import (
	"errors"
	"testing"
)

func FuzzParse(f *testing.F) {
	for _, seed := range []string{
		"r", "a+5", "d+4+1d4", "2d8+5", "3d12-1d4+6-2",
		"r+3?1d8", "a+5?1d4+4+5d6", "+3?2d8-1", "", "??", "2d0",
		"4294967296d6", "r+3 ? 1d8", "-", "2d6+",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		r, err := Parse(s)
		if err != nil {
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) returned %T, want *ParseError", s, err)
			}

			return
		}

		// Canonical text must parse back to the same expression.
		again, err := Parse(r.String())
		if err != nil {
			t.Fatalf("Parse(%q) = %q, which does not parse: %v", s, r, err)
		}

		if again.String() != r.String() {
			t.Fatalf("canonical form of %q changed: %q -> %q", s, r, again)
		}

		o := r.Roll(NewSource(uint64(len(s))))
		if o.Kind() != r.Kind() {
			t.Fatalf("outcome kind %v for roll kind %v", o.Kind(), r.Kind())
		}

		_ = o.Detail()
	})
}
