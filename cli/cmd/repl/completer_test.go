package repl

import (
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/critfail/dice"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "r+3", 3, "r+3", 0, 3},
		{"attack", "r+3?1d8", 4, "r+3?1d8", 0, 7},
		{"spaced", "r+3 ? 1d8", 9, "1d8", 6, 9},
		{"command", ":ad", 3, ":ad", 0, 3},
		{"empty_at_boundary", "examples ", 9, "", 9, 9},
		{"mid_word", "2d8+4", 2, "2d8+4", 0, 5},
		{"at_start", "2d8", 0, "2d8", 0, 3},
		{"cursor_past_end", "2d8", 10, "2d8", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestByteOffset(t *testing.T) {
	tests := []struct {
		input string
		pos   int
		want  int
	}{
		{"r+3", 0, 0},
		{"r+3", 2, 2},
		{"r+3", 9, 3},
		{"éé r", 2, 4},
		{"éé r", 3, 5},
		{"", 1, 0},
	}

	for _, tt := range tests {
		if got := byteOffset(tt.input, tt.pos); got != tt.want {
			t.Errorf("byteOffset(%q, %d) = %d, want %d", tt.input, tt.pos, got, tt.want)
		}
	}
}

func TestEvalCandidates(t *testing.T) {
	h := NewHistory("")
	for _, line := range []string{"r+6", "4d6", "quit"} {
		mode := modeEval
		if line == "quit" {
			mode = modeCtrl
		}

		if err := h.Add(line, mode); err != nil {
			t.Fatal(err)
		}
	}

	got := evalCandidates(h)

	// History first, newest first.
	if len(got) < 2 || got[0] != "4d6" || got[1] != "r+6" {
		t.Fatalf("evalCandidates() = %q, want history first", got)
	}

	if slices.Contains(got, "quit") {
		t.Errorf("evalCandidates() = %q, contains a command", got)
	}

	// "r+6" is also an example; it must appear once.
	n := 0
	for _, c := range got {
		if c == "r+6" {
			n++
		}
	}

	if n != 1 {
		t.Errorf("evalCandidates() has %d copies of %q, want 1", n, "r+6")
	}

	for _, ex := range dice.Examples() {
		if !slices.Contains(got, ex.Expr) {
			t.Errorf("evalCandidates() missing example %q", ex.Expr)
		}
	}
}

func TestComputeMatches(t *testing.T) {
	tests := []struct {
		name  string
		mode  inputMode
		input string
		want  string // expected best match, empty for none
	}{
		{"ctrl_prefix", modeCtrl, "exa", "examples"},
		{"ctrl_exact", modeCtrl, "quit", ""},
		{"eval_command", modeEval, ":hist", ":history"},
		{"eval_example", modeEval, "a+5?", "a+5?1d4+4+5d6"},
		{"eval_empty", modeEval, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel(t)
			m.mode = tt.mode
			m.input.SetValue(tt.input)
			m.input.SetCursor(len(tt.input))

			matches, _, _, _ := m.computeMatches()

			if tt.want == "" {
				if len(matches) != 0 {
					t.Errorf("computeMatches(%q) = %d matches, want none",
						tt.input, len(matches))
				}

				return
			}

			if len(matches) == 0 || matches[0].Str != tt.want {
				t.Errorf("computeMatches(%q) best = %v, want %q",
					tt.input, matches, tt.want)
			}
		})
	}
}

func TestRenderCandidateBar_Ellipsis(t *testing.T) {
	m := testModel(t)
	m.mode = modeCtrl
	m.input.SetValue("e")
	m.input.SetCursor(1)

	matches, _, _, _ := m.computeMatches()
	if len(matches) < 2 {
		t.Fatalf("want several matches, got %d", len(matches))
	}

	if got := renderCandidateBar(matches, -1, false, 0); got != "" {
		t.Errorf("renderCandidateBar(width 0) = %q, want empty", got)
	}

	narrow := renderCandidateBar(matches, 0, true, 16)
	if want := "..."; !strings.Contains(narrow, want) {
		t.Errorf("renderCandidateBar(width 16) = %q, want %q", narrow, want)
	}
}
