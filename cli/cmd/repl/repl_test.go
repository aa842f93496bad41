package repl

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/critfail/dice"
	"github.com/ardnew/critfail/log"
)

func testRoller(seed uint64) dice.Roller {
	return dice.NewRoller(dice.WithSeed(seed), dice.WithLogger(log.Discard()))
}

func testModel(t *testing.T) model {
	t.Helper()

	return newModel(
		context.Background(),
		testRoller(1),
		NewHistory(""),
		log.Discard(),
	)
}

func typeText(m model, s string) model {
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})

	return m
}

func TestModel_RollAddsHistory(t *testing.T) {
	m := typeText(testModel(t), "2d6+1")

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Enter returned no command")
	}

	if m.input.Value() != "" {
		t.Errorf("input after Enter = %q, want empty", m.input.Value())
	}

	if got := m.history.Lines(modeEval); len(got) != 1 || got[0] != "2d6+1" {
		t.Errorf("history = %q, want [2d6+1]", got)
	}

	if m.historyIdx != m.history.Len() {
		t.Errorf("historyIdx = %d, want %d", m.historyIdx, m.history.Len())
	}
}

func TestModel_Roll(t *testing.T) {
	ctx := context.Background()

	want, err := testRoller(7).Eval(ctx, "a+2?2d6")
	if err != nil {
		t.Fatal(err)
	}

	m := testModel(t)
	m.roller = testRoller(7)

	lines := strings.Split(m.roll("a+2?2d6"), "\n")
	if len(lines) != 3 {
		t.Fatalf("roll() = %q, want 3 lines", lines)
	}

	if !strings.Contains(lines[0], "a+2?2d6") {
		t.Errorf("echo = %q, want input", lines[0])
	}

	if !strings.Contains(lines[1], want.Detail()) {
		t.Errorf("detail = %q, want %q", lines[1], want.Detail())
	}

	if !strings.Contains(lines[2], want.String()) {
		t.Errorf("summary = %q, want %q", lines[2], want.String())
	}
}

func TestModel_RollParseError(t *testing.T) {
	out := testModel(t).roll("2d8+x")
	if !strings.Contains(out, "error: invalid term") {
		t.Errorf("roll() = %q, want parse error", out)
	}
}

func TestModel_AdvantageCommands(t *testing.T) {
	m := testModel(t)

	steps := []struct {
		cmd  string
		want dice.AdvState
	}{
		{"adv", dice.Advantage},
		{"dis", dice.Disadvantage},
		{"d", dice.Neutral},
		{"a", dice.Advantage},
		{"normal", dice.Neutral},
	}

	for _, s := range steps {
		m, _ = m.executeCommand(s.cmd)
		if m.adv != s.want {
			t.Fatalf("after %q adv = %v, want %v", s.cmd, m.adv, s.want)
		}
	}
}

func TestModel_ColonCommandFromEval(t *testing.T) {
	m := testModel(t)
	m.input.SetValue(":dis")

	m, _ = m.executeInput()

	if m.adv != dice.Disadvantage {
		t.Errorf("adv = %v, want %v", m.adv, dice.Disadvantage)
	}

	if m.mode != modeEval {
		t.Errorf("mode = %v, want eval", m.mode)
	}

	e, err := m.history.Entry(0)
	if err != nil || e != (HistoryEntry{"dis", modeCtrl}) {
		t.Errorf("history entry = %v, %v", e, err)
	}
}

func TestModel_Quit(t *testing.T) {
	m := testModel(t)

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlD})
	if !m.quitting || cmd == nil {
		t.Error("Ctrl+D on empty input did not quit")
	}

	if m.View() != "" {
		t.Errorf("View() after quit = %q, want empty", m.View())
	}
}

func TestModel_ToggleMode(t *testing.T) {
	m := typeText(testModel(t), "r+3")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeCtrl || m.input.Value() != "" {
		t.Fatalf("after Esc mode = %v input = %q", m.mode, m.input.Value())
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeEval || m.input.Value() != "r+3" {
		t.Errorf("after second Esc mode = %v input = %q, want eval r+3",
			m.mode, m.input.Value())
	}
}

func TestModel_HistoryNavigation(t *testing.T) {
	m := testModel(t)

	for _, e := range []HistoryEntry{
		{"r+1", modeEval},
		{"help", modeCtrl},
		{"2d6", modeEval},
	} {
		if err := m.history.Add(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	m.historyIdx = m.history.Len()

	type want struct {
		line string
		mode inputMode
	}

	steps := []struct {
		key  tea.KeyType
		want want
	}{
		{tea.KeyUp, want{"2d6", modeEval}},
		{tea.KeyUp, want{"help", modeCtrl}},
		{tea.KeyUp, want{"r+1", modeEval}},
		{tea.KeyUp, want{"r+1", modeEval}},
		{tea.KeyDown, want{"help", modeCtrl}},
		{tea.KeyDown, want{"2d6", modeEval}},
		{tea.KeyDown, want{"", modeEval}},
		{tea.KeyShiftUp, want{"2d6", modeEval}},
		{tea.KeyShiftUp, want{"r+1", modeEval}},
		{tea.KeyShiftDown, want{"2d6", modeEval}},
	}

	for i, s := range steps {
		m, _ = m.handleKey(tea.KeyMsg{Type: s.key})

		got := want{m.input.Value(), m.mode}
		if got != s.want {
			t.Fatalf("step %d (%v): got %v, want %v", i, s.key, got, s.want)
		}
	}
}

func TestModel_TabCompletes(t *testing.T) {
	m := testModel(t)
	m.mode = modeCtrl
	m = typeText(m, "exa")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})

	if got := m.input.Value(); got != "examples" {
		t.Errorf("input after Tab = %q, want %q", got, "examples")
	}
}

func TestModel_TabCompletesAfterMultibyte(t *testing.T) {
	m := testModel(t)
	m.mode = modeCtrl
	m = typeText(m, "éééé exa")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})

	const want = "éééé examples"

	if got := m.input.Value(); got != want {
		t.Errorf("input after Tab = %q, want %q", got, want)
	}

	if got, n := m.input.Position(), utf8.RuneCountInString(want); got != n {
		t.Errorf("cursor after Tab = %d, want %d", got, n)
	}
}

func TestListHistory(t *testing.T) {
	m := testModel(t)

	if got := m.listHistory(); !strings.Contains(got, "no history") {
		t.Errorf("listHistory() = %q", got)
	}

	for _, line := range []string{"r+1", "2d6"} {
		if err := m.history.Add(line, modeEval); err != nil {
			t.Fatal(err)
		}
	}

	lines := strings.Split(m.listHistory(), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[0], "2d6") {
		t.Errorf("listHistory() = %q, want newest first", lines)
	}
}

func TestListExamples(t *testing.T) {
	out := listExamples()

	for _, ex := range dice.Examples() {
		if !strings.Contains(out, ex.Expr) {
			t.Errorf("listExamples() missing %q", ex.Expr)
		}
	}
}
