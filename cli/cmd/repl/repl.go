// Package repl implements the interactive dice roller.
//
// Each line entered in eval mode is parsed and rolled; the verbose breakdown
// and the result are printed above the prompt. Esc toggles a command mode
// (help, adv, dis, normal, examples, history, clear, quit); in eval mode the
// same commands run when prefixed with ':'. Completions come from previously
// rolled expressions and the built-in examples, and history is kept in the
// cache directory.
package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/critfail/dice"
	"github.com/ardnew/critfail/log"
)

const ctrlPrompt = " :"

// evalPrompt returns the eval-mode prompt, marking a forced advantage state.
func evalPrompt(adv dice.AdvState) string {
	switch adv {
	case dice.Advantage:
		return "a➜ "
	case dice.Disadvantage:
		return "d➜ "
	default:
		return "➜ "
	}
}

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode, or prefix with ':' to run from eval mode):

  help       Print this cruft
  adv        Toggle advantage for checks and attacks
  dis        Toggle disadvantage for checks and attacks
  normal     Roll checks with their own advantage state
  examples   List example expressions
  history    List recently rolled expressions
  clear      Clear screen
  quit       Exit REPL

Usage:
  Type a roll expression (r+5, 2d8+4, a+3?1d8+2) and press Enter to roll it
  Completions from history and examples appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// historyListLen is the number of entries printed by the history command.
const historyListLen = 20

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	criticalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the roll echo line with prompt and input styled.
func formatCommand(adv dice.AdvState, input string) string {
	return promptStyle.Render(evalPrompt(adv)) + inputStyle.Render(input)
}

// formatCtrlCommand formats the control command echo line with prompt and
// input styled.
func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	history      *History
	logger       log.Logger
	roller       dice.Roller
	input        textinput.Model
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	preTabText   string        // input text before tab-cycling began
	evalText     string
	ctrlText     string
	historyIdx   int
	wordStart    int // byte offset of current word start
	wordEnd      int // byte offset of current word end
	suggIdx      int // selected candidate index
	preTabCursor int // cursor position before tab-cycling began
	width        int // terminal width for ellipsization
	evalCursor   int
	ctrlCursor   int
	adv          dice.AdvState
	mode         inputMode
	tabActive    bool // whether user is tab-cycling
	quitting     bool
}

// Run starts the REPL, rolling with roller and keeping history in cacheDir.
// An empty cacheDir keeps history in memory only.
func Run(
	ctx context.Context,
	cacheDir string,
	roller dice.Roller,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("cache_dir", cacheDir),
	)

	if roller.Source() == nil {
		return ErrNoRoller
	}

	var path string
	if cacheDir != "" {
		path = filepath.Join(cacheDir, baseHistory)
	}

	history := NewHistory(path)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}

	logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	p := tea.NewProgram(newModel(ctx, roller, history, logger), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	roller dice.Roller,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt(dice.Neutral))
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		roller:     roller,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(evalPrompt(m.adv)) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.hintLine())
	b.WriteString("\n")

	return b.String()
}

// hintLine renders the line below the prompt: the history position, a usage
// hint, the completion bar or a preview of the expression being typed.
func (m model) hintLine() string {
	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		pos := m.historyIdx + 1 // 1-based for display

		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(pos)),
			m.history.Len()))

	case strings.TrimSpace(input) == "":
		if m.mode == modeCtrl {
			return hintStyle.Render(
				"Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)")
		}

		hint := "Type an expression or press Esc for commands"
		if m.adv != dice.Neutral {
			hint += " [" + m.adv.String() + "]"
		}

		return hintStyle.Render(hint)

	case len(m.matches) > 0:
		return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)

	case m.mode == modeEval && !strings.HasPrefix(strings.TrimSpace(input), ":"):
		return renderPreview(input, m.adv)

	default:
		return ""
	}
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		m, _ = m.historySeek(-1, nil)

		return m, nil

	case tea.KeyDown:
		return m.historyForward(nil), nil

	case tea.KeyShiftUp:
		m, _ = m.historySeek(-1, m.sameMode())

		return m, nil

	case tea.KeyShiftDown:
		return m.historyForward(m.sameMode()), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.toggleMode(), nil

	case tea.KeyRunes, tea.KeySpace:
		// Space breaks out of tab-cycling, keeping the candidate.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle selects the next (step 1) or previous (step -1) completion candidate.
// A single candidate is completed immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	switch {
	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n
	case step > 0:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0
	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = n - 1
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(utf8.RuneCountInString(newInput[:newCursor]))

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also clears the matches when exactly one
// candidate remains and the typed word already equals that candidate.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	// Reset both mode inputs after submission
	m.evalText = ""
	m.evalCursor = 0
	m.ctrlText = ""
	m.ctrlCursor = 0
	m.input.SetValue("")
	m.matches = nil

	mode := m.mode
	if s, ok := strings.CutPrefix(input, ":"); ok && mode == modeEval {
		input, mode = strings.TrimSpace(s), modeCtrl
	}

	m.addHistory(input, mode)

	if mode == modeCtrl {
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl command",
			slog.String("input", input),
		)

		return m.executeCommand(input)
	}

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl roll",
		slog.String("input", input),
	)

	return m, tea.Println(m.roll(input))
}

func (m *model) addHistory(input string, mode inputMode) {
	if err := m.history.Add(input, mode); err != nil {
		m.logger.DebugContext(m.ctxFunc(), "history write failed",
			slog.Any("error", err),
		)
	}

	m.historyIdx = m.history.Len()
}

// roll parses and rolls input, returning the echoed input followed by the
// verbose breakdown and the result, or by the parse error.
func (m model) roll(input string) string {
	ctx := m.ctxFunc()
	echo := formatCommand(m.adv, input)

	r, err := m.roller.Parse(ctx, input)
	if err != nil {
		return echo + "\n" + errorStyle.Render("error: "+err.Error())
	}

	var o dice.Outcome
	if m.adv == dice.Neutral {
		o = m.roller.Roll(ctx, r)
	} else {
		o = m.roller.RollWithAdvantage(ctx, r, m.adv)
	}

	return echo + "\n" +
		hintStyle.Render(o.Detail()) + "\n" +
		outcomeStyle(o).Render(o.String())
}

// outcomeStyle highlights critical hits and failures.
func outcomeStyle(o dice.Outcome) lipgloss.Style {
	var crit dice.Crit

	switch o := o.(type) {
	case dice.CheckOutcome:
		crit = o.CritScore().Crit
	case dice.AttackOutcome:
		crit = o.Check().CritScore().Crit
	}

	switch crit {
	case dice.Critical:
		return criticalStyle
	case dice.Fail:
		return failStyle
	default:
		return resultStyle
	}
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := tea.Println(formatCtrlCommand(input))

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl exec command",
		slog.String("command", parts[0]),
		slog.Any("args", parts[1:]),
	)

	switch parts[0] {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "a", "adv":
		return m.toggleAdv(dice.Advantage, echoCmd)

	case "d", "dis":
		return m.toggleAdv(dice.Disadvantage, echoCmd)

	case "n", "normal":
		m = m.setAdv(dice.Neutral)

		return m, tea.Sequence(echoCmd, tea.Println(m.advStatus()))

	case "e", "examples":
		return m, tea.Sequence(echoCmd, tea.Println(listExamples()))

	case "history":
		return m, tea.Sequence(echoCmd, tea.Println(m.listHistory()))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + parts[0] + " (try 'help')"),
		)
	}
}

// toggleAdv forces adv on checks and attacks, or restores their own state if
// adv is already forced.
func (m model) toggleAdv(adv dice.AdvState, echoCmd tea.Cmd) (model, tea.Cmd) {
	if m.adv == adv {
		adv = dice.Neutral
	}

	m = m.setAdv(adv)

	return m, tea.Sequence(echoCmd, tea.Println(m.advStatus()))
}

func (m model) setAdv(adv dice.AdvState) model {
	m.adv = adv

	if m.mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt(adv))
	}

	m.logger.TraceContext(m.ctxFunc(), "repl advantage",
		slog.String("adv", adv.String()),
	)

	return m
}

func (m model) advStatus() string {
	if m.adv == dice.Neutral {
		return hintStyle.Render("rolling checks with their own advantage state")
	}

	return hintStyle.Render("rolling checks with " + m.adv.String())
}

func listExamples() string {
	var b strings.Builder

	for _, ex := range dice.Examples() {
		fmt.Fprintf(&b, "  %-14s %s\n", ex.Expr, hintStyle.Render(ex.Description))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (m model) listHistory() string {
	lines := m.history.Lines(modeEval)
	if len(lines) == 0 {
		return hintStyle.Render("no history")
	}

	lines = lines[:min(len(lines), historyListLen)]

	var b strings.Builder

	for i, line := range lines {
		fmt.Fprintf(&b, "%s %s\n",
			hintStyle.Render(fmt.Sprintf("%3d", i+1)), line)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// sameMode returns a history filter keeping entries of the current mode.
func (m model) sameMode() func(HistoryEntry) bool {
	mode := m.mode

	return func(e HistoryEntry) bool { return e.Mode == mode }
}

// historySeek moves through history by step (-1 older, 1 newer) to the next
// entry accepted by keep (nil accepts all), switching to the entry's mode.
// It reports whether such an entry was found.
func (m model) historySeek(step int, keep func(HistoryEntry) bool) (model, bool) {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil || (keep != nil && !keep(entry)) {
			continue
		}

		m.historyIdx = i

		if m.mode != entry.Mode {
			m = m.switchToMode(entry.Mode)
		}

		m.input.SetValue(entry.Line)
		m.input.SetCursor(utf8.RuneCountInString(entry.Line))
		refreshMatches(&m, false)

		return m, true
	}

	return m, false
}

// historyForward moves to a newer entry, clearing the input past the newest.
func (m model) historyForward(keep func(HistoryEntry) bool) model {
	m, ok := m.historySeek(1, keep)
	if !ok && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// toggleMode switches between eval and control modes.
func (m model) toggleMode() model {
	if m.mode == modeEval {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeEval)
}

// switchToMode switches to the specified mode, preserving the input of the
// mode being left.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeEval {
		m.evalText = m.input.Value()
		m.evalCursor = m.input.Position()
	} else {
		m.ctrlText = m.input.Value()
		m.ctrlCursor = m.input.Position()
	}

	m.mode = mode
	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt(m.adv))
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m
}
